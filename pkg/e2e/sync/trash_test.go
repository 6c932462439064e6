/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sync

import (
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
)

// setupTree creates a folder holding a note and returns their server ids
func setupTree(env *testEnv) (string, string) {
	_, err := env.Store.AddFolder(env.ctx, "", "projects")
	env.mustOK(err, "adding folder")
	folderID := env.Store.State().Items[0].ID

	_, err = env.Store.AddFile(env.ctx, folderID, "roadmap", "q1 goals")
	env.mustOK(err, "adding file")
	noteID := env.Store.State().ActiveFileID

	return folderID, noteID
}

func TestTrash_deleteAndRestore(t *testing.T) {
	env := setupTestEnv(t)
	env.register()
	folderID, noteID := setupTree(env)

	env.mustOK(env.Store.Delete(env.ctx, folderID), "deleting folder")

	st := env.Store.State()
	assert.Equal(t, len(st.Items), 0, "items should leave the tree")
	assert.Equal(t, len(st.Trash), 2, "items should be in the trash")
	assert.Equal(t, st.ActiveFileID, "", "active file should be cleared")
	for _, it := range st.Trash {
		assert.Equal(t, items.HasDeletedTag(it.Tags), true, "trashed items should be tagged")
	}

	folder, _ := env.serverFolder(folderID)
	note, _ := env.serverNote(noteID)
	assert.Equal(t, folder.DeletedAt.Valid, true, "folder should be trashed on the server")
	assert.Equal(t, note.DeletedAt.Valid, true, "note should be trashed on the server")

	env.mustOK(env.Store.FetchTrash(env.ctx), "fetching trash")
	assert.Equal(t, len(env.Store.State().Trash), 2, "server trash should match")

	env.mustOK(env.Store.Restore(env.ctx, folderID), "restoring folder")

	st = env.Store.State()
	assert.Equal(t, len(st.Items), 2, "items should return to the tree")
	assert.Equal(t, len(st.Trash), 0, "trash should be empty")
	for _, it := range st.Items {
		assert.Equal(t, items.HasDeletedTag(it.Tags), false, "restored items should not be tagged")
	}

	folder, _ = env.serverFolder(folderID)
	note, _ = env.serverNote(noteID)
	assert.Equal(t, folder.DeletedAt.Valid, false, "folder should be live on the server")
	assert.Equal(t, note.DeletedAt.Valid, false, "note should be live on the server")
}

func TestTrash_permanentDelete(t *testing.T) {
	env := setupTestEnv(t)
	env.register()
	folderID, noteID := setupTree(env)

	env.mustOK(env.Store.Delete(env.ctx, folderID), "deleting folder")
	env.mustOK(env.Store.PermanentDelete(env.ctx, folderID), "purging folder")

	st := env.Store.State()
	assert.Equal(t, len(st.Trash), 0, "trash should be empty")
	assert.Equal(t, len(st.OfflineQueue), 0, "nothing should be queued")

	_, ok := env.serverFolder(folderID)
	assert.Equal(t, ok, false, "folder should be removed from the server")
	_, ok = env.serverNote(noteID)
	assert.Equal(t, ok, false, "note should be removed from the server")
}

func TestTrash_offline(t *testing.T) {
	env := setupTestEnv(t)
	env.register()
	folderID, noteID := setupTree(env)

	env.Store.SetOfflineMode(env.ctx, true)
	env.mustOK(env.Store.Delete(env.ctx, folderID), "deleting folder")

	st := env.Store.State()
	assert.Equal(t, len(st.OfflineQueue), 2, "one tag update per item should be queued")

	env.Store.SetOfflineMode(env.ctx, false)

	folder, _ := env.serverFolder(folderID)
	note, _ := env.serverNote(noteID)
	assert.Equal(t, folder.DeletedAt.Valid, true, "folder should be trashed on the server")
	assert.Equal(t, note.DeletedAt.Valid, true, "note should be trashed on the server")
	assert.Equal(t, items.HasDeletedTag(note.Tags.Slice()), false, "the server stores tags without the marker")

	env.Store.SetOfflineMode(env.ctx, true)
	env.mustOK(env.Store.PermanentDelete(env.ctx, folderID), "purging folder")
	assert.Equal(t, len(env.Store.State().OfflineQueue), 2, "one delete per item should be queued")

	env.Store.SetOfflineMode(env.ctx, false)

	assert.Equal(t, len(env.Store.State().OfflineQueue), 0, "queue should be drained")
	_, ok := env.serverFolder(folderID)
	assert.Equal(t, ok, false, "folder should be removed from the server")
	_, ok = env.serverNote(noteID)
	assert.Equal(t, ok, false, "note should be removed from the server")
}

func TestTrash_restoreWithoutParent(t *testing.T) {
	env := setupTestEnv(t)
	env.register()
	folderID, noteID := setupTree(env)

	env.mustOK(env.Store.Delete(env.ctx, noteID), "deleting note")
	env.mustOK(env.Store.Delete(env.ctx, folderID), "deleting folder")

	env.mustOK(env.Store.Restore(env.ctx, noteID), "restoring note")

	restored := items.Find(env.Store.State().Items, noteID)
	if restored == nil {
		t.Fatal("note should be restored")
	}
	assert.Equal(t, restored.ParentID, "", "note should move to the top level")

	note, _ := env.serverNote(noteID)
	assert.Equal(t, note.DeletedAt.Valid, false, "note should be live on the server")
	assert.Equal(t, note.FolderID == nil, true, "note should move to the top level on the server")

	folder, _ := env.serverFolder(folderID)
	assert.Equal(t, folder.DeletedAt.Valid, true, "folder should stay in the trash")
}
