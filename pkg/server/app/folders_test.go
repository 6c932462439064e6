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

package app

import (
	"fmt"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/testutils"
	"github.com/pkg/errors"
)

func mustCreateFolder(t *testing.T, a *App, user database.User, name string, parentID *string) database.Folder {
	f, err := a.CreateFolder(user, CreateFolderParams{Name: name, ParentID: parentID})
	if err != nil {
		t.Fatal(errors.Wrapf(err, "creating folder %s", name))
	}

	return f
}

func mustCreateNote(t *testing.T, a *App, user database.User, title string, folderID *string) database.Note {
	n, err := a.CreateNote(user, CreateNoteParams{Title: title, Content: title + " body", FolderID: folderID})
	if err != nil {
		t.Fatal(errors.Wrapf(err, "creating note %s", title))
	}

	return n
}

func TestCreateFolder(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	alice := testutils.SetupUserData(db, "alice@example.com", "pass1234")
	bob := testutils.SetupUserData(db, "bob@example.com", "pass1234")

	a := NewTest()
	a.DB = db

	bobFolder := mustCreateFolder(t, &a, bob, "bob", nil)
	trashed := mustCreateFolder(t, &a, alice, "trashed", nil)
	if err := a.DeleteFolder(alice, trashed.ID, false); err != nil {
		t.Fatal(errors.Wrap(err, "trashing folder"))
	}
	parent := mustCreateFolder(t, &a, alice, "parent", nil)

	testCases := []struct {
		params      CreateFolderParams
		expectedErr error
	}{
		{params: CreateFolderParams{Name: "work", Tags: []string{"a", "deleted:1"}}, expectedErr: nil},
		{params: CreateFolderParams{Name: "child", ParentID: &parent.ID}, expectedErr: nil},
		{params: CreateFolderParams{Name: "  "}, expectedErr: ErrNameRequired},
		{params: CreateFolderParams{Name: "x", ParentID: testutils.StrPtr("missing")}, expectedErr: ErrInvalidParent},
		{params: CreateFolderParams{Name: "x", ParentID: &bobFolder.ID}, expectedErr: ErrInvalidParent},
		{params: CreateFolderParams{Name: "x", ParentID: &trashed.ID}, expectedErr: ErrInvalidParent},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			f, err := a.CreateFolder(alice, tc.params)

			assert.Equal(t, err, tc.expectedErr, "error mismatch")
			if err == nil {
				assert.Equal(t, f.UserID, alice.ID, "owner mismatch")
				assert.NotEqual(t, f.ID, "", "id should be assigned")
				for _, tag := range f.Tags {
					assert.NotEqual(t, tag, "deleted:1", "trash marker should not be stored")
				}
			}
		})
	}
}

func TestUpdateFolder(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	alice := testutils.SetupUserData(db, "alice@example.com", "pass1234")
	bob := testutils.SetupUserData(db, "bob@example.com", "pass1234")

	a := NewTest()
	a.DB = db

	root := mustCreateFolder(t, &a, alice, "root", nil)
	child := mustCreateFolder(t, &a, alice, "child", &root.ID)
	grandchild := mustCreateFolder(t, &a, alice, "grandchild", &child.ID)
	other := mustCreateFolder(t, &a, alice, "other", nil)

	t.Run("rename", func(t *testing.T) {
		name := " renamed "
		f, err := a.UpdateFolder(alice, child.ID, UpdateFolderParams{Name: &name})
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, f.Name, "renamed", "name mismatch")
		assert.Equal(t, *f.ParentID, root.ID, "parent should be unchanged")
	})

	t.Run("move to top level", func(t *testing.T) {
		f, err := a.UpdateFolder(alice, other.ID, UpdateFolderParams{SetParent: true})
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, f.ParentID == nil, true, "parent should be cleared")
	})

	t.Run("cycle", func(t *testing.T) {
		for _, target := range []string{root.ID, grandchild.ID} {
			_, err := a.UpdateFolder(alice, root.ID, UpdateFolderParams{SetParent: true, ParentID: &target})
			assert.Equal(t, err, ErrFolderCycle, "error mismatch")
		}
	})

	t.Run("not owner", func(t *testing.T) {
		name := "stolen"
		_, err := a.UpdateFolder(bob, root.ID, UpdateFolderParams{Name: &name})
		assert.Equal(t, err, ErrNotFound, "error mismatch")
	})

	t.Run("trash and restore through tags", func(t *testing.T) {
		tags := []string{"work", "deleted:1700000000000"}
		f, err := a.UpdateFolder(alice, other.ID, UpdateFolderParams{Tags: &tags})
		if err != nil {
			t.Fatal(errors.Wrap(err, "trashing"))
		}
		assert.Equal(t, f.DeletedAt.Valid, true, "folder should be trashed")
		assert.DeepEqual(t, f.Tags.Slice(), []string{"work"}, "tags mismatch")

		live, err := a.ListFolders(alice.ID)
		if err != nil {
			t.Fatal(errors.Wrap(err, "listing"))
		}
		for _, l := range live {
			assert.NotEqual(t, l.ID, other.ID, "trashed folder should not be listed")
		}

		tags = []string{"work"}
		f, err = a.UpdateFolder(alice, other.ID, UpdateFolderParams{Tags: &tags})
		if err != nil {
			t.Fatal(errors.Wrap(err, "restoring"))
		}
		assert.Equal(t, f.DeletedAt.Valid, false, "folder should be restored")
	})
}

func TestDeleteFolder(t *testing.T) {
	setup := func(t *testing.T) (App, database.User, database.Folder, database.Folder, database.Note, database.Note) {
		db := testutils.InitMemoryDB(t)
		user := testutils.SetupUserData(db, "alice@example.com", "pass1234")

		a := NewTest()
		a.DB = db

		root := mustCreateFolder(t, &a, user, "root", nil)
		child := mustCreateFolder(t, &a, user, "child", &root.ID)
		n1 := mustCreateNote(t, &a, user, "n1", &child.ID)
		n2 := mustCreateNote(t, &a, user, "n2", nil)

		return a, user, root, child, n1, n2
	}

	t.Run("soft deletes the subtree", func(t *testing.T) {
		a, user, root, _, _, n2 := setup(t)

		if err := a.DeleteFolder(user, root.ID, false); err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		folders, _ := a.ListFolders(user.ID)
		notes, _ := a.ListNotes(user.ID)
		trash, _ := a.ListTrash(user.ID)

		assert.Equal(t, len(folders), 0, "live folder count mismatch")
		assert.Equal(t, len(notes), 1, "live note count mismatch")
		assert.Equal(t, notes[0].ID, n2.ID, "unrelated note should stay")
		assert.Equal(t, len(trash.Folders), 2, "trashed folder count mismatch")
		assert.Equal(t, len(trash.Notes), 1, "trashed note count mismatch")
	})

	t.Run("deleting from the trash purges", func(t *testing.T) {
		a, user, root, _, _, _ := setup(t)

		if err := a.DeleteFolder(user, root.ID, false); err != nil {
			t.Fatal(errors.Wrap(err, "trashing"))
		}
		if err := a.DeleteFolder(user, root.ID, false); err != nil {
			t.Fatal(errors.Wrap(err, "purging"))
		}

		var folderCount, noteCount int64
		testutils.MustExec(t, a.DB.Unscoped().Model(&database.Folder{}).Count(&folderCount), "counting folders")
		testutils.MustExec(t, a.DB.Unscoped().Model(&database.Note{}).Count(&noteCount), "counting notes")
		assert.Equal(t, folderCount, int64(0), "folder count mismatch")
		assert.Equal(t, noteCount, int64(1), "note count mismatch")
	})

	t.Run("permanent", func(t *testing.T) {
		a, user, _, child, _, _ := setup(t)

		if err := a.DeleteFolder(user, child.ID, true); err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		var folderCount, noteCount int64
		testutils.MustExec(t, a.DB.Unscoped().Model(&database.Folder{}).Count(&folderCount), "counting folders")
		testutils.MustExec(t, a.DB.Unscoped().Model(&database.Note{}).Count(&noteCount), "counting notes")
		assert.Equal(t, folderCount, int64(1), "folder count mismatch")
		assert.Equal(t, noteCount, int64(1), "note count mismatch")
	})

	t.Run("not found", func(t *testing.T) {
		a, user, _, _, _, _ := setup(t)

		assert.Equal(t, a.DeleteFolder(user, "missing", false), ErrNotFound, "error mismatch")
	})
}
