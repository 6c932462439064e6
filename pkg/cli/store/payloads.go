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

package store

import (
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
)

func itemPath(it items.Item) string {
	if it.IsFolder() {
		return client.FolderPath(it.ID)
	}

	return client.NotePath(it.ID)
}

func purgePath(it items.Item) string {
	if it.IsFolder() {
		return client.PurgeFolderPath(it.ID)
	}

	return client.PurgeNotePath(it.ID)
}

func parentRef(parentID string) *string {
	if parentID == "" {
		return nil
	}

	return &parentID
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}

	return tags
}

func createPath(it items.Item) string {
	if it.IsFolder() {
		return client.FoldersPath
	}

	return client.NotesPath
}

func createPayload(it items.Item) interface{} {
	if it.IsFolder() {
		return client.CreateFolderPayload{
			Name:     it.Name,
			ParentID: parentRef(it.ParentID),
		}
	}

	return client.CreateNotePayload{
		Title:      it.Name,
		Content:    it.ContentString(),
		FolderID:   parentRef(it.ParentID),
		Tags:       tagsOrEmpty(it.Tags),
		IsFavorite: it.IsFavorite,
		IsPinned:   it.IsPinned,
	}
}

func renamePatch(it items.Item) client.Patch {
	if it.IsFolder() {
		return client.Patch{"name": it.Name}
	}

	return client.Patch{"title": it.Name}
}

func movePatch(it items.Item) client.Patch {
	if it.IsFolder() {
		return client.Patch{"parentId": parentRef(it.ParentID)}
	}

	return client.Patch{"folderId": parentRef(it.ParentID)}
}

func tagsPatch(it items.Item) client.Patch {
	return client.Patch{"tags": tagsOrEmpty(it.Tags)}
}

// metadataPatch carries every field set at creation except the content
func metadataPatch(it items.Item) client.Patch {
	p := client.Patch{}
	for _, part := range []client.Patch{renamePatch(it), movePatch(it), tagsPatch(it)} {
		for k, v := range part {
			p[k] = v
		}
	}
	if it.IsFile() {
		p["isPinned"] = it.IsPinned
		p["isFavorite"] = it.IsFavorite
	}

	return p
}

func folderItem(f client.Folder) items.Item {
	ret := items.Item{
		ID:        f.ID,
		Name:      f.Name,
		Type:      items.TypeFolder,
		CreatedAt: millis(f.CreatedAt),
		UpdatedAt: millis(f.UpdatedAt),
		Tags:      f.Tags,
	}
	if f.ParentID != nil {
		ret.ParentID = *f.ParentID
	}

	return ret
}

func noteItem(n client.Note) items.Item {
	ret := items.Item{
		ID:         n.ID,
		Name:       n.Title,
		Type:       items.TypeFile,
		Content:    n.Content,
		CreatedAt:  millis(n.CreatedAt),
		UpdatedAt:  millis(n.UpdatedAt),
		IsFavorite: n.IsFavorite,
		IsPinned:   n.IsPinned,
		IsPublic:   n.IsPublic,
		Tags:       n.Tags,
	}
	if n.FolderID != nil {
		ret.ParentID = *n.FolderID
	}

	return ret
}

func folderRecord(f client.Folder) client.Record {
	return client.Record{ID: f.ID, CreatedAt: f.CreatedAt, UpdatedAt: f.UpdatedAt}
}

func noteRecord(n client.Note) client.Record {
	return client.Record{ID: n.ID, CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt}
}
