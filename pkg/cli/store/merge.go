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

// keepLocal reports which local fields of an existing item must survive a
// merge because a newer local change has not reached the server yet
type keepLocal struct {
	content func(id string, serverUpdatedAt int64) bool
	field   func(id, field string) bool
	trashed func(id string) bool
}

func (k keepLocal) keepField(id, field string) bool {
	return k.field != nil && k.field(id, field)
}

func (k keepLocal) isTrashed(id string) bool {
	return k.trashed != nil && k.trashed(id)
}

// partition splits the list into items of the given type and the others
func partition(list []items.Item, t items.Type) ([]items.Item, []items.Item) {
	var same, others []items.Item
	for _, it := range list {
		if it.Type == t {
			same = append(same, it)
		} else {
			others = append(others, it)
		}
	}

	return same, others
}

// mergeFolders merges the server folders into the list. Existing folders
// get the server fields, unknown ones are added, and local-only items are
// kept.
func mergeFolders(list []items.Item, folders []client.Folder, k keepLocal) []items.Item {
	same, others := partition(items.CloneAll(list), items.TypeFolder)

	for _, f := range folders {
		if k.isTrashed(f.ID) || items.HasDeletedTag(f.Tags) {
			continue
		}

		incoming := folderItem(f)
		cur := items.Find(same, f.ID)
		if cur == nil {
			same = append(same, incoming)
			continue
		}

		if !k.keepField(f.ID, "name") {
			cur.Name = incoming.Name
		}
		if !k.keepField(f.ID, "parentId") {
			cur.ParentID = incoming.ParentID
		}
		if !k.keepField(f.ID, "tags") {
			cur.Tags = incoming.Tags
		}
		cur.CreatedAt = incoming.CreatedAt
		cur.UpdatedAt = incoming.UpdatedAt
		cur.IsPending = false
	}

	return append(others, same...)
}

// mergeNotes merges the server notes into the list. Local content is kept
// when k says it is newer than the server copy, or when the server did not
// send content.
func mergeNotes(list []items.Item, notes []client.Note, k keepLocal) []items.Item {
	same, others := partition(items.CloneAll(list), items.TypeFile)

	for _, n := range notes {
		if k.isTrashed(n.ID) || items.HasDeletedTag(n.Tags) {
			continue
		}

		incoming := noteItem(n)
		cur := items.Find(same, n.ID)
		if cur == nil {
			same = append(same, incoming)
			continue
		}

		if !k.keepField(n.ID, "title") {
			cur.Name = incoming.Name
		}
		if !k.keepField(n.ID, "folderId") {
			cur.ParentID = incoming.ParentID
		}
		if !k.keepField(n.ID, "tags") {
			cur.Tags = incoming.Tags
		}
		if !k.keepField(n.ID, "isFavorite") {
			cur.IsFavorite = incoming.IsFavorite
		}
		if !k.keepField(n.ID, "isPublic") {
			cur.IsPublic = incoming.IsPublic
		}

		keepContent := incoming.Content == nil || (k.content != nil && k.content(n.ID, incoming.UpdatedAt))
		if !keepContent {
			cur.Content = incoming.Content
		}
		cur.CreatedAt = incoming.CreatedAt
		if !keepContent || incoming.UpdatedAt > cur.UpdatedAt {
			cur.UpdatedAt = incoming.UpdatedAt
		}
		cur.IsPending = false
	}

	return append(others, same...)
}
