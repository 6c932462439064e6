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
	"context"
	"net/http"
	"strings"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/queue"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/syncerr"
)

type fieldChange struct {
	before items.Item
	after  items.Item
}

// fieldUpdate is a change of item fields sent as a single PATCH
type fieldUpdate struct {
	op string
	// mutate validates and changes the item in place
	mutate func(st *State, it *items.Item) error
	// restore copies the changed fields back from before
	restore func(it *items.Item, before items.Item)
	patch   func(it items.Item) client.Patch
	// path overrides the PATCH path of the item
	path func(it items.Item) string
	// send overrides the request
	send func(ctx context.Context, it items.Item) (client.Record, error)
	// local changes are never sent
	local bool
}

func (s *Store) updateItem(ctx context.Context, id string, u fieldUpdate) error {
	path := itemPath
	if u.path != nil {
		path = u.path
	}

	return run(ctx, s, command[fieldChange, client.Record]{
		name:   u.op,
		itemID: id,
		apply: func(st *State) (fieldChange, error) {
			it := items.Find(st.Items, id)
			if it == nil {
				return fieldChange{}, syncerr.Validationf(u.op, "item '%s' not found", id)
			}

			before := it.Clone()
			if err := u.mutate(st, it); err != nil {
				return fieldChange{}, err
			}
			it.UpdatedAt = s.nowMillis()

			return fieldChange{before: before, after: it.Clone()}, nil
		},
		route: func(st *State, v fieldChange, r route) route {
			if u.local {
				return routeLocal
			}
			return r
		},
		offline: func(st *State, v fieldChange) []queue.Entry {
			return s.newEntry(http.MethodPatch, path(v.after), u.patch(v.after), v.after.ID)
		},
		send: func(ctx context.Context, v fieldChange) (client.Record, error) {
			if u.send != nil {
				return u.send(ctx, v.after)
			}
			if v.after.IsFolder() {
				f, err := s.remote.UpdateFolder(ctx, v.after.ID, u.patch(v.after))
				return folderRecord(f), err
			}

			n, err := s.remote.UpdateNote(ctx, v.after.ID, u.patch(v.after))
			return noteRecord(n), err
		},
		confirm: func(st *State, v fieldChange, res client.Record) func(context.Context) {
			if cur := items.Find(st.Items, v.after.ID); cur != nil {
				if ts := millis(res.UpdatedAt); ts != 0 {
					cur.UpdatedAt = ts
				}
			}
			return nil
		},
		revert: func(st *State, v fieldChange) {
			if cur := items.Find(st.Items, v.after.ID); cur != nil {
				u.restore(cur, v.before)
				cur.UpdatedAt = v.before.UpdatedAt
			}
		},
	})
}

// Rename renames an item
func (s *Store) Rename(ctx context.Context, id, name string) error {
	return s.updateItem(ctx, id, fieldUpdate{
		op: "rename",
		mutate: func(st *State, it *items.Item) error {
			name = strings.TrimSpace(name)
			if name == "" {
				return syncerr.Validationf("rename", "name is empty")
			}

			it.Name = name
			return nil
		},
		restore: func(it *items.Item, before items.Item) {
			it.Name = before.Name
		},
		patch: renamePatch,
	})
}

// Move moves an item under the given folder, or to the top level if
// parentID is empty. Moving a folder under itself or its descendants is
// rejected.
func (s *Store) Move(ctx context.Context, id, parentID string) error {
	return s.updateItem(ctx, id, fieldUpdate{
		op: "move",
		mutate: func(st *State, it *items.Item) error {
			if err := s.validateParentLocked("move", parentID); err != nil {
				return err
			}
			if items.CreatesCycle(st.Items, id, parentID) {
				return syncerr.Validationf("move", "cannot move '%s' into itself or its descendant", id)
			}

			it.ParentID = parentID
			return nil
		},
		restore: func(it *items.Item, before items.Item) {
			it.ParentID = before.ParentID
		},
		patch: movePatch,
	})
}

// SetTags replaces the tags of an item. Trash markers cannot be set this way.
func (s *Store) SetTags(ctx context.Context, id string, tags []string) error {
	return s.updateItem(ctx, id, fieldUpdate{
		op: "set tags",
		mutate: func(st *State, it *items.Item) error {
			var clean []string
			for _, t := range tags {
				t = strings.TrimSpace(t)
				if t == "" || items.Contains(clean, t) {
					continue
				}
				if items.IsDeletedTag(t) {
					return syncerr.Validationf("set tags", "tag '%s' is reserved", t)
				}

				clean = append(clean, t)
			}

			it.Tags = clean
			return nil
		},
		restore: func(it *items.Item, before items.Item) {
			it.Tags = before.Tags
		},
		patch: tagsPatch,
	})
}

// SetPinned pins or unpins a file
func (s *Store) SetPinned(ctx context.Context, id string, pinned bool) error {
	return s.updateItem(ctx, id, fieldUpdate{
		op: "set pinned",
		mutate: func(st *State, it *items.Item) error {
			if !it.IsFile() {
				return syncerr.Validationf("set pinned", "'%s' is not a file", id)
			}

			it.IsPinned = pinned
			return nil
		},
		restore: func(it *items.Item, before items.Item) {
			it.IsPinned = before.IsPinned
		},
		patch: func(it items.Item) client.Patch {
			return client.Patch{"isPinned": it.IsPinned}
		},
	})
}

// SetFavorite marks or unmarks a file as favorite
func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool) error {
	return s.updateItem(ctx, id, fieldUpdate{
		op: "set favorite",
		mutate: func(st *State, it *items.Item) error {
			if !it.IsFile() {
				return syncerr.Validationf("set favorite", "'%s' is not a file", id)
			}

			it.IsFavorite = favorite
			return nil
		},
		restore: func(it *items.Item, before items.Item) {
			it.IsFavorite = before.IsFavorite
		},
		patch: func(it items.Item) client.Patch {
			return client.Patch{"isFavorite": it.IsFavorite}
		},
	})
}

// TogglePublic turns the public sharing link of a file on or off
func (s *Store) TogglePublic(ctx context.Context, id string) error {
	return s.updateItem(ctx, id, fieldUpdate{
		op: "toggle public",
		mutate: func(st *State, it *items.Item) error {
			if !it.IsFile() {
				return syncerr.Validationf("toggle public", "'%s' is not a file", id)
			}

			it.IsPublic = !it.IsPublic
			return nil
		},
		restore: func(it *items.Item, before items.Item) {
			it.IsPublic = before.IsPublic
		},
		patch: func(it items.Item) client.Patch {
			return client.Patch{"isPublic": it.IsPublic}
		},
		path: func(it items.Item) string {
			return client.NotePublicPath(it.ID)
		},
		send: func(ctx context.Context, it items.Item) (client.Record, error) {
			n, err := s.remote.SetNotePublic(ctx, it.ID, it.IsPublic)
			return noteRecord(n), err
		},
	})
}

// SetProtected marks or unmarks a file as protected. The flag is local.
func (s *Store) SetProtected(ctx context.Context, id string, protected bool) error {
	return s.updateItem(ctx, id, fieldUpdate{
		op: "set protected",
		mutate: func(st *State, it *items.Item) error {
			if !it.IsFile() {
				return syncerr.Validationf("set protected", "'%s' is not a file", id)
			}

			it.IsProtected = protected
			return nil
		},
		restore: func(it *items.Item, before items.Item) {
			it.IsProtected = before.IsProtected
		},
		local: true,
	})
}
