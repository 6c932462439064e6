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

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/queue"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/syncerr"
	"github.com/pkg/errors"
)

// trashMove is a set of items moved in or out of the trash. The root is
// first.
type trashMove struct {
	moved []items.Item
	// reparented is set when a restored root lost its parent
	reparented bool
}

func (m trashMove) root() items.Item {
	return m.moved[0]
}

func idSet(ids []string) map[string]bool {
	ret := make(map[string]bool, len(ids))
	for _, id := range ids {
		ret[id] = true
	}

	return ret
}

func tagEntries(s *Store, moved []items.Item) []queue.Entry {
	var ret []queue.Entry
	for _, it := range moved {
		ret = append(ret, s.newEntry(http.MethodPatch, itemPath(it), tagsPatch(it), it.ID)...)
	}

	return ret
}

// Delete moves an item and everything nested under it to the trash
func (s *Store) Delete(ctx context.Context, id string) error {
	return run(ctx, s, command[trashMove, struct{}]{
		name:   "delete",
		itemID: id,
		apply: func(st *State) (trashMove, error) {
			ids := items.Descendants(st.Items, id)
			if ids == nil {
				return trashMove{}, syncerr.Validationf("delete", "item '%s' not found", id)
			}
			set := idSet(ids)
			ts := s.nowMillis()

			moved := make(map[string]items.Item, len(ids))
			var keep []items.Item
			for _, it := range st.Items {
				if !set[it.ID] {
					keep = append(keep, it)
					continue
				}

				it.Tags = items.WithDeletedTag(it.Tags, ts)
				moved[it.ID] = it
			}
			st.Items = keep

			var trash []items.Item
			for _, it := range st.Trash {
				if !set[it.ID] {
					trash = append(trash, it)
				}
			}

			m := trashMove{}
			for _, cur := range ids {
				it := moved[cur]
				trash = append(trash, it)
				m.moved = append(m.moved, it.Clone())

				s.parkSaveLocked(it)
				if items.IsTemporaryID(cur) {
					st.OfflineQueue = queue.RemoveItem(st.OfflineQueue, cur)
				}
			}
			st.Trash = trash
			s.clearPointersLocked(set)

			return m, nil
		},
		offline: func(st *State, m trashMove) []queue.Entry {
			return tagEntries(s, m.moved)
		},
		send: func(ctx context.Context, m trashMove) (struct{}, error) {
			var err error
			if root := m.root(); root.IsFolder() {
				err = s.remote.DeleteFolder(ctx, root.ID)
			} else {
				err = s.remote.DeleteNote(ctx, root.ID)
			}
			if syncerr.Is(err, syncerr.NotFound) {
				return struct{}{}, nil
			}

			return struct{}{}, err
		},
	})
}

// parkSaveLocked cancels the debounced save of an item leaving the live
// tree and keeps its latest body in the local cache, so that a later sync
// can push it if the item is restored.
func (s *Store) parkSaveLocked(it items.Item) {
	if _, ok := s.pendingSaves[it.ID]; !ok {
		return
	}

	s.cancelSaveLocked(it.ID)
	if it.Content != nil {
		s.writeCacheLocked(it.ID, *it.Content, s.nowMillis())
	}
}

// Restore moves an item and everything nested under it out of the trash.
// If the parent of the item is no longer in the tree, the item is restored
// to the top level.
func (s *Store) Restore(ctx context.Context, id string) error {
	return run(ctx, s, command[trashMove, struct{}]{
		name:   "restore",
		itemID: id,
		apply: func(st *State) (trashMove, error) {
			ids := items.Descendants(st.Trash, id)
			if ids == nil {
				return trashMove{}, syncerr.Validationf("restore", "item '%s' not in trash", id)
			}
			set := idSet(ids)

			restored := make(map[string]items.Item, len(ids))
			var trash []items.Item
			for _, it := range st.Trash {
				if !set[it.ID] {
					trash = append(trash, it)
					continue
				}

				it.Tags = items.StripDeletedTags(it.Tags)
				restored[it.ID] = it
			}
			st.Trash = trash

			m := trashMove{}
			root := restored[id]
			if root.ParentID != "" && items.Find(st.Items, root.ParentID) == nil {
				root.ParentID = ""
				restored[id] = root
				m.reparented = true
			}

			for _, cur := range ids {
				it := restored[cur]
				if items.IndexOf(st.Items, cur) == -1 {
					st.Items = append(st.Items, it)
				}
				m.moved = append(m.moved, it.Clone())
			}

			return m, nil
		},
		offline: func(st *State, m trashMove) []queue.Entry {
			entries := tagEntries(s, m.moved)
			if root := m.root(); m.reparented {
				entries = append(entries, s.newEntry(http.MethodPatch, itemPath(root), movePatch(root), root.ID)...)
			}

			return entries
		},
		send: func(ctx context.Context, m trashMove) (struct{}, error) {
			if root := m.root(); root.IsFolder() {
				return struct{}{}, s.remote.RestoreFolder(ctx, root.ID)
			}

			return struct{}{}, s.remote.RestoreNote(ctx, m.root().ID)
		},
	})
}

// purge is a permanent deletion. remaining holds the items the server has
// not confirmed yet.
type purge struct {
	removed   []items.Item
	remaining []items.Item
}

// PermanentDelete removes an item in the trash and everything nested under
// it for good
func (s *Store) PermanentDelete(ctx context.Context, id string) error {
	return run(ctx, s, command[*purge, struct{}]{
		name:   "permanent delete",
		itemID: id,
		apply: func(st *State) (*purge, error) {
			ids := items.Descendants(st.Trash, id)
			if ids == nil {
				return nil, syncerr.Validationf("permanent delete", "item '%s' not in trash", id)
			}
			set := idSet(ids)

			p := &purge{}
			var trash []items.Item
			for _, it := range st.Trash {
				if !set[it.ID] {
					trash = append(trash, it)
				}
			}
			for _, cur := range ids {
				it := *items.Find(st.Trash, cur)
				s.cancelSaveLocked(cur)
				s.removeCacheLocked(cur)
				st.OfflineQueue = queue.RemoveItem(st.OfflineQueue, cur)

				if !items.IsTemporaryID(cur) {
					p.removed = append(p.removed, it.Clone())
				}
			}
			st.Trash = trash
			s.clearPointersLocked(set)
			p.remaining = p.removed

			return p, nil
		},
		route: func(st *State, p *purge, _ route) route {
			if len(p.removed) == 0 {
				return routeLocal
			}
			if !s.onlineLocked() {
				return routeQueue
			}

			return routeSend
		},
		offline: func(st *State, p *purge) []queue.Entry {
			var ret []queue.Entry
			for _, it := range p.remaining {
				ret = append(ret, s.newEntry(http.MethodDelete, purgePath(it), nil, it.ID)...)
			}

			return ret
		},
		send: func(ctx context.Context, p *purge) (struct{}, error) {
			var failed []items.Item
			var lastErr error

			for idx, it := range p.removed {
				var err error
				if it.IsFolder() {
					err = s.remote.PurgeFolder(ctx, it.ID)
				} else {
					err = s.remote.PurgeNote(ctx, it.ID)
				}
				if err == nil || syncerr.Is(err, syncerr.NotFound) {
					continue
				}
				if syncerr.Is(err, syncerr.Unauthorized) {
					p.remaining = append(failed, p.removed[idx:]...)
					return struct{}{}, err
				}

				failed = append(failed, it)
				lastErr = err
			}

			p.remaining = failed
			if lastErr != nil {
				return struct{}{}, errors.Wrapf(lastErr, "%d of %d items could not be deleted", len(failed), len(p.removed))
			}

			return struct{}{}, nil
		},
	})
}

// EmptyTrash removes every item in the trash for good
func (s *Store) EmptyTrash(ctx context.Context) error {
	for {
		s.mu.Lock()
		var id string
		for _, it := range s.state.Trash {
			if it.ParentID == "" || items.Find(s.state.Trash, it.ParentID) == nil {
				id = it.ID
				break
			}
		}
		s.mu.Unlock()

		if id == "" {
			return nil
		}
		if err := s.PermanentDelete(ctx, id); err != nil {
			return errors.Wrap(err, "deleting trash item")
		}
	}
}
