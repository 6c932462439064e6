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
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/localfs"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/queue"
)

// reconcileIDLocked replaces oldID with the server assigned newID in every
// piece of state referencing it. Timestamps of zero are left unchanged.
func (s *Store) reconcileIDLocked(oldID, newID string, createdAt, updatedAt int64) {
	it := items.Find(s.state.Items, oldID)
	if it == nil {
		it = items.Find(s.state.Trash, oldID)
	}
	if it != nil {
		it.ID = newID
		if createdAt != 0 {
			it.CreatedAt = createdAt
		}
		if updatedAt != 0 {
			it.UpdatedAt = updatedAt
		}
		it.IsPending = false
	}
	if oldID == newID {
		return
	}

	s.logger.Debugw("reconciling item id", "old", oldID, "new", newID)

	var relinked []string
	for _, list := range [][]items.Item{s.state.Items, s.state.Trash} {
		for idx := range list {
			cur := &list[idx]
			if cur.ParentID == oldID {
				cur.ParentID = newID
			}
			cur.Backlinks = items.Replace(cur.Backlinks, oldID, newID)

			if cur.Content == nil {
				continue
			}
			if content, changed := items.RewriteLinks(*cur.Content, oldID, newID); changed {
				cur.Content = &content
				relinked = append(relinked, cur.ID)
			}
		}
	}

	if s.state.ActiveFileID == oldID {
		s.state.ActiveFileID = newID
	}
	s.state.OpenFiles = items.Replace(s.state.OpenFiles, oldID, newID)
	s.state.ExpandedFolders = items.Replace(s.state.ExpandedFolders, oldID, newID)
	if s.state.LastCreatedFileID == oldID {
		s.state.LastCreatedFileID = newID
	}
	if s.state.LastSavedFileID == oldID {
		s.state.LastSavedFileID = newID
	}

	if ts, ok := s.manifest[oldID]; ok {
		delete(s.manifest, oldID)
		if updatedAt != 0 {
			ts = updatedAt
		}
		s.manifest[newID] = ts
	}
	s.migrateCachedBodyLocked(oldID, newID, it)

	s.state.OfflineQueue = queue.RewriteItemID(s.state.OfflineQueue, oldID, newID)

	if ps, ok := s.pendingSaves[oldID]; ok {
		delete(s.pendingSaves, oldID)
		ps.id = newID
		s.pendingSaves[newID] = ps
	}

	for _, id := range relinked {
		if items.Find(s.state.Items, id) != nil {
			s.scheduleSaveLocked(id)
		}
	}
}

// migrateCachedBodyLocked copies the cached body of oldID to newID and
// deletes the old copy. An unreadable old copy is replaced by the
// in-memory content.
func (s *Store) migrateCachedBodyLocked(oldID, newID string, it *items.Item) {
	if s.files == nil {
		return
	}

	oldPath := localfs.NotePath(oldID)
	ok, err := s.files.Exists(oldPath)
	if err != nil || !ok {
		return
	}

	body, err := s.files.ReadFile(oldPath)
	if err != nil {
		s.logger.Warnw("reading cached body, falling back to memory", "id", oldID, "error", err)
		if it == nil || it.Content == nil {
			return
		}
		body = []byte(*it.Content)
	}

	if err := s.files.WriteFile(localfs.NotePath(newID), body); err != nil {
		s.logger.Errorw("writing cached body", "id", newID, "error", err)
		return
	}
	if err := s.files.DeleteFile(oldPath); err != nil {
		s.logger.Warnw("deleting old cached body", "id", oldID, "error", err)
	}
}
