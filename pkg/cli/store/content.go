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

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/localfs"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/syncerr"
	"github.com/pkg/errors"
)

// UpdateFileContent replaces the content of a file. The change is applied
// and persisted immediately; the save to the server happens once edits to
// the file have been quiet for the debounce period.
func (s *Store) UpdateFileContent(id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := items.Find(s.state.Items, id)
	if it == nil || !it.IsFile() {
		return syncerr.Validationf("update file content", "file '%s' not found", id)
	}

	it.Content = items.StringPtr(content)
	it.UpdatedAt = s.nowMillis()
	items.UpdateBacklinks(s.state.Items, id, content)

	s.persistLocked()
	s.scheduleSaveLocked(id)

	return nil
}

// scheduleSaveLocked (re)starts the debounce of the given file
func (s *Store) scheduleSaveLocked(id string) {
	if ps, ok := s.pendingSaves[id]; ok {
		ps.timer.Stop()
		delete(s.pendingSaves, id)
	}

	ps := &pendingSave{id: id}
	ps.timer = s.clock.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		cur := ps.id
		if s.pendingSaves[cur] != ps {
			s.mu.Unlock()
			return
		}
		delete(s.pendingSaves, cur)
		s.inflight.Add(1)
		s.mu.Unlock()

		defer s.inflight.Done()
		s.saveContent(s.ctx, cur)
	})
	s.pendingSaves[id] = ps
}

func (s *Store) cancelSaveLocked(id string) {
	if ps, ok := s.pendingSaves[id]; ok {
		ps.timer.Stop()
		delete(s.pendingSaves, id)
	}
}

// PendingSaves returns the number of files waiting for their debounce
func (s *Store) PendingSaves() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.pendingSaves)
}

// Flush saves every file waiting for its debounce now. A timer that already
// fired and waits for the lock finds its entry gone and does nothing, so the
// save happens here either way.
func (s *Store) Flush(ctx context.Context) {
	s.mu.Lock()
	var ids []string
	for key, ps := range s.pendingSaves {
		ps.timer.Stop()
		ids = append(ids, ps.id)
		delete(s.pendingSaves, key)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.saveContent(ctx, id)
	}
}

// writeCacheLocked writes the body of a file to the local cache and
// records ts in the sync manifest
func (s *Store) writeCacheLocked(id, content string, ts int64) {
	if s.files == nil {
		return
	}

	if err := s.files.WriteFile(localfs.NotePath(id), []byte(content)); err != nil {
		s.logger.Errorw("writing cached body", "id", id, "error", err)
		return
	}
	s.manifest[id] = ts
}

func (s *Store) removeCacheLocked(id string) {
	delete(s.manifest, id)
	if s.files == nil {
		return
	}

	if err := s.files.DeleteFile(localfs.NotePath(id)); err != nil {
		s.logger.Warnw("deleting cached body", "id", id, "error", err)
	}
}

func (s *Store) contentEntryLocked(id, content string) {
	s.enqueueLocked(s.newEntry(http.MethodPatch, client.NotePath(id), client.Patch{"content": content}, id)...)
}

// saveContent writes the content of a file to the local cache and then to
// the server
func (s *Store) saveContent(ctx context.Context, id string) {
	s.mu.Lock()

	it := items.Find(s.state.Items, id)
	if it == nil || !it.IsFile() {
		s.mu.Unlock()
		return
	}
	content := it.ContentString()
	s.writeCacheLocked(id, content, s.nowMillis())

	switch s.routeLocked(id) {
	case routeQueue:
		s.contentEntryLocked(id, content)
		s.persistLocked()
		s.mu.Unlock()
		return
	case routeLocal:
		recreate := items.IsTemporaryID(id) && s.onlineLocked() && !it.IsPending
		s.persistLocked()
		s.mu.Unlock()

		if recreate {
			s.recoverMissingNote(ctx, id)
		}
		return
	}

	s.persistLocked()
	s.mu.Unlock()

	note, err := s.remote.UpdateNote(ctx, id, client.Patch{"content": content})

	if err != nil && syncerr.Is(err, syncerr.NotFound) {
		s.logger.Infow("note missing on the server, recreating", "id", id)
		s.recoverMissingNote(ctx, id)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.handleFailureLocked("save content", err, func() {
			s.contentEntryLocked(id, content)
		}, func() {
			s.contentEntryLocked(id, content)
		})
		s.persistLocked()
		return
	}

	updatedAt := millis(note.UpdatedAt)
	if cur := items.Find(s.state.Items, id); cur != nil && updatedAt != 0 {
		cur.UpdatedAt = updatedAt
		if s.files != nil {
			s.manifest[id] = updatedAt
		}
	}
	s.state.LastSavedFileID = id
	s.persistLocked()
}

// recoverMissingNote creates a note the server has no record of under a new
// id and reconciles it. It only does so for a note that still exists
// locally and was not deleted by this client.
func (s *Store) recoverMissingNote(ctx context.Context, id string) {
	s.mu.Lock()

	it := items.Find(s.state.Items, id)
	if it == nil || !it.IsFile() || it.IsDeleted() || items.Find(s.state.Trash, id) != nil {
		s.logger.Infow("not recreating note deleted locally", "id", id)
		s.mu.Unlock()
		return
	}
	if it.IsPending || items.IsTemporaryID(it.ParentID) {
		s.mu.Unlock()
		return
	}

	it.IsPending = true
	sent := it.Clone()
	s.mu.Unlock()

	note, err := s.remote.CreateNote(ctx, createPayload(sent).(client.CreateNotePayload))

	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := items.Find(s.state.Items, id); cur != nil {
		cur.IsPending = false
	}
	if err != nil {
		s.handleFailureLocked("recreate note", err, nil, nil)
		s.persistLocked()
		return
	}

	newID := note.ID
	updatedAt := millis(note.UpdatedAt)
	s.reconcileIDLocked(id, newID, millis(note.CreatedAt), updatedAt)
	s.state.LastSavedFileID = newID
	if s.files != nil && updatedAt != 0 {
		s.manifest[newID] = updatedAt
	}

	if cur := items.Find(s.state.Items, newID); cur != nil && cur.ContentString() != sent.ContentString() {
		s.scheduleSaveLocked(newID)
	}

	s.persistLocked()
}

// LoadFileContent returns the content of a file, hydrating it from the
// local cache when that copy is fresh, or from the server.
func (s *Store) LoadFileContent(ctx context.Context, id string) (string, error) {
	s.mu.Lock()

	it := items.Find(s.state.Items, id)
	if it == nil {
		it = items.Find(s.state.Trash, id)
	}
	if it == nil || !it.IsFile() {
		s.mu.Unlock()
		return "", syncerr.New(syncerr.NotFound, "load file content", errors.Errorf("file '%s' not found", id))
	}
	if it.Content != nil {
		content := *it.Content
		s.mu.Unlock()
		return content, nil
	}

	if body, ok := s.readCacheLocked(*it); ok {
		it.Content = items.StringPtr(body)
		s.persistLocked()
		s.mu.Unlock()
		return body, nil
	}

	if items.IsTemporaryID(id) || !s.onlineLocked() {
		s.mu.Unlock()
		return "", nil
	}
	s.mu.Unlock()

	note, err := s.remote.GetNote(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.handleFailureLocked("load file content", err, nil, nil)
		return "", errors.Wrap(err, "fetching note")
	}

	content := ""
	if note.Content != nil {
		content = *note.Content
	}

	if cur := items.Find(s.state.Items, id); cur != nil && cur.Content == nil {
		cur.Content = items.StringPtr(content)
		updatedAt := millis(note.UpdatedAt)
		s.writeCacheLocked(id, content, updatedAt)
		s.persistLocked()
	}

	return content, nil
}

// readCacheLocked returns the cached body of the item if the manifest
// records it as at least as fresh as the item
func (s *Store) readCacheLocked(it items.Item) (string, bool) {
	if s.files == nil {
		return "", false
	}

	ts, ok := s.manifest[it.ID]
	if !ok || ts < it.UpdatedAt {
		return "", false
	}

	body, err := s.files.ReadFile(localfs.NotePath(it.ID))
	if err != nil {
		s.logger.Warnw("reading cached body", "id", it.ID, "error", err)
		return "", false
	}

	return string(body), true
}
