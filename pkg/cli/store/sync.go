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
	"sort"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/queue"
	"github.com/pkg/errors"
)

// queueSender replays queue entries through the remote
type queueSender struct {
	remote Remote
}

func (q queueSender) Send(ctx context.Context, e queue.Entry) (queue.Result, error) {
	rec, err := q.remote.Replay(ctx, e.Method, e.Endpoint, e.Payload)
	if err != nil {
		return queue.Result{}, err
	}

	return queue.Result{
		ID:        rec.ID,
		CreatedAt: millis(rec.CreatedAt),
		UpdatedAt: millis(rec.UpdatedAt),
	}, nil
}

// DrainQueue replays the offline queue. Entries queued while the drain is
// running are kept behind the remaining ones.
func (s *Store) DrainQueue(ctx context.Context) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	s.drain(ctx)
}

func (s *Store) drain(ctx context.Context) {
	s.mu.Lock()
	snapshot := make([]queue.Entry, len(s.state.OfflineQueue))
	copy(snapshot, s.state.OfflineQueue)
	opts := queue.DrainOptions{
		IsAuthenticated: s.state.IsAuthenticated,
		IsOfflineMode:   s.state.IsOfflineMode,
		Logger:          s.logger,
		OnUnauthorized: func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			s.setLoggedOutLocked()
		},
		OnCreated: func(e queue.Entry, res queue.Result) {
			s.mu.Lock()
			s.reconcileIDLocked(e.ItemID, res.ID, res.CreatedAt, res.UpdatedAt)
			followUp := s.trashFollowUpLocked(res.ID)
			s.persistLocked()
			s.mu.Unlock()

			// later edits are queued behind the creation, but a delete drops
			// the queued creation and has nothing to replay
			if followUp != nil {
				followUp(ctx)
			}
		},
		OnDropped: func(e queue.Entry, err error) {
			s.logger.Errorw("change was not saved to the server", "itemId", e.ItemID, "endpoint", e.Endpoint)
		},
	}
	s.mu.Unlock()

	if len(snapshot) == 0 {
		return
	}

	remaining := queue.Drain(ctx, snapshot, queueSender{remote: s.remote}, opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(snapshot))
	for _, e := range snapshot {
		seen[e.ID] = true
	}

	ret := remaining
	for _, e := range s.state.OfflineQueue {
		if !seen[e.ID] {
			ret = append(ret, e)
		}
	}

	s.state.OfflineQueue = ret
	s.persistLocked()
}

// keepLocalLocked returns the merge rules protecting local changes that
// the server has not seen yet
func (s *Store) keepLocalLocked() keepLocal {
	q := s.state.OfflineQueue
	trash := s.state.Trash
	manifest := s.manifest.Clone()
	pending := make(map[string]bool, len(s.pendingSaves))
	for id := range s.pendingSaves {
		pending[id] = true
	}

	return keepLocal{
		content: func(id string, serverUpdatedAt int64) bool {
			if pending[id] || queue.HasPatchField(q, id, "content") {
				return true
			}
			ts, ok := manifest[id]
			return ok && ts > serverUpdatedAt
		},
		field: func(id, field string) bool {
			return queue.HasPatchField(q, id, field)
		},
		trashed: func(id string) bool {
			return items.Find(trash, id) != nil
		},
	}
}

// applyMergeLocked replaces the items if the merge changed anything
func (s *Store) applyMergeLocked(merged []items.Item) {
	if items.Compare(s.state.Items, merged) && items.SameContent(s.state.Items, merged) {
		return
	}

	s.state.Items = merged
	s.persistLocked()
}

// fetchAndMerge fetches the folders and notes of the user and merges them
func (s *Store) fetchAndMerge(ctx context.Context) ([]client.Folder, []client.Note, error) {
	folders, err := s.remote.ListFolders(ctx)
	if err != nil {
		return nil, nil, s.fetchFailed("fetch folders", err)
	}
	notes, err := s.remote.ListNotes(ctx)
	if err != nil {
		return nil, nil, s.fetchFailed("fetch notes", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.keepLocalLocked()
	merged := mergeFolders(s.state.Items, folders, k)
	merged = mergeNotes(merged, notes, k)
	s.applyMergeLocked(merged)

	return folders, notes, nil
}

func (s *Store) fetchFailed(op string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handleFailureLocked(op, err, nil, nil)
	return errors.Wrap(err, op)
}

// FetchFolders merges the folders on the server into the items
func (s *Store) FetchFolders(ctx context.Context) error {
	folders, err := s.remote.ListFolders(ctx)
	if err != nil {
		return s.fetchFailed("fetch folders", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.applyMergeLocked(mergeFolders(s.state.Items, folders, s.keepLocalLocked()))
	return nil
}

// FetchNotes merges the notes on the server into the items
func (s *Store) FetchNotes(ctx context.Context) error {
	notes, err := s.remote.ListNotes(ctx)
	if err != nil {
		return s.fetchFailed("fetch notes", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.applyMergeLocked(mergeNotes(s.state.Items, notes, s.keepLocalLocked()))
	return nil
}

// FetchTrash replaces the trash with the one on the server. Local trash
// entries with queued changes are kept.
func (s *Store) FetchTrash(ctx context.Context) error {
	t, err := s.remote.ListTrash(ctx)
	if err != nil {
		return s.fetchFailed("fetch trash", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowMillis()
	var trash []items.Item
	for _, f := range t.Folders {
		it := folderItem(f)
		ensureDeletedTag(&it, f.DeletedAt, now)
		trash = append(trash, it)
	}
	for _, n := range t.Notes {
		it := noteItem(n)
		if local := items.Find(s.state.Trash, n.ID); local != nil && it.Content == nil {
			it.Content = local.Content
		}
		ensureDeletedTag(&it, n.DeletedAt, now)
		trash = append(trash, it)
	}

	for _, it := range s.state.Trash {
		if items.IndexOf(trash, it.ID) == -1 && queue.HasItem(s.state.OfflineQueue, it.ID) {
			trash = append(trash, it)
		}
	}

	if items.Compare(s.state.Trash, trash) && items.SameContent(s.state.Trash, trash) {
		return nil
	}
	s.state.Trash = trash
	s.persistLocked()

	return nil
}

func ensureDeletedTag(it *items.Item, deletedAt *time.Time, now int64) {
	if it.IsDeleted() {
		return
	}

	ts := now
	if deletedAt != nil {
		ts = millis(*deletedAt)
	}
	it.Tags = items.WithDeletedTag(it.Tags, ts)
}

// SyncMissingNotes creates on the server the local items it has no record
// of, and reconciles their ids
func (s *Store) SyncMissingNotes(ctx context.Context) error {
	notes, err := s.remote.ListNotes(ctx)
	if err != nil {
		return s.fetchFailed("fetch notes", err)
	}

	s.syncMissing(ctx, notes)
	return nil
}

// missingLocked returns the ids of the items to create on the server:
// folders with a temporary id, parents first, then files unknown to the
// server. Items whose creation is queued or in flight are skipped.
func (s *Store) missingLocked(notes []client.Note) []string {
	onServer := make(map[string]bool, len(notes))
	for _, n := range notes {
		onServer[n.ID] = true
	}

	var folders, files []items.Item
	for _, it := range s.state.Items {
		if it.IsPending || it.IsDeleted() || queue.HasCreate(s.state.OfflineQueue, it.ID) {
			continue
		}
		if items.Find(s.state.Trash, it.ID) != nil {
			continue
		}

		switch {
		case it.IsFolder() && items.IsTemporaryID(it.ID):
			folders = append(folders, it)
		case it.IsFile() && !onServer[it.ID]:
			files = append(files, it)
		}
	}

	depth := func(id string) int {
		return items.Depth(s.state.Items, id)
	}
	sort.SliceStable(folders, func(i, j int) bool {
		return depth(folders[i].ID) < depth(folders[j].ID)
	})

	var ret []string
	for _, it := range append(folders, files...) {
		ret = append(ret, it.ID)
	}

	return ret
}

func (s *Store) syncMissing(ctx context.Context, notes []client.Note) {
	s.mu.Lock()
	ids := s.missingLocked(notes)
	s.mu.Unlock()

	for _, id := range ids {
		if !s.createMissing(ctx, id) {
			return
		}
	}
}

// createMissing creates a single item on the server. It returns false if
// the session was lost.
func (s *Store) createMissing(ctx context.Context, id string) bool {
	s.mu.Lock()
	it := items.Find(s.state.Items, id)
	if it == nil || it.IsPending || items.IsTemporaryID(it.ParentID) || !s.onlineLocked() {
		ok := s.onlineLocked()
		s.mu.Unlock()
		return ok
	}
	it.IsPending = true
	sent := it.Clone()
	s.mu.Unlock()

	var rec client.Record
	var err error
	if sent.IsFolder() {
		var f client.Folder
		f, err = s.remote.CreateFolder(ctx, createPayload(sent).(client.CreateFolderPayload))
		rec = folderRecord(f)
	} else {
		var n client.Note
		n, err = s.remote.CreateNote(ctx, createPayload(sent).(client.CreateNotePayload))
		rec = noteRecord(n)
	}

	s.mu.Lock()
	if cur := items.Find(s.state.Items, id); cur != nil {
		cur.IsPending = false
	}
	if err != nil {
		s.handleFailureLocked("create missing item", err, nil, nil)
		s.persistLocked()
		ok := s.onlineLocked()
		s.mu.Unlock()
		return ok
	}

	updatedAt := millis(rec.UpdatedAt)
	s.reconcileIDLocked(id, rec.ID, millis(rec.CreatedAt), updatedAt)
	if sent.IsFile() {
		s.writeCacheLocked(rec.ID, sent.ContentString(), updatedAt)
	}
	followUp := s.driftFollowUpLocked(sent, rec.ID)
	s.persistLocked()
	s.mu.Unlock()

	if followUp != nil {
		followUp(ctx)
	}

	return true
}

// pushFresherContent saves the notes whose local body is newer than the
// server copy
func (s *Store) pushFresherContent(ctx context.Context, notes []client.Note) {
	s.mu.Lock()
	var ids []string
	for _, n := range notes {
		it := items.Find(s.state.Items, n.ID)
		if it == nil || it.Content == nil || it.IsPending {
			continue
		}
		if _, ok := s.pendingSaves[n.ID]; ok {
			continue
		}
		if queue.HasPatchField(s.state.OfflineQueue, n.ID, "content") {
			continue
		}

		if ts, ok := s.manifest[n.ID]; ok && ts > millis(n.UpdatedAt) {
			ids = append(ids, n.ID)
		}
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.logger.Debugw("pushing local content newer than the server", "id", id)
		s.saveContent(ctx, id)
	}
}

// Sync replays the offline queue, merges the server state, creates the
// items the server is missing and pushes newer local content
func (s *Store) Sync(ctx context.Context) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	s.mu.Lock()
	online := s.onlineLocked()
	s.mu.Unlock()
	if !online {
		return nil
	}

	s.drain(ctx)

	_, notes, err := s.fetchAndMerge(ctx)
	if err != nil {
		return errors.Wrap(err, "merging server state")
	}

	s.syncMissing(ctx, notes)
	s.pushFresherContent(ctx, notes)

	if err := s.FetchTrash(ctx); err != nil {
		return errors.Wrap(err, "fetching trash")
	}

	return nil
}
