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
	"reflect"
	"strings"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/queue"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/syncerr"
)

// AddFile creates a file under the given folder, or at the top level if
// parentID is empty. The file becomes active and open. It returns the id of
// the file, which is temporary until the server confirms the creation.
func (s *Store) AddFile(ctx context.Context, parentID, name, content string) (string, error) {
	return s.add(ctx, items.Item{
		Name:     name,
		Type:     items.TypeFile,
		ParentID: parentID,
		Content:  items.StringPtr(content),
	})
}

// AddFolder creates a folder under the given folder, or at the top level if
// parentID is empty.
func (s *Store) AddFolder(ctx context.Context, parentID, name string) (string, error) {
	return s.add(ctx, items.Item{
		Name:     name,
		Type:     items.TypeFolder,
		ParentID: parentID,
	})
}

func (s *Store) validateParentLocked(op, parentID string) error {
	if parentID == "" {
		return nil
	}

	parent := items.Find(s.state.Items, parentID)
	if parent == nil || !parent.IsFolder() {
		return syncerr.Validationf(op, "folder '%s' not found", parentID)
	}

	return nil
}

func (s *Store) add(ctx context.Context, it items.Item) (string, error) {
	var id string

	err := run(ctx, s, command[items.Item, client.Record]{
		name: "create",
		apply: func(st *State) (items.Item, error) {
			it.Name = strings.TrimSpace(it.Name)
			if it.Name == "" {
				return items.Item{}, syncerr.Validationf("create", "name is empty")
			}
			if err := s.validateParentLocked("create", it.ParentID); err != nil {
				return items.Item{}, err
			}

			now := s.nowMillis()
			it.ID = items.NewTemporaryID()
			it.CreatedAt = now
			it.UpdatedAt = now
			it.IsPending = true

			st.Items = append(st.Items, it)
			if it.IsFile() {
				st.ActiveFileID = it.ID
				if !items.Contains(st.OpenFiles, it.ID) {
					st.OpenFiles = append(st.OpenFiles, it.ID)
				}
				st.LastCreatedFileID = it.ID
				if it.Content != nil {
					items.UpdateBacklinks(st.Items, it.ID, *it.Content)
				}
			}

			id = it.ID
			return it.Clone(), nil
		},
		route: func(st *State, v items.Item, _ route) route {
			if !st.IsAuthenticated {
				return routeLocal
			}
			if items.IsTemporaryID(v.ParentID) {
				if queue.HasCreate(st.OfflineQueue, v.ParentID) {
					return routeQueue
				}
				return routeLocal
			}
			if st.IsOfflineMode {
				return routeQueue
			}

			return routeSend
		},
		offline: func(st *State, v items.Item) []queue.Entry {
			return s.newEntry(http.MethodPost, createPath(v), createPayload(v), v.ID)
		},
		send: func(ctx context.Context, v items.Item) (client.Record, error) {
			if v.IsFolder() {
				f, err := s.remote.CreateFolder(ctx, createPayload(v).(client.CreateFolderPayload))
				return folderRecord(f), err
			}

			n, err := s.remote.CreateNote(ctx, createPayload(v).(client.CreateNotePayload))
			return noteRecord(n), err
		},
		confirm: func(st *State, v items.Item, res client.Record) func(context.Context) {
			updatedAt := millis(res.UpdatedAt)
			s.reconcileIDLocked(v.ID, res.ID, millis(res.CreatedAt), updatedAt)
			if v.IsFile() {
				s.writeCacheLocked(res.ID, v.ContentString(), updatedAt)
			}

			return s.driftFollowUpLocked(v, res.ID)
		},
		done: func(st *State, v items.Item) {
			if cur := items.Find(st.Items, v.ID); cur != nil {
				cur.IsPending = false
			}
		},
	})

	return id, err
}

// driftFollowUpLocked compares an item confirmed by the server with the
// fields it was created with. Changes made while the creation was in flight
// are sent as a follow-up.
func (s *Store) driftFollowUpLocked(sent items.Item, id string) func(context.Context) {
	if f := s.trashFollowUpLocked(id); f != nil {
		return f
	}

	cur := items.Find(s.state.Items, id)
	if cur == nil {
		return nil
	}

	if cur.IsFile() && cur.ContentString() != sent.ContentString() {
		s.scheduleSaveLocked(id)
	}

	sent.ID = id
	want := metadataPatch(*cur)
	if reflect.DeepEqual(want, metadataPatch(sent)) {
		return nil
	}

	it := cur.Clone()
	return func(ctx context.Context) {
		s.sendPatch(ctx, "update after create", it, want)
	}
}

// trashFollowUpLocked returns the DELETE for an item that was moved to the
// trash before the server confirmed its creation
func (s *Store) trashFollowUpLocked(id string) func(context.Context) {
	trashed := items.Find(s.state.Trash, id)
	if trashed == nil {
		return nil
	}

	it := trashed.Clone()
	return func(ctx context.Context) {
		s.sendDelete(ctx, it)
	}
}

// sendPatch sends a PATCH for the item, queueing it on failure
func (s *Store) sendPatch(ctx context.Context, op string, it items.Item, p client.Patch) {
	var err error
	if it.IsFolder() {
		_, err = s.remote.UpdateFolder(ctx, it.ID, p)
	} else {
		_, err = s.remote.UpdateNote(ctx, it.ID, p)
	}
	if err == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	enqueue := func() {
		s.enqueueLocked(s.newEntry(http.MethodPatch, itemPath(it), p, it.ID)...)
	}
	s.handleFailureLocked(op, err, enqueue, enqueue)
	s.persistLocked()
}

// sendDelete moves the item to the trash on the server, queueing the
// request on failure
func (s *Store) sendDelete(ctx context.Context, it items.Item) {
	var err error
	if it.IsFolder() {
		err = s.remote.DeleteFolder(ctx, it.ID)
	} else {
		err = s.remote.DeleteNote(ctx, it.ID)
	}
	if err == nil || syncerr.Is(err, syncerr.NotFound) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	enqueue := func() {
		s.enqueueLocked(s.newEntry(http.MethodDelete, itemPath(it), nil, it.ID)...)
	}
	s.handleFailureLocked("delete", err, enqueue, enqueue)
	s.persistLocked()
}
