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
	"encoding/json"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/consts"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/syncerr"
	"github.com/pkg/errors"
)

// Login signs in, replaces the data of any previous user and merges the
// items on the server
func (s *Store) Login(ctx context.Context, email, password string) error {
	session, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return errors.Wrap(err, "logging in")
	}

	return s.startSession(ctx, session)
}

// Register creates an account and signs in
func (s *Store) Register(ctx context.Context, email, password string) error {
	session, err := s.remote.Register(ctx, email, password)
	if err != nil {
		return errors.Wrap(err, "registering")
	}

	return s.startSession(ctx, session)
}

func (s *Store) startSession(ctx context.Context, session client.Session) error {
	s.mu.Lock()

	if s.kv != nil {
		if err := s.kv.Delete(UserScopedKeys...); err != nil {
			s.mu.Unlock()
			return errors.Wrap(err, "clearing data of the previous user")
		}

		user, err := json.Marshal(session.User)
		if err != nil {
			s.mu.Unlock()
			return errors.Wrap(err, "marshalling user")
		}
		if err := s.kv.Save(map[string]string{
			consts.SystemSessionKey:  session.Token,
			consts.SystemSessionUser: string(user),
		}); err != nil {
			s.mu.Unlock()
			return errors.Wrap(err, "saving session")
		}
	}

	// changes made before signing in stay and are merged into the account
	s.persistLocked()

	s.remote.SetToken(session.Token)
	u := session.User
	s.state.User = &u
	s.state.IsAuthenticated = true
	s.mu.Unlock()

	s.afterAuth(ctx)

	return nil
}

// afterAuth merges the server state into the items and replays the queue
func (s *Store) afterAuth(ctx context.Context) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	if _, _, err := s.fetchAndMerge(ctx); err != nil {
		s.logger.Warnw("merging server items after sign in", "error", err)
	}
	if err := s.FetchTrash(ctx); err != nil {
		s.logger.Warnw("fetching trash after sign in", "error", err)
	}

	s.drain(ctx)
}

// CheckAuth verifies the stored session with the server. A rejected session
// is cleared; an unreachable server leaves it in place.
func (s *Store) CheckAuth(ctx context.Context) bool {
	s.mu.Lock()
	authenticated := s.state.IsAuthenticated
	offline := s.state.IsOfflineMode
	s.mu.Unlock()

	if !authenticated {
		return false
	}
	if offline {
		return true
	}

	user, err := s.remote.Me(ctx)
	if err != nil {
		s.mu.Lock()
		s.handleFailureLocked("check auth", err, nil, nil)
		ok := s.state.IsAuthenticated
		s.mu.Unlock()

		return ok
	}

	s.mu.Lock()
	s.state.User = &user
	s.mu.Unlock()

	s.afterAuth(ctx)

	return true
}

// Logout ends the session and removes the data of the user from this
// device. Changes still in the offline queue are lost.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	online := s.onlineLocked()
	s.mu.Unlock()

	if online {
		if err := s.remote.Logout(ctx); err != nil && !syncerr.Is(err, syncerr.Unauthorized) {
			s.logger.Warnw("ending session on the server", "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsAuthenticated = false
	s.state.User = nil
	s.remote.SetToken("")
	s.clearUserDataLocked()

	if s.kv != nil {
		keys := append([]string{consts.SystemSessionKey}, UserScopedKeys...)
		if err := s.kv.Delete(keys...); err != nil {
			return errors.Wrap(err, "clearing session")
		}
	}

	return nil
}

// clearUserDataLocked drops the in-memory state stored under UserScopedKeys
func (s *Store) clearUserDataLocked() {
	for id := range s.pendingSaves {
		s.cancelSaveLocked(id)
	}

	s.state.Items = nil
	s.state.Trash = nil
	s.state.ActiveFileID = ""
	s.state.OpenFiles = nil
	s.state.ExpandedFolders = nil
	s.state.OfflineQueue = nil
	s.state.LastCreatedFileID = ""
	s.state.LastSavedFileID = ""
}
