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

// Package store holds the items of the signed in user and keeps them in
// sync with the server. Every mutation is applied locally first, persisted,
// and then sent to the server or recorded in the offline queue.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/consts"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/localfs"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/queue"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Remote is the Persistence Service
type Remote interface {
	SetToken(token string)

	ListFolders(ctx context.Context) ([]client.Folder, error)
	CreateFolder(ctx context.Context, p client.CreateFolderPayload) (client.Folder, error)
	UpdateFolder(ctx context.Context, id string, p client.Patch) (client.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
	PurgeFolder(ctx context.Context, id string) error

	ListNotes(ctx context.Context) ([]client.Note, error)
	GetNote(ctx context.Context, id string) (client.Note, error)
	CreateNote(ctx context.Context, p client.CreateNotePayload) (client.Note, error)
	UpdateNote(ctx context.Context, id string, p client.Patch) (client.Note, error)
	DeleteNote(ctx context.Context, id string) error
	PurgeNote(ctx context.Context, id string) error
	SetNotePublic(ctx context.Context, id string, public bool) (client.Note, error)

	ListTrash(ctx context.Context) (client.Trash, error)
	RestoreFolder(ctx context.Context, id string) error
	RestoreNote(ctx context.Context, id string) error

	Login(ctx context.Context, email, password string) (client.Session, error)
	Register(ctx context.Context, email, password string) (client.Session, error)
	Me(ctx context.Context) (client.User, error)
	Logout(ctx context.Context) error

	Replay(ctx context.Context, method, path string, payload json.RawMessage) (client.Record, error)
}

// Persister is a durable key/value capability holding the local snapshot
type Persister interface {
	Load(keys []string) (map[string]string, error)
	Save(values map[string]string) error
	Delete(keys ...string) error
}

// Snapshot keys
const (
	KeyItems           = "items"
	KeyTrash           = "trash"
	KeyActiveFileID    = "active_file_id"
	KeyOpenFiles       = "open_files"
	KeyExpandedFolders = "expanded_folders"
	KeySortOrder       = "sort_order"
	KeyTheme           = "theme"
	KeyOfflineQueue    = "offline_queue"
)

var snapshotKeys = []string{
	KeyItems,
	KeyTrash,
	KeyActiveFileID,
	KeyOpenFiles,
	KeyExpandedFolders,
	KeySortOrder,
	KeyTheme,
	KeyOfflineQueue,
}

// UserScopedKeys hold the data of the signed-in user and are removed
// whenever the session changes hands. Sort order and theme belong to the
// device.
var UserScopedKeys = []string{
	KeyItems,
	KeyTrash,
	KeyActiveFileID,
	KeyOpenFiles,
	KeyExpandedFolders,
	KeyOfflineQueue,
	consts.SystemSessionUser,
}

// State is the in-memory state of the store
type State struct {
	Items             []items.Item
	Trash             []items.Item
	ActiveFileID      string
	OpenFiles         []string
	ExpandedFolders   []string
	SortOrder         string
	Theme             string
	OfflineQueue      []queue.Entry
	LastCreatedFileID string
	LastSavedFileID   string
	IsAuthenticated   bool
	IsOfflineMode     bool
	User              *client.User
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	ret := s
	ret.Items = items.CloneAll(s.Items)
	ret.Trash = items.CloneAll(s.Trash)
	ret.OpenFiles = append([]string(nil), s.OpenFiles...)
	ret.ExpandedFolders = append([]string(nil), s.ExpandedFolders...)
	if s.OfflineQueue != nil {
		ret.OfflineQueue = make([]queue.Entry, len(s.OfflineQueue))
		copy(ret.OfflineQueue, s.OfflineQueue)
	}
	if s.User != nil {
		u := *s.User
		ret.User = &u
	}

	return ret
}

// Options configures a Store
type Options struct {
	Remote Remote
	KV     Persister
	// Files caches note bodies and the sync manifest. Nil if the capability
	// is absent.
	Files    localfs.Storage
	Clock    clock.Clock
	Logger   *zap.SugaredLogger
	Debounce time.Duration
	// Offline starts the store in offline mode.
	Offline bool
}

type pendingSave struct {
	timer clock.Timer
	// id is rewritten when the item is reconciled
	id string
}

// Store owns the items, the offline queue and the sync manifest
type Store struct {
	mu           sync.Mutex
	state        State
	manifest     localfs.Manifest
	pendingSaves map[string]*pendingSave

	// syncMu serializes queue drains and syncs
	syncMu sync.Mutex
	// inflight tracks saves started by debounce timers
	inflight sync.WaitGroup

	remote   Remote
	kv       Persister
	files    localfs.Storage
	clock    clock.Clock
	logger   *zap.SugaredLogger
	debounce time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// New returns a store. Call Init before use.
func New(opts Options) *Store {
	c := opts.Clock
	if c == nil {
		c = clock.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	debounce := opts.Debounce
	if debounce == 0 {
		debounce = consts.ContentDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Store{
		state:        State{IsOfflineMode: opts.Offline},
		manifest:     localfs.Manifest{},
		pendingSaves: map[string]*pendingSave{},
		remote:       opts.Remote,
		kv:           opts.KV,
		files:        opts.Files,
		clock:        c,
		logger:       logger,
		debounce:     debounce,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Init loads the persisted snapshot, the sync manifest and the session
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv != nil {
		keys := append(append([]string{}, snapshotKeys...), consts.SystemSessionKey, consts.SystemSessionUser)
		values, err := s.kv.Load(keys)
		if err != nil {
			return errors.Wrap(err, "loading snapshot")
		}

		if err := decodeSnapshot(values, &s.state); err != nil {
			return errors.Wrap(err, "decoding snapshot")
		}

		if token := values[consts.SystemSessionKey]; token != "" {
			s.remote.SetToken(token)
			s.state.IsAuthenticated = true
		}
		if raw := values[consts.SystemSessionUser]; raw != "" {
			var u client.User
			if err := json.Unmarshal([]byte(raw), &u); err == nil {
				s.state.User = &u
			}
		}
	}

	m, err := localfs.LoadManifest(s.files)
	if err != nil {
		s.logger.Warnw("ignoring unreadable sync manifest", "error", err)
		m = localfs.Manifest{}
	}
	s.manifest = m

	return nil
}

// Dispose saves every pending edit and stops background work
func (s *Store) Dispose(ctx context.Context) error {
	s.Flush(ctx)
	s.inflight.Wait()
	s.cancel()

	return nil
}

// State returns a copy of the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// Manifest returns a copy of the sync manifest
func (s *Store) Manifest() localfs.Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.manifest.Clone()
}

func decodeSnapshot(values map[string]string, st *State) error {
	jsonKeys := map[string]interface{}{
		KeyItems:           &st.Items,
		KeyTrash:           &st.Trash,
		KeyOpenFiles:       &st.OpenFiles,
		KeyExpandedFolders: &st.ExpandedFolders,
		KeyOfflineQueue:    &st.OfflineQueue,
	}
	for k, dest := range jsonKeys {
		raw, ok := values[k]
		if !ok || raw == "" {
			continue
		}

		if err := json.Unmarshal([]byte(raw), dest); err != nil {
			return errors.Wrapf(err, "unmarshalling '%s'", k)
		}
	}

	st.ActiveFileID = values[KeyActiveFileID]
	st.SortOrder = values[KeySortOrder]
	st.Theme = values[KeyTheme]

	return nil
}

func encodeSnapshot(st State) (map[string]string, error) {
	ret := map[string]string{
		KeyActiveFileID: st.ActiveFileID,
		KeySortOrder:    st.SortOrder,
		KeyTheme:        st.Theme,
	}

	jsonKeys := map[string]interface{}{
		KeyItems:           st.Items,
		KeyTrash:           st.Trash,
		KeyOpenFiles:       st.OpenFiles,
		KeyExpandedFolders: st.ExpandedFolders,
		KeyOfflineQueue:    st.OfflineQueue,
	}
	for k, v := range jsonKeys {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, "marshalling '%s'", k)
		}

		ret[k] = string(b)
	}

	return ret, nil
}

// persistLocked writes the snapshot and the sync manifest. Failures are
// logged; the in-memory state stays authoritative.
func (s *Store) persistLocked() {
	if s.kv != nil {
		values, err := encodeSnapshot(s.state)
		if err != nil {
			s.logger.Errorw("encoding snapshot", "error", err)
		} else if err := s.kv.Save(values); err != nil {
			s.logger.Errorw("saving snapshot", "error", err)
		}
	}

	if err := localfs.SaveManifest(s.files, s.manifest); err != nil {
		s.logger.Errorw("saving sync manifest", "error", err)
	}
}

func (s *Store) nowMillis() int64 {
	return s.clock.Now().UnixMilli()
}

func (s *Store) onlineLocked() bool {
	return s.state.IsAuthenticated && !s.state.IsOfflineMode
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.UnixMilli()
}

// SetOfflineMode switches offline mode. Going online drains the queue.
func (s *Store) SetOfflineMode(ctx context.Context, offline bool) {
	s.mu.Lock()
	wasOffline := s.state.IsOfflineMode
	s.state.IsOfflineMode = offline
	s.mu.Unlock()

	if wasOffline && !offline {
		s.DrainQueue(ctx)
	}
}
