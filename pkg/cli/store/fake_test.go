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
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/consts"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/localfs"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/clock"
	"github.com/pkg/errors"
)

// fakeRemote is an in-memory Remote recording every request. Hooks
// override the default responses.
type fakeRemote struct {
	mu     sync.Mutex
	calls  []string
	token  string
	nextID int

	folders []client.Folder
	notes   []client.Note
	trash   client.Trash

	onCreateFolder func(p client.CreateFolderPayload) (client.Folder, error)
	onCreateNote   func(p client.CreateNotePayload) (client.Note, error)
	onUpdateFolder func(id string, p client.Patch) (client.Folder, error)
	onUpdateNote   func(id string, p client.Patch) (client.Note, error)
	onDelete       func(path string) error
	onListNotes    func() ([]client.Note, error)
	onReplay       func(method, path string, payload json.RawMessage) (client.Record, error)
	onLogin        func(email, password string) (client.Session, error)
}

var serverTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func httpErr(status int) error {
	return &client.HTTPError{StatusCode: status, Message: http.StatusText(status)}
}

func (f *fakeRemote) record(method, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fmt.Sprintf("%s %s", method, path))
}

func (f *fakeRemote) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) newID(prefix string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeRemote) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.token = token
}

func (f *fakeRemote) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.token
}

func (f *fakeRemote) ListFolders(ctx context.Context) ([]client.Folder, error) {
	f.record(http.MethodGet, client.FoldersPath)
	return f.folders, nil
}

func (f *fakeRemote) CreateFolder(ctx context.Context, p client.CreateFolderPayload) (client.Folder, error) {
	f.record(http.MethodPost, client.FoldersPath)
	if f.onCreateFolder != nil {
		return f.onCreateFolder(p)
	}

	return client.Folder{ID: f.newID("folder"), Name: p.Name, ParentID: p.ParentID, CreatedAt: serverTime, UpdatedAt: serverTime}, nil
}

func (f *fakeRemote) UpdateFolder(ctx context.Context, id string, p client.Patch) (client.Folder, error) {
	f.record(http.MethodPatch, client.FolderPath(id))
	if f.onUpdateFolder != nil {
		return f.onUpdateFolder(id, p)
	}

	return client.Folder{ID: id, UpdatedAt: serverTime}, nil
}

func (f *fakeRemote) DeleteFolder(ctx context.Context, id string) error {
	f.record(http.MethodDelete, client.FolderPath(id))
	if f.onDelete != nil {
		return f.onDelete(client.FolderPath(id))
	}

	return nil
}

func (f *fakeRemote) PurgeFolder(ctx context.Context, id string) error {
	f.record(http.MethodDelete, client.PurgeFolderPath(id))
	if f.onDelete != nil {
		return f.onDelete(client.PurgeFolderPath(id))
	}

	return nil
}

func (f *fakeRemote) ListNotes(ctx context.Context) ([]client.Note, error) {
	f.record(http.MethodGet, client.NotesPath)
	if f.onListNotes != nil {
		return f.onListNotes()
	}

	return f.notes, nil
}

func (f *fakeRemote) GetNote(ctx context.Context, id string) (client.Note, error) {
	f.record(http.MethodGet, client.NotePath(id))
	for _, n := range f.notes {
		if n.ID == id {
			return n, nil
		}
	}

	return client.Note{}, httpErr(http.StatusNotFound)
}

func (f *fakeRemote) CreateNote(ctx context.Context, p client.CreateNotePayload) (client.Note, error) {
	f.record(http.MethodPost, client.NotesPath)
	if f.onCreateNote != nil {
		return f.onCreateNote(p)
	}

	content := p.Content
	return client.Note{ID: f.newID("note"), Title: p.Title, Content: &content, FolderID: p.FolderID, CreatedAt: serverTime, UpdatedAt: serverTime}, nil
}

func (f *fakeRemote) UpdateNote(ctx context.Context, id string, p client.Patch) (client.Note, error) {
	f.record(http.MethodPatch, client.NotePath(id))
	if f.onUpdateNote != nil {
		return f.onUpdateNote(id, p)
	}

	return client.Note{ID: id, UpdatedAt: serverTime}, nil
}

func (f *fakeRemote) DeleteNote(ctx context.Context, id string) error {
	f.record(http.MethodDelete, client.NotePath(id))
	if f.onDelete != nil {
		return f.onDelete(client.NotePath(id))
	}

	return nil
}

func (f *fakeRemote) PurgeNote(ctx context.Context, id string) error {
	f.record(http.MethodDelete, client.PurgeNotePath(id))
	if f.onDelete != nil {
		return f.onDelete(client.PurgeNotePath(id))
	}

	return nil
}

func (f *fakeRemote) SetNotePublic(ctx context.Context, id string, public bool) (client.Note, error) {
	f.record(http.MethodPatch, client.NotePublicPath(id))
	return client.Note{ID: id, IsPublic: public, UpdatedAt: serverTime}, nil
}

func (f *fakeRemote) ListTrash(ctx context.Context) (client.Trash, error) {
	f.record(http.MethodGet, client.TrashPath)
	return f.trash, nil
}

func (f *fakeRemote) RestoreFolder(ctx context.Context, id string) error {
	f.record(http.MethodPost, client.RestoreFolderPath(id))
	return nil
}

func (f *fakeRemote) RestoreNote(ctx context.Context, id string) error {
	f.record(http.MethodPost, client.RestoreNotePath(id))
	return nil
}

func (f *fakeRemote) Login(ctx context.Context, email, password string) (client.Session, error) {
	f.record(http.MethodPost, "/auth/login")
	if f.onLogin != nil {
		return f.onLogin(email, password)
	}

	return client.Session{Token: "token-" + email, User: client.User{ID: "user-1", Email: email}}, nil
}

func (f *fakeRemote) Register(ctx context.Context, email, password string) (client.Session, error) {
	f.record(http.MethodPost, "/auth/register")
	return client.Session{Token: "token-" + email, User: client.User{ID: "user-1", Email: email}}, nil
}

func (f *fakeRemote) Me(ctx context.Context) (client.User, error) {
	f.record(http.MethodGet, "/auth/me")
	if f.Token() == "" {
		return client.User{}, httpErr(http.StatusUnauthorized)
	}

	return client.User{ID: "user-1", Email: "alice@example.com"}, nil
}

func (f *fakeRemote) Logout(ctx context.Context) error {
	f.record(http.MethodPost, "/auth/logout")
	return nil
}

func (f *fakeRemote) Replay(ctx context.Context, method, path string, payload json.RawMessage) (client.Record, error) {
	f.record(method, path)
	if f.onReplay != nil {
		return f.onReplay(method, path, payload)
	}

	if method == http.MethodPost && (path == client.FoldersPath || path == client.NotesPath) {
		prefix := "note"
		if path == client.FoldersPath {
			prefix = "folder"
		}

		return client.Record{ID: f.newID(prefix), CreatedAt: serverTime, UpdatedAt: serverTime}, nil
	}

	return client.Record{UpdatedAt: serverTime}, nil
}

// memoryKV is a Persister over a map
type memoryKV struct {
	mu     sync.Mutex
	values map[string]string
	saves  int
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}}
}

func (m *memoryKV) Load(keys []string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ret := map[string]string{}
	for _, k := range keys {
		if v, ok := m.values[k]; ok {
			ret[k] = v
		}
	}

	return ret, nil
}

func (m *memoryKV) Save(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range values {
		m.values[k] = v
	}
	m.saves++

	return nil
}

func (m *memoryKV) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.values, k)
	}

	return nil
}

func (m *memoryKV) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ret []string
	for k := range m.values {
		ret = append(ret, k)
	}
	sort.Strings(ret)

	return ret
}

type testEnv struct {
	store  *Store
	remote *fakeRemote
	kv     *memoryKV
	files  *localfs.Memory
	clock  *clock.Mock
}

// newTestEnv returns an initialized store. The session is signed in when
// authenticated is true.
func newTestEnv(t *testing.T, authenticated bool) testEnv {
	env := testEnv{
		remote: &fakeRemote{},
		kv:     newMemoryKV(),
		files:  localfs.NewMemory(),
		clock:  clock.NewMock(),
	}
	if authenticated {
		env.kv.values[consts.SystemSessionKey] = "some-token"
	}

	env.store = New(Options{
		Remote: env.remote,
		KV:     env.kv,
		Files:  env.files,
		Clock:  env.clock,
	})
	if err := env.store.Init(context.Background()); err != nil {
		t.Fatal(errors.Wrap(err, "initializing store"))
	}

	return env
}

// seed replaces the state of the store
func (env testEnv) seed(fn func(st *State)) {
	env.store.mu.Lock()
	defer env.store.mu.Unlock()

	fn(&env.store.state)
	env.store.persistLocked()
}

func (env testEnv) seedManifest(m localfs.Manifest) {
	env.store.mu.Lock()
	defer env.store.mu.Unlock()

	env.store.manifest = m
}

// newDBEnv is like newTestEnv but persists to a sqlite database
func newDBEnv(t *testing.T) (*Store, *database.DB, *fakeRemote) {
	db := database.InitTestMemoryDB(t)
	remote := &fakeRemote{}

	s := New(Options{
		Remote: remote,
		KV:     database.NewKV(db, nil),
		Clock:  clock.NewMock(),
	})
	if err := s.Init(context.Background()); err != nil {
		t.Fatal(errors.Wrap(err, "initializing store"))
	}

	return s, db, remote
}

func ids(list []string) string {
	return strings.Join(list, ",")
}
