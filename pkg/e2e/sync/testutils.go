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

// Package sync runs the item store against a real server in the same
// process
package sync

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	cliDatabase "github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/localfs"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/store"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/clock"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/app"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/controllers"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
	apitest "github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/testutils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	testEmail    = "alice@example.com"
	testPassword = "pass1234"
)

// testEnv holds the test environment for a single test
type testEnv struct {
	t        *testing.T
	ctx      context.Context
	Server   *httptest.Server
	ServerDB *gorm.DB
	App      *app.App
	Client   *client.Client
	DB       *cliDatabase.DB
	Files    *localfs.Memory
	Clock    *clock.Mock
	Store    *store.Store
}

// setupTestServer creates a test server with its own database
func setupTestServer(t *testing.T) (*httptest.Server, *gorm.DB, *app.App) {
	db := apitest.InitMemoryDB(t)

	a := app.NewTest()
	a.Clock = clock.New()
	a.DB = db

	server, err := controllers.NewServer(&a)
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing server"))
	}
	t.Cleanup(server.Close)

	return server, db, &a
}

// setupTestEnv creates an isolated environment with a server, a local
// database and a store that is not signed in
func setupTestEnv(t *testing.T) *testEnv {
	server, serverDB, a := setupTestServer(t)

	env := &testEnv{
		t:        t,
		ctx:      context.Background(),
		Server:   server,
		ServerDB: serverDB,
		App:      a,
		DB:       cliDatabase.InitTestMemoryDB(t),
		Files:    localfs.NewMemory(),
		Clock:    clock.NewMock(),
	}
	env.Client = newClient(server)
	env.Store = env.openStore(false)

	return env
}

func newClient(server *httptest.Server) *client.Client {
	noRetry := client.RetryConfig{MaxAttempts: 1}

	return client.New(fmt.Sprintf("%s/api", server.URL), client.Options{
		Version: "e2e",
		Retry:   &noRetry,
	})
}

// openStore initializes a store over the local database of the env, as the
// command line does on every run
func (e *testEnv) openStore(offline bool) *store.Store {
	return e.openStoreFor(e.Client, offline)
}

// openStoreFor initializes a store over the local database of the env that
// talks to the given client
func (e *testEnv) openStoreFor(c *client.Client, offline bool) *store.Store {
	s := store.New(store.Options{
		Remote:   c,
		KV:       cliDatabase.NewKV(e.DB, e.Clock),
		Files:    e.Files,
		Clock:    e.Clock,
		Debounce: time.Second,
		Offline:  offline,
	})
	if err := s.Init(e.ctx); err != nil {
		e.t.Fatal(errors.Wrap(err, "initializing store"))
	}
	e.t.Cleanup(func() { s.Dispose(context.Background()) })

	return s
}

// register signs up the test user through the store
func (e *testEnv) register() {
	if err := e.Store.Register(e.ctx, testEmail, testPassword); err != nil {
		e.t.Fatal(errors.Wrap(err, "registering"))
	}
}

func (e *testEnv) mustOK(err error, message string) {
	if err != nil {
		e.t.Fatal(errors.Wrap(err, message))
	}
}

// serverUser returns the test user as stored by the server
func (e *testEnv) serverUser() database.User {
	var user database.User
	apitest.MustExec(e.t, e.ServerDB.Where("email = ?", testEmail).First(&user), "finding user")

	return user
}

// serverNote returns a note including trashed ones. ok is false if it does
// not exist.
func (e *testEnv) serverNote(id string) (database.Note, bool) {
	var note database.Note
	err := e.ServerDB.Unscoped().Where("id = ?", id).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return note, false
	}
	if err != nil {
		e.t.Fatal(errors.Wrap(err, "finding note"))
	}

	return note, true
}

// serverFolder returns a folder including trashed ones. ok is false if it
// does not exist.
func (e *testEnv) serverFolder(id string) (database.Folder, bool) {
	var folder database.Folder
	err := e.ServerDB.Unscoped().Where("id = ?", id).First(&folder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return folder, false
	}
	if err != nil {
		e.t.Fatal(errors.Wrap(err, "finding folder"))
	}

	return folder, true
}

func (e *testEnv) countServer(model interface{}) int64 {
	var count int64
	apitest.MustExec(e.t, e.ServerDB.Unscoped().Model(model).Count(&count), "counting records")

	return count
}
