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

package context

import (
	stdctx "context"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/localfs"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/store"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TestCtxOptions configures InitTestCtx
type TestCtxOptions struct {
	APIEndpoint string
	Offline     bool
}

// InitTestCtx initializes a test context with an in-memory database, a
// temporary directory for all paths and a store talking to APIEndpoint
func InitTestCtx(t *testing.T, opts TestCtxOptions) GodnotesCtx {
	tmpDir := t.TempDir()
	paths := Paths{
		Home:   tmpDir,
		Cache:  tmpDir,
		Config: tmpDir,
		Data:   tmpDir,
	}
	if err := InitGodnotesDirs(paths); err != nil {
		t.Fatal(errors.Wrap(err, "creating test directories"))
	}

	db := database.InitTestMemoryDB(t)
	files := localfs.NewDir(GodnotesDir(paths.Data))

	c := clock.NewMock()
	logger := zap.NewNop().Sugar()
	cl := client.New(opts.APIEndpoint, client.Options{Version: "test"})
	s := store.New(store.Options{
		Remote:  cl,
		KV:      database.NewKV(db, c),
		Files:   files,
		Clock:   c,
		Logger:  logger,
		Offline: opts.Offline,
	})
	if err := s.Init(stdctx.Background()); err != nil {
		t.Fatal(errors.Wrap(err, "initializing store"))
	}

	return GodnotesCtx{
		Paths:       paths,
		Version:     "test",
		APIEndpoint: opts.APIEndpoint,
		DB:          db,
		Files:       files,
		Clock:       c,
		Client:      cl,
		Store:       s,
		Logger:      logger,
	}
}
