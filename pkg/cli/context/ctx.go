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

// Package context defines the godnotes runtime context
package context

import (
	stdctx "context"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/localfs"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/store"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/clock"
	"go.uber.org/zap"
)

// Paths contain directory definitions
type Paths struct {
	Home   string
	Config string
	Data   string
	Cache  string
}

// GodnotesCtx is a context holding the information of the current runtime
type GodnotesCtx struct {
	Paths        Paths
	Version      string
	APIEndpoint  string
	Editor       string
	SyncInterval time.Duration
	DB           *database.DB
	Files        localfs.Storage
	Clock        clock.Clock
	Client       *client.Client
	Store        *store.Store
	Logger       *zap.SugaredLogger
}

// Close saves pending edits and releases the database
func (c GodnotesCtx) Close() error {
	if c.Store != nil {
		if err := c.Store.Dispose(stdctx.Background()); err != nil {
			return err
		}
	}
	if c.DB != nil {
		return c.DB.Close()
	}

	return nil
}
