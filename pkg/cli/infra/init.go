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

// Package infra sets up the local environment of godnotes
package infra

import (
	stdctx "context"
	"os"
	"path/filepath"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/config"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/consts"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/localfs"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/store"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/utils"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/clock"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/dirs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RunEFunc is a function type of godnotes commands
type RunEFunc func(*cobra.Command, []string) error

func getDBPath(paths context.Paths, customPath string) string {
	if customPath != "" {
		return customPath
	}

	return filepath.Join(context.GodnotesDir(paths.Data), consts.GodnotesDBFileName)
}

// Init initializes the godnotes environment and returns a new context.
// A non-empty apiEndpoint overrides the configured one for this run, and is
// written to a newly created config file.
func Init(versionTag, apiEndpoint, dbPath string) (*context.GodnotesCtx, error) {
	b := dirs.Current()
	paths := context.Paths{
		Home:   b.Home,
		Config: b.Config,
		Data:   b.Data,
		Cache:  b.Cache,
	}

	if err := initFiles(paths, apiEndpoint); err != nil {
		return nil, errors.Wrap(err, "initializing files")
	}

	if err := config.LoadEnvFile(paths.Config); err != nil {
		return nil, errors.Wrap(err, "loading env file")
	}
	cf, err := config.Read(paths.Config)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	if apiEndpoint != "" {
		cf.APIEndpoint = apiEndpoint
	}

	db, err := database.Open(getDBPath(paths, dbPath))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to db")
	}
	n, err := database.Migrate(db)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "running migration")
	}
	log.Debug("applied %d migrations\n", n)

	ctx, err := setupCtx(paths, versionTag, cf, db)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "setting up the context")
	}

	log.Debug("context: endpoint=%s offline=%t\n", ctx.APIEndpoint, cf.Offline)

	return &ctx, nil
}

// setupCtx wires the client and the store on top of the database
func setupCtx(paths context.Paths, versionTag string, cf config.Config, db *database.DB) (context.GodnotesCtx, error) {
	c := clock.New()
	logger := log.NewEngineLogger(false)
	files := localfs.NewDir(context.GodnotesDir(paths.Data))

	cl := client.New(cf.APIEndpoint, client.Options{Version: versionTag})
	s := store.New(store.Options{
		Remote:  cl,
		KV:      database.NewKV(db, c),
		Files:   files,
		Clock:   c,
		Logger:  logger,
		Offline: cf.Offline,
	})
	if err := s.Init(stdctx.Background()); err != nil {
		return context.GodnotesCtx{}, errors.Wrap(err, "initializing store")
	}

	if cf.SortOrder != "" {
		s.SetSortOrder(cf.SortOrder)
	}
	if cf.Theme != "" {
		s.SetTheme(cf.Theme)
	}

	return context.GodnotesCtx{
		Paths:        paths,
		Version:      versionTag,
		APIEndpoint:  cf.APIEndpoint,
		Editor:       cf.Editor,
		SyncInterval: cf.SyncInterval,
		DB:           db,
		Files:        files,
		Clock:        c,
		Client:       cl,
		Store:        s,
		Logger:       logger,
	}, nil
}

// getEditorCommand returns the system's editor command with appropriate flags,
// if necessary, to make the command wait until editor is close to exit.
func getEditorCommand() string {
	editor := os.Getenv("EDITOR")

	switch editor {
	case "atom":
		return "atom -w"
	case "subl":
		return "subl -n -w"
	case "code":
		return "code -n -w"
	case "mate":
		return "mate -w"
	case "vim", "nano", "emacs", "nvim":
		return editor
	default:
		return "vi"
	}
}

// initConfigFile populates a new config file if it does not exist yet
func initConfigFile(configHome, apiEndpoint string) error {
	path := config.GetPath(configHome)
	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking if config exists")
	}
	if ok {
		return nil
	}

	if err := config.Write(configHome, config.Default(apiEndpoint, getEditorCommand())); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}

// initFiles creates, if necessary, the godnotes directories and files inside
func initFiles(paths context.Paths, apiEndpoint string) error {
	if err := context.InitGodnotesDirs(paths); err != nil {
		return errors.Wrap(err, "creating the godnotes dir")
	}
	if err := initConfigFile(paths.Config, apiEndpoint); err != nil {
		return errors.Wrap(err, "generating the config file")
	}

	return nil
}
