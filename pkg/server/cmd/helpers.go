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

package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/clock"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/app"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/config"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/log"
	"github.com/pkg/errors"
)

func initApp(cfg config.Config) (app.App, error) {
	db, err := database.Setup(cfg.DSN(), cfg.LogLevel)
	if err != nil {
		return app.App{}, errors.Wrap(err, "initializing database")
	}

	a, err := app.New(db, clock.New(), cfg)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return app.App{}, errors.Wrap(err, "validating app")
	}

	return a, nil
}

func closeDB(a *app.App) {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.ErrorWrap(err, "closing database")
	}
}

// printFlags prints flags with -- prefix for consistency with CLI
func printFlags(fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		fmt.Printf("  --%s", f.Name)

		name, usage := flag.UnquoteUsage(f)
		if name != "" {
			fmt.Printf(" %s", name)
		}
		fmt.Println()

		if usage != "" {
			fmt.Printf("    \t%s", usage)
			if f.DefValue != "" && f.DefValue != "false" {
				fmt.Printf(" (default: %s)", f.DefValue)
			}
			fmt.Println()
		}
	})
}

// setupFlagSet creates a FlagSet with standard usage format
func setupFlagSet(name, usageCmd string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Printf(`Usage:
  %s [flags]

Flags:
`, usageCmd)
		printFlags(fs)
	}
	return fs
}

// requireString validates that a required string flag is not empty
func requireString(fs *flag.FlagSet, value, fieldName string) {
	if value == "" {
		fmt.Printf("Error: %s is required\n", fieldName)
		fs.Usage()
		os.Exit(1)
	}
}

type dbFlags struct {
	envFile     *string
	dbPath      *string
	databaseURL *string
}

func addDBFlags(fs *flag.FlagSet) dbFlags {
	return dbFlags{
		envFile:     fs.String("envFile", "", "Dotenv file to load before reading the environment"),
		dbPath:      fs.String("dbPath", "", "Path to SQLite database file (env: DBPath, default: $XDG_DATA_HOME/godnotes/server.db)"),
		databaseURL: fs.String("databaseUrl", "", "Postgres connection url, used instead of dbPath when set (env: DATABASE_URL)"),
	}
}

// setupAppWithDB creates config, initializes app, and returns cleanup function
func setupAppWithDB(fs *flag.FlagSet, f dbFlags) (*app.App, func()) {
	cfg, err := config.New(config.Params{
		EnvFile:     *f.envFile,
		DBPath:      *f.dbPath,
		DatabaseURL: *f.databaseURL,
	})
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		fs.Usage()
		os.Exit(1)
	}

	a, err := initApp(cfg)
	if err != nil {
		log.ErrorWrap(err, "initializing app")
		os.Exit(1)
	}

	return &a, func() { closeDB(&a) }
}
