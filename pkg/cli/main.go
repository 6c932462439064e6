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

package main

import (
	stdctx "context"
	"os"
	"os/signal"
	"syscall"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	// commands
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/add"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/cat"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/diff"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/edit"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/find"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/login"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/logout"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/ls"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/mv"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/offline"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/register"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/remove"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/restore"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/root"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/set"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/sync"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/cmd/version"
)

// apiEndpoint and versionTag are populated during link time
var apiEndpoint string
var versionTag = "master"

func run() int {
	args := os.Args[1:]
	dbPath := root.DBPathFromArgs(args)

	ctx, err := infra.Init(versionTag, apiEndpoint, dbPath)
	if err != nil {
		panic(errors.Wrap(err, "initializing context"))
	}
	defer func() {
		if err := ctx.Close(); err != nil {
			log.Errorf("closing: %s\n", err.Error())
		}
	}()

	r := root.New()
	r.Register(
		add.NewCmd(*ctx),
		cat.NewCmd(*ctx),
		diff.NewCmd(*ctx),
		edit.NewCmd(*ctx),
		find.NewCmd(*ctx),
		login.NewCmd(*ctx),
		logout.NewCmd(*ctx),
		ls.NewCmd(*ctx),
		mv.NewCmd(*ctx),
		offline.NewCmd(*ctx),
		register.NewCmd(*ctx),
		remove.NewCmd(*ctx),
		restore.NewCmd(*ctx),
		set.NewCmd(*ctx),
		sync.NewCmd(*ctx),
		version.NewCmd(*ctx),
	)

	sigCtx, stop := signal.NotifyContext(stdctx.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.Execute(sigCtx, args); err != nil {
		log.Errorf("%s\n", err.Error())
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}
