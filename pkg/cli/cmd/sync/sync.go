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

package sync

import (
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/scheduler"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Sync once
  godnotes sync

  * Keep syncing in the foreground until interrupted
  godnotes sync --daemon --interval 1m`

var daemonFlag bool
var intervalFlag time.Duration

// NewCmd returns a new sync command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sync",
		Aliases: []string{"s"},
		Short:   "Sync data with the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.BoolVarP(&daemonFlag, "daemon", "d", false, "keep running and sync periodically")
	f.DurationVar(&intervalFlag, "interval", 0, "time between two syncs in daemon mode (defaults to value in config)")

	return cmd
}

func checkReady(ctx context.GodnotesCtx, cmd *cobra.Command) error {
	state := ctx.Store.State()
	if state.IsOfflineMode {
		return errors.New("offline mode is on. Run 'godnotes offline off' first")
	}
	if !state.IsAuthenticated {
		return errors.New("not logged in. Run 'godnotes login' first")
	}
	if !ctx.Store.CheckAuth(cmd.Context()) {
		return errors.New("the session has expired. Run 'godnotes login' again")
	}

	return nil
}

func report(ctx context.GodnotesCtx) {
	if n := len(ctx.Store.State().OfflineQueue); n > 0 {
		log.Warnf("%d changes are waiting to be sent\n", n)
		return
	}

	log.Success("synced\n")
}

func runDaemon(ctx context.GodnotesCtx, cmd *cobra.Command) error {
	interval := ctx.SyncInterval
	if intervalFlag != 0 {
		interval = intervalFlag
	}

	s := scheduler.New(ctx.Store, interval, ctx.Logger)
	if _, err := s.RunOnce(cmd.Context()); err != nil {
		log.Errorf("syncing: %s\n", err.Error())
	}
	if err := s.Start(cmd.Context()); err != nil {
		return errors.Wrap(err, "starting the scheduler")
	}
	defer s.Stop()

	log.Infof("syncing every %s. Press Ctrl+C to stop\n", interval)
	<-cmd.Context().Done()

	return nil
}

func newRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if err := checkReady(ctx, cmd); err != nil {
			return err
		}

		if daemonFlag {
			return runDaemon(ctx, cmd)
		}

		if err := ctx.Store.Sync(cmd.Context()); err != nil {
			return errors.Wrap(err, "syncing")
		}

		report(ctx)

		return nil
	}
}
