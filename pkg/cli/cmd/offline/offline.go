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

package offline

import (
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/config"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Show whether offline mode is on
  godnotes offline

  * Stop talking to the server and queue every change
  godnotes offline on

  * Go back online and send the queued changes
  godnotes offline off`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.New("Incorrect number of argument")
	}
	if len(args) == 1 && args[0] != "on" && args[0] != "off" {
		return errors.Errorf("expected 'on' or 'off', got '%s'", args[0])
	}

	return nil
}

// NewCmd returns a new offline command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "offline [on|off]",
		Short:   "Show or change offline mode",
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	return cmd
}

func status(ctx context.GodnotesCtx) {
	state := ctx.Store.State()
	if state.IsOfflineMode {
		log.Infof("offline mode is on. %d changes are queued\n", len(state.OfflineQueue))
		return
	}

	log.Info("offline mode is off\n")
}

func newRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			status(ctx)
			return nil
		}

		offline := args[0] == "on"

		cf, err := config.Read(ctx.Paths.Config)
		if err != nil {
			return errors.Wrap(err, "reading config")
		}
		cf.Offline = offline
		if err := config.Write(ctx.Paths.Config, cf); err != nil {
			return errors.Wrap(err, "writing config")
		}

		ctx.Store.SetOfflineMode(cmd.Context(), offline)
		status(ctx)

		return nil
	}
}
