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

package logout

import (
	"fmt"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrNotLoggedIn is an error for logging out when not logged in
var ErrNotLoggedIn = errors.New("not logged in")

var yesFlag bool

var example = `
  godnotes logout

  * Log out even though some changes were not pushed yet
  godnotes logout --yes`

// NewCmd returns a new logout command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logout",
		Short:   "End the session on this device",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation when changes are still queued")

	return cmd
}

// unsyncedQuestion returns the confirmation to ask before logging out, or an
// empty string when nothing is waiting to be pushed
func unsyncedQuestion(queued int) string {
	switch queued {
	case 0:
		return ""
	case 1:
		return "1 change is not synced yet. log out anyway?"
	default:
		return fmt.Sprintf("%d changes are not synced yet. log out anyway?", queued)
	}
}

// Do ends the session. Queued changes stay on the device.
func Do(ctx context.GodnotesCtx, cmd *cobra.Command) error {
	if !ctx.Store.State().IsAuthenticated {
		return ErrNotLoggedIn
	}

	if err := ctx.Store.Logout(cmd.Context()); err != nil {
		return errors.Wrap(err, "clearing the session")
	}

	return nil
}

func newRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		state := ctx.Store.State()

		if q := unsyncedQuestion(len(state.OfflineQueue)); q != "" && state.IsAuthenticated && !yesFlag {
			ok, err := ui.Confirm(q, false)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !ok {
				log.Warnf("aborted by user\n")
				return nil
			}
		}

		err := Do(ctx, cmd)
		if errors.Is(err, ErrNotLoggedIn) {
			log.Error("not logged in\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "logging out")
		}

		log.Success("logged out\n")

		return nil
	}
}
