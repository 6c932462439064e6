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

package register

import (
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  godnotes register -u me@example.com`

var usernameFlag, passwordFlag string

// NewCmd returns a new register command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create an account on the server and login",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&usernameFlag, "username", "u", "", "email address of the new account")
	f.StringVarP(&passwordFlag, "password", "p", "", "password of the new account")

	return cmd
}

func newRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if ctx.Store.State().IsOfflineMode {
			return errors.New("offline mode is on. Run 'godnotes offline off' first")
		}

		email, password := usernameFlag, passwordFlag
		if err := ui.PromptCredentials(&email, &password); err != nil {
			return err
		}

		if err := ctx.Store.Register(cmd.Context(), email, password); err != nil {
			return errors.Wrap(err, "registering")
		}

		log.Successf("registered and logged in as %s\n", email)

		return nil
	}
}
