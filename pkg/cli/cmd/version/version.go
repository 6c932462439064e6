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

package version

import (
	"fmt"
	"io"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/spf13/cobra"
)

var verbose bool

var example = `
  godnotes version
  godnotes version --verbose`

// NewCmd returns a new version command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the version number of godnotes",
		Example: example,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout(), ctx, verbose)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&verbose, "verbose", "v", false, "also print the endpoint, paths and session")

	return cmd
}

func printVersion(w io.Writer, ctx context.GodnotesCtx, verbose bool) {
	fmt.Fprintf(w, "godnotes %s\n", ctx.Version)
	if !verbose {
		return
	}

	fmt.Fprintf(w, "api endpoint: %s\n", ctx.APIEndpoint)
	fmt.Fprintf(w, "config dir:   %s\n", context.GodnotesDir(ctx.Paths.Config))
	if ctx.DB != nil {
		fmt.Fprintf(w, "database:     %s\n", ctx.DB.Filepath)
	}
	if ctx.Store == nil {
		return
	}

	state := ctx.Store.State()
	session := "logged out"
	if state.IsAuthenticated && state.User != nil {
		session = fmt.Sprintf("logged in as %s", state.User.Email)
	} else if state.IsAuthenticated {
		session = "logged in"
	}
	if state.IsOfflineMode {
		session += ", offline"
	}
	fmt.Fprintf(w, "session:      %s\n", session)
	fmt.Fprintf(w, "queued:       %d\n", len(state.OfflineQueue))
}
