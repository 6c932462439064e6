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

// Package root builds the top level godnotes command
package root

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// DBPathFlag is the name of the flag overriding the database location
const DBPathFlag = "dbPath"

// Root is the top level command and the commands registered on it
type Root struct {
	cmd    *cobra.Command
	dbPath string
}

// New returns a root command without any subcommands
func New() *Root {
	r := &Root{
		cmd: &cobra.Command{
			Use:           "godnotes",
			Short:         "godnotes - notes that keep working offline",
			SilenceErrors: true,
			SilenceUsage:  true,
			CompletionOptions: cobra.CompletionOptions{
				DisableDefaultCmd: true,
			},
		},
	}

	r.cmd.PersistentFlags().StringVar(&r.dbPath, DBPathFlag, "", "the path to the database file (defaults to standard location)")

	return r
}

// Command returns the underlying cobra command
func (r *Root) Command() *cobra.Command {
	return r.cmd
}

// Register adds subcommands
func (r *Root) Register(cmds ...*cobra.Command) {
	r.cmd.AddCommand(cmds...)
}

// Execute runs the command matching args. Commands receive ctx through
// cmd.Context().
func (r *Root) Execute(ctx context.Context, args []string) error {
	r.cmd.SetArgs(args)

	return r.cmd.ExecuteContext(ctx)
}

// DBPathFromArgs extracts the database path flag from raw arguments, wherever
// it appears relative to the subcommand. The database is opened before the
// subcommands are built, so cobra has not parsed anything yet.
func DBPathFromArgs(args []string) string {
	long := "--" + DBPathFlag
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, long+"="); ok {
			return v
		}
		if arg == long && i+1 < len(args) {
			return args[i+1]
		}
	}

	return ""
}
