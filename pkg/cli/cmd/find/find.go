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

package find

import (
	"strings"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/consts"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  # find notes by a keyword
  godnotes find rpoplpush

  # find notes by multiple keywords
  godnotes find "building a heap"

  # show more results
  godnotes find merge --limit 50
	`

var limitFlag int

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}
	if limitFlag < 1 {
		return errors.New("--limit must be positive")
	}

	return nil
}

// NewCmd returns a new find command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "find",
		Short:   "Find notes by names and content",
		Aliases: []string{"f"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.IntVarP(&limitFlag, "limit", "l", consts.SearchResultLimit, "the maximum number of results")

	return cmd
}

func newRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(args[0])
		if query == "" {
			return errors.New("Empty query")
		}

		results := ctx.Store.SearchGlobal(cmd.Context(), query)
		if len(results) == 0 {
			log.Info("no results\n")
			return nil
		}
		if len(results) > limitFlag {
			results = results[:limitFlag]
		}

		output.SearchResults(ctx.Store.State().Items, results)

		return nil
	}
}
