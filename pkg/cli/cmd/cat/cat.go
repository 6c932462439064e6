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

package cat

import (
	"os"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 * See the note at a path
 godnotes cat work/standup

 * See a note by id
 godnotes cat 0f8c9d3e-5d2a-4b58-a5b4-0dd2b1f0a0c1

 * Print only the content
 godnotes cat work/standup --content-only`

var contentOnlyFlag bool

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new cat command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cat <path|id>",
		Aliases: []string{"c", "view", "v"},
		Short:   "See a note",
		Example: example,
		RunE:    NewRun(ctx),
		PreRunE: preRun,
	}

	f := cmd.Flags()
	f.BoolVarP(&contentOnlyFlag, "content-only", "", false, "print the content only")

	return cmd
}

// NewRun returns a new run function
func NewRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		list := ctx.Store.State().Items

		it, err := infra.FindItem(list, args[0])
		if err != nil {
			return err
		}
		if !it.IsFile() {
			return errors.Errorf("'%s' is a folder", args[0])
		}

		content, err := ctx.Store.LoadFileContent(cmd.Context(), it.ID)
		if err != nil {
			return errors.Wrap(err, "loading the content")
		}

		if contentOnlyFlag {
			log.Plain(content)
			return nil
		}

		output.ItemInfo(list, it)
		output.Content(os.Stdout, content)

		return nil
	}
}
