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

package mv

import (
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Move a note into a folder
  godnotes mv standup work

  * Move a folder to the top level
  godnotes mv work/archive /
`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new mv command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mv <path|id> <folder>",
		Short:   "Move an item into another folder",
		Aliases: []string{"move"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		list := ctx.Store.State().Items

		it, err := infra.FindItem(list, args[0])
		if err != nil {
			return err
		}
		parentID, err := infra.FindFolder(list, args[1])
		if err != nil {
			return errors.Wrap(err, "finding the destination")
		}
		if it.ParentID == parentID {
			return errors.New("Nothing changed")
		}

		if err := ctx.Store.Move(cmd.Context(), it.ID, parentID); err != nil {
			return errors.Wrap(err, "moving")
		}

		log.Successf("moved to %s\n", items.Path(ctx.Store.State().Items, it.ID))

		return nil
	}
}
