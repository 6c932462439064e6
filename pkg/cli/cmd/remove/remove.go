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

package remove

import (
	"fmt"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/output"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var yesFlag bool
var purgeFlag bool
var allFlag bool

var example = `
  * Move a note to the trash
  godnotes rm work/standup

  * Move a folder and everything inside to the trash
  godnotes rm work

  * Delete a trashed item for good
  godnotes rm work --purge

  * Empty the trash
  godnotes rm --purge --all
`

func preRun(cmd *cobra.Command, args []string) error {
	if allFlag {
		if !purgeFlag {
			return errors.New("--all requires --purge")
		}
		if len(args) != 0 {
			return errors.New("--all takes no argument")
		}
		return nil
	}

	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new remove command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <path|id>",
		Short:   "Move an item to the trash or delete it from the trash",
		Aliases: []string{"rm", "d", "delete"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation")
	f.BoolVarP(&purgeFlag, "purge", "", false, "delete an item in the trash permanently")
	f.BoolVarP(&allFlag, "all", "", false, "with --purge, empty the whole trash")

	return cmd
}

func confirm(question string) (bool, error) {
	if yesFlag {
		return true, nil
	}

	return ui.Confirm(question, false)
}

func runDelete(ctx context.GodnotesCtx, cmd *cobra.Command, ref string) error {
	list := ctx.Store.State().Items

	it, err := infra.FindItem(list, ref)
	if err != nil {
		return err
	}

	output.ItemInfo(list, it)
	n := len(items.Descendants(list, it.ID))
	question := "move this item to the trash?"
	if n > 1 {
		question = fmt.Sprintf("move this item and %d more to the trash?", n-1)
	}

	ok, err := confirm(question)
	if err != nil {
		return errors.Wrap(err, "getting confirmation")
	}
	if !ok {
		log.Warnf("aborted by user\n")
		return nil
	}

	if err := ctx.Store.Delete(cmd.Context(), it.ID); err != nil {
		return errors.Wrap(err, "deleting")
	}

	log.Success("moved to the trash\n")
	return nil
}

func runPurge(ctx context.GodnotesCtx, cmd *cobra.Command, ref string) error {
	trash := ctx.Store.State().Trash

	it, err := infra.FindItem(trash, ref)
	if err != nil {
		return errors.Wrap(err, "finding the item in the trash")
	}

	output.ItemInfo(trash, it)
	ok, err := confirm("delete this item permanently?")
	if err != nil {
		return errors.Wrap(err, "getting confirmation")
	}
	if !ok {
		log.Warnf("aborted by user\n")
		return nil
	}

	if err := ctx.Store.PermanentDelete(cmd.Context(), it.ID); err != nil {
		return errors.Wrap(err, "deleting permanently")
	}

	log.Success("deleted\n")
	return nil
}

func runEmptyTrash(ctx context.GodnotesCtx, cmd *cobra.Command) error {
	n := len(ctx.Store.State().Trash)
	if n == 0 {
		log.Info("the trash is empty\n")
		return nil
	}

	ok, err := confirm(fmt.Sprintf("delete %d items in the trash permanently?", n))
	if err != nil {
		return errors.Wrap(err, "getting confirmation")
	}
	if !ok {
		log.Warnf("aborted by user\n")
		return nil
	}

	if err := ctx.Store.EmptyTrash(cmd.Context()); err != nil {
		return errors.Wrap(err, "emptying the trash")
	}

	if left := len(ctx.Store.State().Trash); left > 0 {
		log.Warnf("%d items could not be deleted\n", left)
		return nil
	}

	log.Success("emptied the trash\n")
	return nil
}

func newRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if allFlag {
			return runEmptyTrash(ctx, cmd)
		}
		if purgeFlag {
			return runPurge(ctx, cmd, args[0])
		}

		return runDelete(ctx, cmd, args[0])
	}
}
