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

package edit

import (
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/output"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/ui"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/validate"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var contentFlag string
var nameFlag string

var example = `
  * Edit a note in the editor
  godnotes edit work/standup

  * Edit a note without launching an editor
  godnotes edit work/standup -c "new content"

  * Rename a note or a folder
  godnotes edit work -n projects
`

// NewCmd returns a new edit command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <path|id>",
		Short:   "Edit the content or the name of an item",
		Aliases: []string{"e"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&contentFlag, "content", "c", "", "a new content for the note")
	f.StringVarP(&nameFlag, "name", "n", "", "a new name for the item")

	return cmd
}

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

func rename(ctx context.GodnotesCtx, cmd *cobra.Command, it items.Item) error {
	if err := validate.ItemName(nameFlag); err != nil {
		return errors.Wrap(err, "invalid name")
	}
	if nameFlag == it.Name {
		return errors.New("Nothing changed")
	}

	if err := ctx.Store.Rename(cmd.Context(), it.ID, nameFlag); err != nil {
		return errors.Wrap(err, "renaming")
	}

	return nil
}

func getContent(ctx context.GodnotesCtx, cmd *cobra.Command, it items.Item) (string, error) {
	if contentFlag != "" {
		return contentFlag, nil
	}

	if ui.HasPipedInput() {
		c, err := ui.ReadStdInput()
		if err != nil {
			return "", errors.Wrap(err, "Failed to get piped input")
		}
		return c, nil
	}

	current, err := ctx.Store.LoadFileContent(cmd.Context(), it.ID)
	if err != nil {
		return "", errors.Wrap(err, "loading the current content")
	}

	c, err := ui.EditContent(cmd.Context(), ctx.Editor, context.GodnotesDir(ctx.Paths.Cache), current)
	if err != nil {
		return "", errors.Wrap(err, "getting editor input")
	}

	return c, nil
}

func editContent(ctx context.GodnotesCtx, cmd *cobra.Command, it items.Item) error {
	if !it.IsFile() {
		return errors.Errorf("'%s' is a folder", it.Name)
	}

	content, err := getContent(ctx, cmd, it)
	if err != nil {
		return err
	}
	if content == "" {
		return errors.New("Empty content")
	}
	if it.Content != nil && *it.Content == content {
		return errors.New("Nothing changed")
	}

	if err := ctx.Store.UpdateFileContent(it.ID, content); err != nil {
		return errors.Wrap(err, "updating the content")
	}
	ctx.Store.Flush(cmd.Context())

	return nil
}

func newRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		it, err := infra.FindItem(ctx.Store.State().Items, args[0])
		if err != nil {
			return err
		}

		if nameFlag != "" {
			if err := rename(ctx, cmd, it); err != nil {
				return err
			}
		}
		if contentFlag != "" || nameFlag == "" {
			if err := editContent(ctx, cmd, it); err != nil {
				return err
			}
		}

		list := ctx.Store.State().Items
		if updated := items.Find(list, it.ID); updated != nil {
			it = *updated
		}

		log.Success("edited\n")
		output.ItemInfo(list, it)

		return nil
	}
}
