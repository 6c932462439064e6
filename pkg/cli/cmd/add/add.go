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

package add

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
var folderFlag string
var dirFlag bool

var example = `
 * Open an editor to write content
 godnotes add todo

 * Add a note inside a folder
 godnotes add standup -f work -c "ship the release"

 * Create a folder
 godnotes add work --dir

 * Send stdin content to a note
 echo "a branch is just a pointer to a commit" | godnotes add git
 # or
 godnotes add git << EOF
 pull is fetch with a merge
 EOF`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}
	if dirFlag && contentFlag != "" {
		return errors.New("--content is invalid for a folder")
	}

	return nil
}

// NewCmd returns a new add command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Add a new note or folder",
		Aliases: []string{"a", "n", "new"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&contentFlag, "content", "c", "", "The new content for the note")
	f.StringVarP(&folderFlag, "folder", "f", "", "The folder to add the item to, by path or id")
	f.BoolVarP(&dirFlag, "dir", "d", false, "Create a folder instead of a note")

	return cmd
}

func getContent(ctx context.GodnotesCtx, cmd *cobra.Command) (string, error) {
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

	c, err := ui.EditContent(cmd.Context(), ctx.Editor, context.GodnotesDir(ctx.Paths.Cache), "")
	if err != nil {
		return "", errors.Wrap(err, "getting editor input")
	}

	return c, nil
}

func newRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validate.ItemName(name); err != nil {
			return errors.Wrap(err, "invalid name")
		}

		parentID, err := infra.FindFolder(ctx.Store.State().Items, folderFlag)
		if err != nil {
			return errors.Wrap(err, "finding the folder")
		}

		var id string
		if dirFlag {
			id, err = ctx.Store.AddFolder(cmd.Context(), parentID, name)
			if err != nil {
				return errors.Wrap(err, "Failed to add the folder")
			}
		} else {
			content, err := getContent(ctx, cmd)
			if err != nil {
				return errors.Wrap(err, "getting content")
			}
			if content == "" {
				return errors.New("Empty content")
			}

			id, err = ctx.Store.AddFile(cmd.Context(), parentID, name, content)
			if err != nil {
				return errors.Wrap(err, "Failed to add the note")
			}
		}

		list := ctx.Store.State().Items
		it := items.Find(list, id)
		if it == nil {
			return errors.Errorf("item '%s' is missing after creation", id)
		}

		log.Successf("added %s\n", items.Path(list, it.ID))
		output.ItemInfo(list, *it)

		return nil
	}
}
