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

package ls

import (
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 * List everything
 godnotes ls

 * List a folder, most recently updated first
 godnotes ls work --sort updated

 * List the trash
 godnotes ls --trash
 `

var trashFlag bool
var sortFlag string

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.New("Incorrect number of argument")
	}

	switch sortFlag {
	case "", items.SortByName, items.SortByUpdated, items.SortByCreated:
		return nil
	default:
		return errors.Errorf("unknown sort order '%s'", sortFlag)
	}
}

// NewCmd returns a new ls command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls [folder]",
		Aliases: []string{"l", "notes"},
		Short:   "List items as a tree",
		Example: example,
		RunE:    NewRun(ctx),
		PreRunE: preRun,
	}

	f := cmd.Flags()
	f.BoolVarP(&trashFlag, "trash", "t", false, "list the trash")
	f.StringVarP(&sortFlag, "sort", "s", "", "sort order: name, updated or created. It is remembered for later runs")

	return cmd
}

// subtree returns the items under the folder, without the folder itself
func subtree(list []items.Item, folderID string) []items.Item {
	var ret []items.Item
	for _, id := range items.Descendants(list, folderID) {
		if id == folderID {
			continue
		}
		if it := items.Find(list, id); it != nil {
			ret = append(ret, *it)
		}
	}

	return ret
}

// NewRun returns a new run function for ls
func NewRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if sortFlag != "" {
			ctx.Store.SetSortOrder(sortFlag)
		}

		state := ctx.Store.State()
		list := state.Items
		title := "."
		if trashFlag {
			list = state.Trash
			title = "trash"
		}

		if len(args) == 1 {
			folderID, err := infra.FindFolder(list, args[0])
			if err != nil {
				return err
			}
			if folderID != "" {
				title = items.Path(list, folderID)
				list = subtree(list, folderID)
			}
		}

		log.Plain(output.Tree(title, list, state.SortOrder))

		return nil
	}
}
