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

package set

import (
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/output"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/validate"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var pinnedFlag bool
var favoriteFlag bool
var publicFlag bool
var protectedFlag bool
var tagsFlag []string

var example = `
  * Pin a note
  godnotes set work/standup --pinned

  * Replace the tags of a note
  godnotes set work/standup --tags daily,team

  * Clear the tags and make the note private
  godnotes set work/standup --tags "" --public=false
`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}
	if cmd.Flags().NFlag() == 0 {
		return errors.New("Nothing to set")
	}

	return nil
}

// NewCmd returns a new set command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "set <path|id>",
		Short:   "Change the flags and the tags of a note",
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.BoolVar(&pinnedFlag, "pinned", false, "pin or unpin the note")
	f.BoolVar(&favoriteFlag, "favorite", false, "mark or unmark the note as a favorite")
	f.BoolVar(&publicFlag, "public", false, "share the note publicly or stop sharing it")
	f.BoolVar(&protectedFlag, "protected", false, "protect the note on this device")
	f.StringSliceVar(&tagsFlag, "tags", nil, "comma separated tags replacing the current ones")

	return cmd
}

func nonEmpty(tags []string) []string {
	ret := []string{}
	for _, t := range tags {
		if t != "" {
			ret = append(ret, t)
		}
	}

	return ret
}

func apply(ctx context.GodnotesCtx, cmd *cobra.Command, it items.Item) error {
	c := cmd.Context()
	f := cmd.Flags()

	if f.Changed("tags") {
		tags := nonEmpty(tagsFlag)
		if err := validate.Tags(tags); err != nil {
			return err
		}
		if err := ctx.Store.SetTags(c, it.ID, tags); err != nil {
			return errors.Wrap(err, "setting tags")
		}
	}
	if f.Changed("pinned") && it.IsPinned != pinnedFlag {
		if err := ctx.Store.SetPinned(c, it.ID, pinnedFlag); err != nil {
			return errors.Wrap(err, "setting pinned")
		}
	}
	if f.Changed("favorite") && it.IsFavorite != favoriteFlag {
		if err := ctx.Store.SetFavorite(c, it.ID, favoriteFlag); err != nil {
			return errors.Wrap(err, "setting favorite")
		}
	}
	if f.Changed("public") && it.IsPublic != publicFlag {
		if err := ctx.Store.TogglePublic(c, it.ID); err != nil {
			return errors.Wrap(err, "setting public")
		}
	}
	if f.Changed("protected") && it.IsProtected != protectedFlag {
		if err := ctx.Store.SetProtected(c, it.ID, protectedFlag); err != nil {
			return errors.Wrap(err, "setting protected")
		}
	}

	return nil
}

func newRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		it, err := infra.FindItem(ctx.Store.State().Items, args[0])
		if err != nil {
			return err
		}
		if !it.IsFile() {
			return errors.Errorf("'%s' is a folder", args[0])
		}

		if err := apply(ctx, cmd, it); err != nil {
			return err
		}

		list := ctx.Store.State().Items
		if updated := items.Find(list, it.ID); updated != nil {
			it = *updated
		}

		log.Success("updated\n")
		output.ItemInfo(list, it)

		return nil
	}
}
