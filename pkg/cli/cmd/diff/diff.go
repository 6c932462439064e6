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

package diff

import (
	"os"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/infra"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/output"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/utils/diff"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  * Compare the local copy of a note with the server copy
  godnotes diff work/standup
`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new diff command
func NewCmd(ctx context.GodnotesCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "diff <path|id>",
		Short:   "Show the changes between the server copy and the local copy of a note",
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.GodnotesCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		state := ctx.Store.State()
		if !state.IsAuthenticated {
			return errors.New("not logged in")
		}
		if state.IsOfflineMode {
			return errors.New("offline mode is on")
		}

		it, err := infra.FindItem(state.Items, args[0])
		if err != nil {
			return err
		}
		if !it.IsFile() {
			return errors.Errorf("'%s' is a folder", args[0])
		}
		if items.IsTemporaryID(it.ID) {
			log.Info("the note is not synced yet\n")
			return nil
		}

		local, err := ctx.Store.LoadFileContent(cmd.Context(), it.ID)
		if err != nil {
			return errors.Wrap(err, "loading the local content")
		}
		note, err := ctx.Client.GetNote(cmd.Context(), it.ID)
		if err != nil {
			return errors.Wrap(err, "fetching the server copy")
		}

		var remote string
		if note.Content != nil {
			remote = *note.Content
		}

		lines := diff.Do(remote, local)
		if !diff.HasChanges(lines) {
			log.Info("no changes\n")
			return nil
		}

		output.Diff(os.Stdout, lines)

		return nil
	}
}
