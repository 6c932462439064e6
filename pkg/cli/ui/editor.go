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

// Package ui provides the user interface for the program
package ui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/consts"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/utils"
	"github.com/pkg/errors"
)

// tmpContentPattern names the temporary files holding content being added
// or edited, for example GODNOTES_TMPCONTENT_123456.md
var tmpContentPattern = fmt.Sprintf("%s_*.%s", consts.TmpContentFileBase, consts.TmpContentFileExt)

func editorCommand(ctx context.Context, editor, fpath string) (*exec.Cmd, error) {
	args := strings.Fields(editor)
	if len(args) == 0 {
		return nil, errors.New("no editor is configured")
	}
	args = append(args, fpath)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// EditContent opens initial in the editor through a temporary file in dir
// and returns the content once the editor exits. The file is removed
// afterwards.
func EditContent(ctx context.Context, editor, dir, initial string) (string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return "", errors.Wrap(err, "preparing the temporary directory")
	}

	f, err := os.CreateTemp(dir, tmpContentPattern)
	if err != nil {
		return "", errors.Wrap(err, "creating the temporary content file")
	}
	fpath := f.Name()
	defer os.Remove(fpath)

	_, err = f.WriteString(initial)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", errors.Wrap(err, "writing the temporary content file")
	}

	cmd, err := editorCommand(ctx, editor, fpath)
	if err != nil {
		return "", errors.Wrap(err, "creating an editor command")
	}
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "running the editor '%s'", editor)
	}

	b, err := os.ReadFile(fpath)
	if err != nil {
		return "", errors.Wrap(err, "reading the temporary content file")
	}

	return string(b), nil
}
