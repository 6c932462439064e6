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

package testutils

import (
	stdctx "context"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/pkg/errors"
)

// Tree holds the ids of the items created by SetupTree
type Tree struct {
	WorkID    string
	StandupID string
	TodoID    string
}

// SetupTree creates, in the environment whose XDG directories point to
// testDir, a folder 'work' holding a note 'standup' and a top level note
// 'todo'. The items are local only.
func SetupTree(t *testing.T, testDir string) Tree {
	paths := context.Paths{Home: testDir, Config: testDir, Data: testDir, Cache: testDir}
	if err := context.InitGodnotesDirs(paths); err != nil {
		t.Fatal(errors.Wrap(err, "creating directories"))
	}

	db := MustOpenDatabase(t, DBPath(testDir))
	defer db.Close()

	s := OpenStore(t, db, testDir)
	ctx := stdctx.Background()

	var ret Tree
	var err error
	if ret.WorkID, err = s.AddFolder(ctx, "", "work"); err != nil {
		t.Fatal(errors.Wrap(err, "adding work"))
	}
	if ret.StandupID, err = s.AddFile(ctx, ret.WorkID, "standup", "ship the release"); err != nil {
		t.Fatal(errors.Wrap(err, "adding standup"))
	}
	if ret.TodoID, err = s.AddFile(ctx, "", "todo", "buy milk"); err != nil {
		t.Fatal(errors.Wrap(err, "adding todo"))
	}

	MustDispose(t, s)

	return ret
}
