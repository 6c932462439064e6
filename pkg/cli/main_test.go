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

package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/config"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/consts"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/testutils"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/utils"
	"github.com/pkg/errors"
)

var binaryName = "test-godnotes"

// setupTestEnv creates a unique test directory for parallel test execution.
// The endpoint points to a closed port so that nothing reaches a server.
func setupTestEnv(t *testing.T) (string, testutils.RunGodnotesCmdOptions) {
	testDir := t.TempDir()
	opts := testutils.RunGodnotesCmdOptions{
		Env: []string{
			fmt.Sprintf("HOME=%s", testDir),
			fmt.Sprintf("XDG_CONFIG_HOME=%s", testDir),
			fmt.Sprintf("XDG_DATA_HOME=%s", testDir),
			fmt.Sprintf("XDG_CACHE_HOME=%s", testDir),
			"GODNOTES_API_ENDPOINT=http://127.0.0.1:1/api",
		},
	}
	return testDir, opts
}

func TestMain(m *testing.M) {
	if err := exec.Command("go", "build", "-o", binaryName).Run(); err != nil {
		log.Print(errors.Wrap(err, "building a binary").Error())
		os.Exit(1)
	}

	code := m.Run()
	os.Remove(binaryName)
	os.Exit(code)
}

func findByName(t *testing.T, list []items.Item, name string) items.Item {
	for _, it := range list {
		if it.Name == name {
			return it
		}
	}

	t.Fatalf("item '%s' not found", name)
	return items.Item{}
}

func TestInit(t *testing.T) {
	testDir, opts := setupTestEnv(t)

	// run an arbitrary command "ls" due to https://github.com/spf13/cobra/issues/1056
	testutils.RunGodnotesCmd(t, opts, binaryName, "ls")

	ok, err := utils.FileExists(config.GetPath(testDir))
	if err != nil {
		t.Fatal(errors.Wrap(err, "checking if config exists"))
	}
	assert.Equal(t, ok, true, "config file was not initialized")

	ok, err = utils.FileExists(testutils.DBPath(testDir))
	if err != nil {
		t.Fatal(errors.Wrap(err, "checking if database exists"))
	}
	assert.Equal(t, ok, true, "database was not initialized")

	db := testutils.MustOpenDatabase(t, testutils.DBPath(testDir))
	defer db.Close()

	var systemTableCount int
	database.MustScan(t, "counting system",
		db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type = ? AND name = ?", "table", "system"), &systemTableCount)
	assert.Equal(t, systemTableCount, 1, "system table count mismatch")

	cf, err := config.Read(testDir)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading config"))
	}
	assert.Equal(t, cf.SyncInterval, consts.DefaultSyncInterval, "sync interval mismatch")
	assert.Equal(t, cf.Offline, false, "offline mismatch")
}

func TestVersion(t *testing.T) {
	_, opts := setupTestEnv(t)

	out := testutils.RunGodnotesCmd(t, opts, binaryName, "version")
	assert.Equal(t, strings.Contains(out, "godnotes master"), true, "version output mismatch")

	out = testutils.RunGodnotesCmd(t, opts, binaryName, "version", "--verbose")
	assert.Equal(t, strings.Contains(out, "session:      logged out"), true, "session mismatch")
	assert.Equal(t, strings.Contains(out, "queued:       0"), true, "queue mismatch")
}

func TestAdd(t *testing.T) {
	t.Run("folder and note", func(t *testing.T) {
		testDir, opts := setupTestEnv(t)

		testutils.RunGodnotesCmd(t, opts, binaryName, "add", "work", "--dir")
		testutils.RunGodnotesCmd(t, opts, binaryName, "add", "standup", "-f", "work", "-c", "ship the release")

		state := testutils.LoadState(t, testDir)
		assert.Equal(t, len(state.Items), 2, "item count mismatch")

		work := findByName(t, state.Items, "work")
		standup := findByName(t, state.Items, "standup")
		assert.Equal(t, work.Type, items.TypeFolder, "work type mismatch")
		assert.Equal(t, standup.Type, items.TypeFile, "standup type mismatch")
		assert.Equal(t, standup.ParentID, work.ID, "standup parent mismatch")
		assert.Equal(t, items.IsTemporaryID(standup.ID), true, "standup should have a temporary id")
		assert.Equal(t, standup.ContentString(), "ship the release", "standup content mismatch")
		assert.Equal(t, len(state.OfflineQueue), 0, "nothing should be queued without a session")
	})

	t.Run("stdin", func(t *testing.T) {
		testDir, opts := setupTestEnv(t)

		testutils.MustWaitGodnotesCmd(t, opts, testutils.UserContent, binaryName, "add", "lorem")

		state := testutils.LoadState(t, testDir)
		lorem := findByName(t, state.Items, "lorem")
		assert.Equal(t, lorem.ContentString(), testutils.LongText, "content mismatch")
	})

	testCases := []struct {
		args     []string
		expected string
	}{
		{
			args:     []string{"add", "a/b", "-c", "foo"},
			expected: "cannot contain",
		},
		{
			args:     []string{"add", "foo", "-f", "missing", "-c", "foo"},
			expected: "finding the folder",
		},
		{
			args:     []string{"add", "work", "--dir", "-c", "foo"},
			expected: "--content is invalid for a folder",
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("invalid %d", idx), func(t *testing.T) {
			testDir, opts := setupTestEnv(t)

			out := testutils.RunGodnotesCmdErr(t, opts, binaryName, tc.args...)
			assert.Equal(t, strings.Contains(out, tc.expected), true, fmt.Sprintf("output mismatch: %s", out))

			state := testutils.LoadState(t, testDir)
			assert.Equal(t, len(state.Items), 0, "item count mismatch")
		})
	}
}

func TestLs(t *testing.T) {
	testDir, opts := setupTestEnv(t)
	testutils.SetupTree(t, testDir)

	out := testutils.RunGodnotesCmd(t, opts, binaryName, "ls")
	assert.Equal(t, strings.Contains(out, "work/"), true, "work missing")
	assert.Equal(t, strings.Contains(out, "standup"), true, "standup missing")
	assert.Equal(t, strings.Contains(out, "todo"), true, "todo missing")

	out = testutils.RunGodnotesCmd(t, opts, binaryName, "ls", "work")
	assert.Equal(t, strings.Contains(out, "standup"), true, "standup missing in work")
	assert.Equal(t, strings.Contains(out, "todo"), false, "todo is not in work")

	testutils.RunGodnotesCmd(t, opts, binaryName, "ls", "--sort", "created")
	state := testutils.LoadState(t, testDir)
	assert.Equal(t, state.SortOrder, items.SortByCreated, "sort order should be remembered")

	out = testutils.RunGodnotesCmdErr(t, opts, binaryName, "ls", "--sort", "size")
	assert.Equal(t, strings.Contains(out, "unknown sort order"), true, "output mismatch")
}

func TestCat(t *testing.T) {
	testDir, opts := setupTestEnv(t)
	tree := testutils.SetupTree(t, testDir)

	out := testutils.RunGodnotesCmd(t, opts, binaryName, "cat", "work/standup", "--content-only")
	assert.Equal(t, strings.Contains(out, "ship the release"), true, "content mismatch")

	out = testutils.RunGodnotesCmd(t, opts, binaryName, "cat", tree.TodoID)
	assert.Equal(t, strings.Contains(out, "buy milk"), true, "content mismatch by id")
	assert.Equal(t, strings.Contains(out, "not synced"), true, "flags mismatch")

	out = testutils.RunGodnotesCmdErr(t, opts, binaryName, "cat", "work")
	assert.Equal(t, strings.Contains(out, "is a folder"), true, "output mismatch")
}

func TestEdit(t *testing.T) {
	t.Run("content flag", func(t *testing.T) {
		testDir, opts := setupTestEnv(t)
		tree := testutils.SetupTree(t, testDir)

		testutils.RunGodnotesCmd(t, opts, binaryName, "edit", "work/standup", "-c", "ship it on friday")

		state := testutils.LoadState(t, testDir)
		standup := items.Find(state.Items, tree.StandupID)
		assert.Equal(t, standup.ContentString(), "ship it on friday", "content mismatch")
	})

	t.Run("name flag", func(t *testing.T) {
		testDir, opts := setupTestEnv(t)
		tree := testutils.SetupTree(t, testDir)

		testutils.RunGodnotesCmd(t, opts, binaryName, "edit", "work", "-n", "job")

		state := testutils.LoadState(t, testDir)
		assert.Equal(t, items.Path(state.Items, tree.StandupID), "job/standup", "path mismatch")
	})

	t.Run("nothing changed", func(t *testing.T) {
		testDir, opts := setupTestEnv(t)
		testutils.SetupTree(t, testDir)

		out := testutils.RunGodnotesCmdErr(t, opts, binaryName, "edit", "todo", "-c", "buy milk")
		assert.Equal(t, strings.Contains(out, "Nothing changed"), true, "output mismatch")
	})
}

func TestMv(t *testing.T) {
	testDir, opts := setupTestEnv(t)
	tree := testutils.SetupTree(t, testDir)

	testutils.RunGodnotesCmd(t, opts, binaryName, "mv", "todo", "work")

	state := testutils.LoadState(t, testDir)
	assert.Equal(t, items.Find(state.Items, tree.TodoID).ParentID, tree.WorkID, "parent mismatch")

	testutils.RunGodnotesCmd(t, opts, binaryName, "mv", "work/todo", "/")

	state = testutils.LoadState(t, testDir)
	assert.Equal(t, items.Find(state.Items, tree.TodoID).ParentID, "", "todo should be at the top level")

	out := testutils.RunGodnotesCmdErr(t, opts, binaryName, "mv", "work", "work")
	assert.NotEqual(t, out, "", "moving a folder into itself should fail")
}

func TestSet(t *testing.T) {
	testDir, opts := setupTestEnv(t)
	tree := testutils.SetupTree(t, testDir)

	testutils.RunGodnotesCmd(t, opts, binaryName, "set", "todo", "--pinned", "--favorite", "--tags", "home,errand")

	state := testutils.LoadState(t, testDir)
	todo := items.Find(state.Items, tree.TodoID)
	assert.Equal(t, todo.IsPinned, true, "pinned mismatch")
	assert.Equal(t, todo.IsFavorite, true, "favorite mismatch")
	assert.DeepEqual(t, todo.Tags, []string{"home", "errand"}, "tags mismatch")

	testutils.RunGodnotesCmd(t, opts, binaryName, "set", "todo", "--pinned=false", "--tags", "")

	state = testutils.LoadState(t, testDir)
	todo = items.Find(state.Items, tree.TodoID)
	assert.Equal(t, todo.IsPinned, false, "pinned mismatch after unset")
	assert.Equal(t, len(todo.Tags), 0, "tags should be cleared")

	out := testutils.RunGodnotesCmdErr(t, opts, binaryName, "set", "todo", "--tags", "deleted:1")
	assert.Equal(t, strings.Contains(out, "reserved"), true, "output mismatch")

	out = testutils.RunGodnotesCmdErr(t, opts, binaryName, "set", "todo")
	assert.Equal(t, strings.Contains(out, "Nothing to set"), true, "output mismatch")
}

func TestFind(t *testing.T) {
	testDir, opts := setupTestEnv(t)
	testutils.SetupTree(t, testDir)

	out := testutils.RunGodnotesCmd(t, opts, binaryName, "find", "MILK")
	assert.Equal(t, strings.Contains(out, "todo"), true, "todo should match")
	assert.Equal(t, strings.Contains(out, "standup"), false, "standup should not match")

	out = testutils.RunGodnotesCmd(t, opts, binaryName, "find", "nothing-matches")
	assert.Equal(t, strings.Contains(out, "no results"), true, "output mismatch")
}

func TestRemove(t *testing.T) {
	t.Run("cancel", func(t *testing.T) {
		testDir, opts := setupTestEnv(t)
		testutils.SetupTree(t, testDir)

		testutils.MustWaitGodnotesCmd(t, opts, testutils.CancelTrash, binaryName, "rm", "todo")

		state := testutils.LoadState(t, testDir)
		assert.Equal(t, len(state.Items), 3, "item count mismatch")
		assert.Equal(t, len(state.Trash), 0, "trash count mismatch")
	})

	t.Run("folder", func(t *testing.T) {
		testDir, opts := setupTestEnv(t)
		tree := testutils.SetupTree(t, testDir)

		testutils.MustWaitGodnotesCmd(t, opts, testutils.ConfirmTrash, binaryName, "rm", "work")

		state := testutils.LoadState(t, testDir)
		assert.Equal(t, len(state.Items), 1, "item count mismatch")
		assert.Equal(t, len(state.Trash), 2, "trash count mismatch")
		standup := items.Find(state.Trash, tree.StandupID)
		assert.Equal(t, items.HasDeletedTag(standup.Tags), true, "trashed note should carry a deleted tag")

		out := testutils.RunGodnotesCmd(t, opts, binaryName, "ls", "--trash")
		assert.Equal(t, strings.Contains(out, "standup"), true, "standup missing in trash")
	})

	t.Run("purge", func(t *testing.T) {
		testDir, opts := setupTestEnv(t)
		testutils.SetupTree(t, testDir)

		testutils.RunGodnotesCmd(t, opts, binaryName, "rm", "todo", "-y")
		testutils.MustWaitGodnotesCmd(t, opts, testutils.ConfirmPurge, binaryName, "rm", "todo", "--purge")

		state := testutils.LoadState(t, testDir)
		assert.Equal(t, len(state.Items), 2, "item count mismatch")
		assert.Equal(t, len(state.Trash), 0, "trash count mismatch")
	})

	t.Run("empty trash", func(t *testing.T) {
		testDir, opts := setupTestEnv(t)
		testutils.SetupTree(t, testDir)

		testutils.RunGodnotesCmd(t, opts, binaryName, "rm", "todo", "-y")
		testutils.RunGodnotesCmd(t, opts, binaryName, "rm", "work", "-y")
		testutils.MustWaitGodnotesCmd(t, opts, testutils.ConfirmEmptyTrash, binaryName, "rm", "--purge", "--all")

		state := testutils.LoadState(t, testDir)
		assert.Equal(t, len(state.Items), 0, "item count mismatch")
		assert.Equal(t, len(state.Trash), 0, "trash count mismatch")
	})

	t.Run("all without purge", func(t *testing.T) {
		_, opts := setupTestEnv(t)

		out := testutils.RunGodnotesCmdErr(t, opts, binaryName, "rm", "--all")
		assert.Equal(t, strings.Contains(out, "--all requires --purge"), true, "output mismatch")
	})
}

func TestRestore(t *testing.T) {
	testDir, opts := setupTestEnv(t)
	tree := testutils.SetupTree(t, testDir)

	testutils.RunGodnotesCmd(t, opts, binaryName, "rm", "work", "-y")
	testutils.RunGodnotesCmd(t, opts, binaryName, "restore", "work")

	state := testutils.LoadState(t, testDir)
	assert.Equal(t, len(state.Trash), 0, "trash count mismatch")
	standup := items.Find(state.Items, tree.StandupID)
	assert.Equal(t, standup.ParentID, tree.WorkID, "standup parent mismatch")
	assert.Equal(t, items.HasDeletedTag(standup.Tags), false, "restored note should not carry a deleted tag")
}

func TestOffline(t *testing.T) {
	testDir, opts := setupTestEnv(t)

	out := testutils.RunGodnotesCmd(t, opts, binaryName, "offline")
	assert.Equal(t, strings.Contains(out, "offline mode is off"), true, "status mismatch")

	testutils.RunGodnotesCmd(t, opts, binaryName, "offline", "on")

	cf, err := config.Read(testDir)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading config"))
	}
	assert.Equal(t, cf.Offline, true, "offline should be saved in config")

	out = testutils.RunGodnotesCmdErr(t, opts, binaryName, "login", "-u", "a@example.com", "-p", "password")
	assert.Equal(t, strings.Contains(out, "offline mode is on"), true, "output mismatch")

	out = testutils.RunGodnotesCmdErr(t, opts, binaryName, "offline", "maybe")
	assert.Equal(t, strings.Contains(out, "expected 'on' or 'off'"), true, "output mismatch")
}

func TestOffline_queuesWithSession(t *testing.T) {
	testDir, opts := setupTestEnv(t)
	testutils.SetupTree(t, testDir)

	db := testutils.MustOpenDatabase(t, testutils.DBPath(testDir))
	testutils.Login(t, db, "alice@example.com")
	db.Close()

	testutils.RunGodnotesCmd(t, opts, binaryName, "offline", "on")
	testutils.RunGodnotesCmd(t, opts, binaryName, "add", "ideas", "--dir")

	state := testutils.LoadState(t, testDir)
	assert.Equal(t, state.IsAuthenticated, true, "session should be loaded")
	assert.Equal(t, len(state.OfflineQueue), 1, "the creation should be queued")
	assert.Equal(t, state.OfflineQueue[0].Method, "POST", "queued method mismatch")
}

func TestSync_requiresSession(t *testing.T) {
	_, opts := setupTestEnv(t)

	out := testutils.RunGodnotesCmdErr(t, opts, binaryName, "sync")
	assert.Equal(t, strings.Contains(out, "not logged in"), true, "output mismatch")
}

func TestDBPathFlag(t *testing.T) {
	testDir, opts := setupTestEnv(t)
	dbPath := filepath.Join(t.TempDir(), "custom.db")

	testutils.RunGodnotesCmd(t, opts, binaryName, "add", "work", "--dir", "--dbPath", dbPath)

	db := testutils.MustOpenDatabase(t, dbPath)
	defer db.Close()
	s := testutils.OpenStore(t, db, testDir)
	assert.Equal(t, len(s.State().Items), 1, "custom database item count mismatch")

	state := testutils.LoadState(t, testDir)
	assert.Equal(t, len(state.Items), 0, "default database should be untouched")
}
