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

// Package testutils provides utilities used in tests
package testutils

import (
	"bytes"
	stdctx "context"
	"encoding/json"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/client"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/consts"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/localfs"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/store"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/clock"
	"github.com/pkg/errors"
)

// Prompts for user input
const (
	PromptTrash      = "to the trash?"
	PromptPurge      = "delete this item permanently?"
	PromptEmptyTrash = "items in the trash permanently?"
)

// Timeout for waiting for prompts in tests
const promptTimeout = 10 * time.Second

// Login simulates a logged in user by saving a session in the local database
func Login(t *testing.T, db *database.DB, email string) {
	u, err := json.Marshal(client.User{ID: "user-1", Email: email})
	if err != nil {
		t.Fatal(errors.Wrap(err, "marshalling the user"))
	}

	kv := database.NewKV(db, nil)
	if err := kv.Save(map[string]string{
		consts.SystemSessionKey:  "someSessionKey",
		consts.SystemSessionUser: string(u),
	}); err != nil {
		t.Fatal(errors.Wrap(err, "saving the session"))
	}
}

// OpenStore opens a store over the database and the data directory of a test
// environment, without a reachable server. Dispose it to persist changes.
func OpenStore(t *testing.T, db *database.DB, dataHome string) *store.Store {
	c := clock.New()
	s := store.New(store.Options{
		Remote:  client.New("", client.Options{Version: "test"}),
		KV:      database.NewKV(db, c),
		Files:   localfs.NewDir(context.GodnotesDir(dataHome)),
		Clock:   c,
		Offline: true,
	})
	if err := s.Init(stdctx.Background()); err != nil {
		t.Fatal(errors.Wrap(err, "initializing the store"))
	}

	return s
}

// MustDispose saves pending edits of the store
func MustDispose(t *testing.T, s *store.Store) {
	if err := s.Dispose(stdctx.Background()); err != nil {
		t.Fatal(errors.Wrap(err, "disposing the store"))
	}
}

// LoadState reads the state persisted by the binary under test
func LoadState(t *testing.T, testDir string) store.State {
	db := MustOpenDatabase(t, DBPath(testDir))
	defer db.Close()

	return OpenStore(t, db, testDir).State()
}

// DBPath returns the path to the database in a test environment whose XDG
// directories all point to testDir
func DBPath(testDir string) string {
	return filepath.Join(context.GodnotesDir(testDir), consts.GodnotesDBFileName)
}

// NewGodnotesCmd returns a new godnotes command and pointers to stderr and stdout
func NewGodnotesCmd(opts RunGodnotesCmdOptions, binaryName string, arg ...string) (*exec.Cmd, *bytes.Buffer, *bytes.Buffer, error) {
	var stderr, stdout bytes.Buffer

	binaryPath, err := filepath.Abs(binaryName)
	if err != nil {
		return &exec.Cmd{}, &stderr, &stdout, errors.Wrap(err, "getting the absolute path to the test binary")
	}

	cmd := exec.Command(binaryPath, arg...)
	cmd.Stderr = &stderr
	cmd.Stdout = &stdout

	cmd.Env = opts.Env

	return cmd, &stderr, &stdout, nil
}

// RunGodnotesCmdOptions is an option for RunGodnotesCmd
type RunGodnotesCmdOptions struct {
	Env []string
}

// RunGodnotesCmd runs a godnotes command and returns its stdout
func RunGodnotesCmd(t *testing.T, opts RunGodnotesCmdOptions, binaryName string, arg ...string) string {
	t.Logf("running: %s %s", binaryName, strings.Join(arg, " "))

	cmd, stderr, stdout, err := NewGodnotesCmd(opts, binaryName, arg...)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting command").Error())
	}

	cmd.Env = append(cmd.Env, "GODNOTES_DEBUG=1")

	if err := cmd.Run(); err != nil {
		t.Logf("\n%s", stdout)
		t.Fatal(errors.Wrapf(err, "running command %s", stderr.String()))
	}

	// Print stdout if and only if test fails later
	t.Logf("\n%s", stdout)

	return stdout.String()
}

// RunGodnotesCmdErr runs a godnotes command that is expected to fail and
// returns its stdout followed by its stderr. Errors are printed on stdout.
func RunGodnotesCmdErr(t *testing.T, opts RunGodnotesCmdOptions, binaryName string, arg ...string) string {
	t.Logf("running: %s %s", binaryName, strings.Join(arg, " "))

	cmd, stderr, stdout, err := NewGodnotesCmd(opts, binaryName, arg...)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting command").Error())
	}

	if err := cmd.Run(); err == nil {
		t.Logf("\n%s", stdout)
		t.Fatal("expected the command to fail")
	}

	return stdout.String() + stderr.String()
}

// WaitGodnotesCmd runs a godnotes command and passes stdout to the callback.
func WaitGodnotesCmd(t *testing.T, opts RunGodnotesCmdOptions, runFunc func(io.Reader, io.WriteCloser) error, binaryName string, arg ...string) (string, error) {
	t.Logf("running: %s %s", binaryName, strings.Join(arg, " "))

	binaryPath, err := filepath.Abs(binaryName)
	if err != nil {
		return "", errors.Wrap(err, "getting absolute path to test binary")
	}

	cmd := exec.Command(binaryPath, arg...)
	cmd.Env = opts.Env

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", errors.Wrap(err, "getting stdout pipe")
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", errors.Wrap(err, "getting stdin")
	}
	defer stdin.Close()

	if err = cmd.Start(); err != nil {
		return "", errors.Wrap(err, "starting command")
	}

	var output bytes.Buffer
	tee := io.TeeReader(stdout, &output)

	err = runFunc(tee, stdin)
	if err != nil {
		t.Logf("\n%s", output.String())
		return output.String(), errors.Wrap(err, "running callback")
	}

	io.Copy(&output, stdout)

	if err := cmd.Wait(); err != nil {
		t.Logf("\n%s", output.String())
		return output.String(), errors.Wrapf(err, "command failed: %s", stderr.String())
	}

	t.Logf("\n%s", output.String())
	return output.String(), nil
}

// MustWaitGodnotesCmd runs WaitGodnotesCmd and fails the test on error
func MustWaitGodnotesCmd(t *testing.T, opts RunGodnotesCmdOptions, runFunc func(io.Reader, io.WriteCloser) error, binaryName string, arg ...string) string {
	output, err := WaitGodnotesCmd(t, opts, runFunc, binaryName, arg...)
	if err != nil {
		t.Fatal(err)
	}

	return output
}

// MustWaitForPrompt waits for an expected prompt with a default timeout.
// Fails the test if the prompt is not found or an error occurs.
func MustWaitForPrompt(t *testing.T, stdout io.Reader, expectedPrompt string) {
	if err := assert.WaitForPrompt(stdout, expectedPrompt, promptTimeout); err != nil {
		t.Fatal(err)
	}
}

// ConfirmTrash waits for the prompt for moving an item to the trash and confirms.
func ConfirmTrash(stdout io.Reader, stdin io.WriteCloser) error {
	return assert.RespondToPrompt(stdout, stdin, PromptTrash, "y\n", promptTimeout)
}

// CancelTrash waits for the prompt for moving an item to the trash and declines.
func CancelTrash(stdout io.Reader, stdin io.WriteCloser) error {
	return assert.RespondToPrompt(stdout, stdin, PromptTrash, "n\n", promptTimeout)
}

// ConfirmPurge waits for the prompt for a permanent deletion and confirms.
func ConfirmPurge(stdout io.Reader, stdin io.WriteCloser) error {
	return assert.RespondToPrompt(stdout, stdin, PromptPurge, "y\n", promptTimeout)
}

// ConfirmEmptyTrash waits for the prompt for emptying the trash and confirms.
func ConfirmEmptyTrash(stdout io.Reader, stdin io.WriteCloser) error {
	return assert.RespondToPrompt(stdout, stdin, PromptEmptyTrash, "y\n", promptTimeout)
}

// UserContent simulates content from the user by writing to stdin.
// This is used for piped input where no prompt is shown.
func UserContent(stdout io.Reader, stdin io.WriteCloser) error {
	if _, err := io.WriteString(stdin, LongText); err != nil {
		return errors.Wrap(err, "creating note from stdin")
	}

	// stdin needs to close so stdin reader knows to stop reading
	// otherwise test case would wait until test timeout
	stdin.Close()

	return nil
}

// LongText is the content written by UserContent
const LongText = `Lorem ipsum dolor sit amet, consectetur adipiscing elit,
sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.`

// MustMarshalJSON marshalls the given interface into JSON.
// If there is any error, it fails the test.
func MustMarshalJSON(t *testing.T, v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("%s: marshalling data: %s", t.Name(), err.Error())
	}

	return b
}

// MustOpenDatabase opens the database at the path and applies migrations
func MustOpenDatabase(t *testing.T, dbPath string) *database.DB {
	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatal(errors.Wrap(err, "opening database"))
	}
	if _, err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatal(errors.Wrap(err, "migrating database"))
	}

	return db
}
