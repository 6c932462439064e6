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

// Package e2e runs the built server binary
package e2e

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "e2e-secret"

var testServerBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "godnotes-e2e")
	if err != nil {
		fmt.Println(errors.Wrap(err, "creating temp dir"))
		os.Exit(1)
	}

	testServerBinary = filepath.Join(tmpDir, "godnotes-test-server")
	buildCmd := exec.Command("go", "build", "-o", testServerBinary, "../server")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		fmt.Printf("failed to build server: %v\n%s", err, out)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// serverCmd returns a command running the server binary with a clean
// environment
func serverCmd(args ...string) *exec.Cmd {
	cmd := exec.Command(testServerBinary, args...)
	cmd.Env = []string{
		"JWT_SECRET=" + testJWTSecret,
		"HOME=" + os.TempDir(),
	}

	return cmd
}

func openDB(t *testing.T, path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return db
}

func waitForHealth(url string, timeout time.Duration) (*http.Response, error) {
	deadline := time.Now().Add(timeout)
	for {
		res, err := http.Get(url)
		if err == nil {
			return res, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}

		time.Sleep(100 * time.Millisecond)
	}
}

func TestServerStart(t *testing.T) {
	tmpDB := filepath.Join(t.TempDir(), "test.db")
	port := "13456"

	cmd := serverCmd("start", "--port", port, "--dbPath", tmpDB)
	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	cleanup := func() {
		if cmd.Process != nil {
			cmd.Process.Kill()
			cmd.Wait()
		}
	}
	defer cleanup()

	res, err := waitForHealth(fmt.Sprintf("http://localhost:%s/api/health", port), 10*time.Second)
	if err != nil {
		t.Fatalf("failed to reach server health endpoint: %v", err)
	}
	res.Body.Close()
	assert.Equal(t, res.StatusCode, http.StatusOK, "health endpoint should return 200")

	body := strings.NewReader(`{"email":"alice@example.com","password":"pass1234"}`)
	res, err = http.Post(fmt.Sprintf("http://localhost:%s/api/auth/register", port), "application/json", body)
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	res.Body.Close()
	assert.Equal(t, res.StatusCode, http.StatusCreated, "register should return 201")

	cleanup()

	db := openDB(t, tmpDB)

	var applied int64
	if err := db.Table("schema_migrations").Count(&applied).Error; err != nil {
		t.Fatalf("schema_migrations table not found: %v", err)
	}
	assert.Equal(t, applied, int64(3), "every migration should be applied")

	var count int64
	db.Table("users").Count(&count)
	assert.Equal(t, count, int64(1), "registered user should be stored")
}

func TestServerCommands(t *testing.T) {
	testCases := []struct {
		args     []string
		fails    bool
		expected []string
	}{
		{args: []string{"version"}, expected: []string{"godnotes-server-"}},
		{args: nil, expected: []string{"Usage:", "start", "migrate", "user", "version"}},
		{args: []string{"unknown"}, fails: true, expected: []string{"Unknown command unknown", "Available commands:"}},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			out, err := serverCmd(tc.args...).CombinedOutput()
			assert.Equal(t, err != nil, tc.fails, fmt.Sprintf("exit status mismatch: %v", err))

			for _, want := range tc.expected {
				assert.Equal(t, strings.Contains(string(out), want), true, fmt.Sprintf("output should contain %q", want))
			}
		})
	}
}

func TestServerStartHelp(t *testing.T) {
	output, _ := serverCmd("start", "--help").CombinedOutput()

	outputStr := string(output)
	assert.Equal(t, strings.Contains(outputStr, "godnotes-server start [flags]"), true, "output should contain usage")
	for _, flag := range []string{"--appEnv", "--port", "--dbPath", "--databaseUrl", "--jwtSecret", "--sessionTTL", "--disableRegistration", "--logLevel", "--envFile"} {
		assert.Equal(t, strings.Contains(outputStr, flag), true, fmt.Sprintf("output should contain %s flag", flag))
	}
}

func TestServerStartInvalidConfig(t *testing.T) {
	testCases := []struct {
		env      []string
		expected string
	}{
		{
			env:      []string{"HOME=" + os.TempDir()},
			expected: "JWT secret is empty",
		},
		{
			env:      []string{"JWT_SECRET=x", "DATABASE_URL=mysql://db"},
			expected: "Invalid DatabaseURL",
		},
		{
			env:      []string{"JWT_SECRET=x", "SESSION_TTL=soon"},
			expected: "Invalid SessionTTL",
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			cmd := exec.Command(testServerBinary, "start")
			cmd.Env = tc.env

			output, err := cmd.CombinedOutput()
			if err == nil {
				t.Fatal("expected command to fail with invalid config")
			}

			outputStr := string(output)
			assert.Equal(t, strings.Contains(outputStr, "Error:"), true, "output should contain error message")
			assert.Equal(t, strings.Contains(outputStr, tc.expected), true, fmt.Sprintf("output should mention %q", tc.expected))
			assert.Equal(t, strings.Contains(outputStr, "godnotes-server start [flags]"), true, "output should show usage")
		})
	}
}

func TestServerUserCreate(t *testing.T) {
	tmpDB := filepath.Join(t.TempDir(), "test.db")

	output, err := serverCmd("user", "create", "--dbPath", tmpDB, "--email", "test@example.com", "--password", "password123").CombinedOutput()
	if err != nil {
		t.Fatalf("user create failed: %v\nOutput: %s", err, output)
	}

	outputStr := string(output)
	assert.Equal(t, strings.Contains(outputStr, "User created successfully"), true, "output should show success message")
	assert.Equal(t, strings.Contains(outputStr, "test@example.com"), true, "output should show email")

	db := openDB(t, tmpDB)
	var count int64
	db.Table("users").Count(&count)
	assert.Equal(t, count, int64(1), "should have created 1 user")
}

func TestServerUserCreateShortPassword(t *testing.T) {
	tmpDB := filepath.Join(t.TempDir(), "test.db")

	output, err := serverCmd("user", "create", "--dbPath", tmpDB, "--email", "test@example.com", "--password", "short").CombinedOutput()
	if err == nil {
		t.Fatal("expected command to fail with short password")
	}

	assert.Equal(t, strings.Contains(string(output), "password should be longer than 8 characters"), true, "output should show password error")
}

func TestServerUserResetPassword(t *testing.T) {
	tmpDB := filepath.Join(t.TempDir(), "test.db")

	if output, err := serverCmd("user", "create", "--dbPath", tmpDB, "--email", "test@example.com", "--password", "oldpassword123").CombinedOutput(); err != nil {
		t.Fatalf("failed to create user: %v\nOutput: %s", err, output)
	}

	output, err := serverCmd("user", "reset-password", "--dbPath", tmpDB, "--email", "test@example.com", "--password", "newpassword123").CombinedOutput()
	if err != nil {
		t.Fatalf("reset-password failed: %v\nOutput: %s", err, output)
	}

	assert.Equal(t, strings.Contains(string(output), "Password reset successfully"), true, "output should show success message")
}

func TestServerUserRemove(t *testing.T) {
	tmpDB := filepath.Join(t.TempDir(), "test.db")

	if output, err := serverCmd("user", "create", "--dbPath", tmpDB, "--email", "test@example.com", "--password", "password123").CombinedOutput(); err != nil {
		t.Fatalf("failed to create user: %v\nOutput: %s", err, output)
	}

	removeCmd := serverCmd("user", "remove", "--dbPath", tmpDB, "--email", "test@example.com")

	stdin, err := removeCmd.StdinPipe()
	if err != nil {
		t.Fatalf("failed to create stdin pipe: %v", err)
	}
	stdout, err := removeCmd.StdoutPipe()
	if err != nil {
		t.Fatalf("failed to create stdout pipe: %v", err)
	}
	var stderr bytes.Buffer
	removeCmd.Stderr = &stderr

	if err := removeCmd.Start(); err != nil {
		t.Fatalf("failed to start remove command: %v", err)
	}
	if err := assert.RespondToPrompt(stdout, stdin, "Remove user test@example.com", "y\n", 10*time.Second); err != nil {
		t.Fatalf("failed to confirm removal: %v", err)
	}
	if err := removeCmd.Wait(); err != nil {
		t.Fatalf("user remove failed: %v\nStderr: %s", err, stderr.String())
	}

	db := openDB(t, tmpDB)
	var count int64
	db.Table("users").Count(&count)
	assert.Equal(t, count, int64(0), "should have 0 users after removal")
}
