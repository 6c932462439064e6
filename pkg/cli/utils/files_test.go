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

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
)

func TestEnsureDir(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "test", "nested", "dir")

	err := EnsureDir(testPath)
	assert.Equal(t, err, nil, "EnsureDir should succeed")

	info, err := os.Stat(testPath)
	assert.Equal(t, err, nil, "directory should exist")
	assert.Equal(t, info.IsDir(), true, "should be a directory")

	err = EnsureDir(testPath)
	assert.Equal(t, err, nil, "EnsureDir should succeed on existing directory")

	t.Run("file in the way", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := EnsureDir(p); err == nil {
			t.Error("expected an error for a file at the path")
		}
	})
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.txt")

	ok, err := FileExists(p)
	assert.Equal(t, err, nil, "error mismatch")
	assert.Equal(t, ok, false, "file should not exist")

	if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	ok, err = FileExists(p)
	assert.Equal(t, err, nil, "error mismatch")
	assert.Equal(t, ok, true, "file should exist")
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "godnotesrc")

	if err := WriteFileAtomic(p, []byte("editor: vi\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(p, []byte("editor: nano\n"), 0600); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, string(b), "editor: nano\n", "content mismatch")

	info, err := os.Stat(p)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, info.Mode().Perm(), os.FileMode(0600), "mode mismatch")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, len(entries), 1, "no temporary file should be left behind")

	t.Run("missing directory", func(t *testing.T) {
		if err := WriteFileAtomic(filepath.Join(dir, "missing", "a"), []byte("x"), 0644); err == nil {
			t.Error("expected an error")
		}
	})
}
