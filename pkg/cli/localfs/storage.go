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

// Package localfs provides the durable local storage of note bodies and the
// sync manifest
package localfs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/utils"
	"github.com/pkg/errors"
)

// ErrNotExist is returned when reading a file that does not exist
var ErrNotExist = errors.New("file does not exist")

// Storage is the capability of reading and writing files relative to a root.
// A nil Storage means the capability is absent.
type Storage interface {
	Exists(name string) (bool, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	DeleteFile(name string) error
}

// NotePath returns the storage path of the cached body of an item
func NotePath(id string) string {
	return filepath.ToSlash(filepath.Join("notes", id+".md"))
}

// Dir is a Storage rooted at a directory on disk
type Dir struct {
	Root string
}

// NewDir returns a Storage rooted at the given directory
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

func (d *Dir) path(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("path '%s' escapes the storage root", name)
	}

	return filepath.Join(d.Root, clean), nil
}

// Exists checks if the file exists
func (d *Dir) Exists(name string) (bool, error) {
	p, err := d.path(name)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(p)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}

	return false, errors.Wrapf(err, "checking if '%s' exists", name)
}

// ReadFile reads the file
func (d *Dir) ReadFile(name string) ([]byte, error) {
	p, err := d.path(name)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNotExist, name)
		}

		return nil, errors.Wrapf(err, "reading '%s'", name)
	}

	return b, nil
}

// WriteFile writes the file atomically, creating its directory if needed
func (d *Dir) WriteFile(name string, data []byte) error {
	p, err := d.path(name)
	if err != nil {
		return err
	}

	if err := utils.EnsureDir(filepath.Dir(p)); err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(p, data, 0644); err != nil {
		return errors.Wrapf(err, "writing '%s'", name)
	}

	return nil
}

// DeleteFile deletes the file. Deleting a missing file is not an error.
func (d *Dir) DeleteFile(name string) error {
	p, err := d.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting '%s'", name)
	}

	return nil
}

// Memory is an in-memory Storage
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemory returns an empty in-memory Storage
func NewMemory() *Memory {
	return &Memory{files: map[string][]byte{}}
}

// Exists checks if the file exists
func (m *Memory) Exists(name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.files[name]
	return ok, nil
}

// ReadFile reads the file
func (m *Memory) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.files[name]
	if !ok {
		return nil, errors.Wrap(ErrNotExist, name)
	}

	return append([]byte(nil), b...), nil
}

// WriteFile writes the file
func (m *Memory) WriteFile(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[name] = append([]byte(nil), data...)
	return nil
}

// DeleteFile deletes the file
func (m *Memory) DeleteFile(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.files, name)
	return nil
}

// Names returns the stored file names in order
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ret := make([]string, 0, len(m.files))
	for name := range m.files {
		ret = append(ret, name)
	}
	sort.Strings(ret)

	return ret
}
