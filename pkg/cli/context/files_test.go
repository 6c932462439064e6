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

package context

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
)

func assertDirsExist(t *testing.T, paths Paths) {
	for _, base := range []string{paths.Config, paths.Data, paths.Cache} {
		info, err := os.Stat(GodnotesDir(base))
		assert.Equal(t, err, nil, "dir should exist under "+base)
		assert.Equal(t, info.IsDir(), true, "should be a directory: "+base)
	}
}

func TestInitGodnotesDirs(t *testing.T) {
	tmpDir := t.TempDir()

	paths := Paths{
		Config: filepath.Join(tmpDir, "config"),
		Data:   filepath.Join(tmpDir, "data"),
		Cache:  filepath.Join(tmpDir, "cache"),
	}

	err := InitGodnotesDirs(paths)
	assert.Equal(t, err, nil, "InitGodnotesDirs should succeed")
	assertDirsExist(t, paths)

	err = InitGodnotesDirs(paths)
	assert.Equal(t, err, nil, "InitGodnotesDirs should succeed when dirs already exist")
	assertDirsExist(t, paths)
}

func TestInitGodnotesDirsSkipsEmpty(t *testing.T) {
	tmpDir := t.TempDir()

	err := InitGodnotesDirs(Paths{Data: tmpDir})
	assert.Equal(t, err, nil, "InitGodnotesDirs should succeed")

	_, err = os.Stat(GodnotesDir(tmpDir))
	assert.Equal(t, err, nil, "data dir should exist")
}
