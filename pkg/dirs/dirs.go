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

// Package dirs resolves the XDG base directories and the godnotes
// directories under them
package dirs

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/pkg/errors"
)

// AppName is the name of the godnotes directory under each base directory
const AppName = "godnotes"

var (
	// Home is the home directory of the user
	Home string
	// ConfigHome is the full path to the directory in which user-specific
	// configurations should be written.
	ConfigHome string
	// DataHome is the full path to the directory in which user-specific data
	// files should be written.
	DataHome string
	// CacheHome is the full path to the directory in which user-specific
	// non-essential cached data should be written.
	CacheHome string
)

// Base is a snapshot of the base directories
type Base struct {
	Home   string
	Config string
	Data   string
	Cache  string
}

func init() {
	Reload()
}

// Reload re-reads the base directories from the environment
func Reload() {
	initDirs()
}

// Current returns the base directories as of the last Reload
func Current() Base {
	return Base{
		Home:   Home,
		Config: ConfigHome,
		Data:   DataHome,
		Cache:  CacheHome,
	}
}

// AppDir returns the godnotes directory under the given base directory
func AppDir(base string) string {
	return filepath.Join(base, AppName)
}

// getHomeDir prefers $HOME and falls back to the user database
func getHomeDir() string {
	if dir := os.Getenv("HOME"); dir != "" {
		return dir
	}

	usr, err := user.Current()
	if err != nil {
		panic(errors.Wrap(err, "getting home dir"))
	}

	return usr.HomeDir
}

// readPath returns the value of the environment variable, ignoring it when
// it is empty or relative
func readPath(envName, defaultPath string) string {
	if dir := os.Getenv(envName); dir != "" && filepath.IsAbs(dir) {
		return dir
	}

	return defaultPath
}
