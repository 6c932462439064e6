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

//go:build linux || darwin || freebsd

package dirs

import (
	"path/filepath"
)

// xdgBase pairs an XDG environment variable with its fallback under $HOME
type xdgBase struct {
	env      string
	fallback []string
	target   *string
}

var xdgBases = []xdgBase{
	{env: "XDG_CONFIG_HOME", fallback: []string{".config"}, target: &ConfigHome},
	{env: "XDG_DATA_HOME", fallback: []string{".local", "share"}, target: &DataHome},
	{env: "XDG_CACHE_HOME", fallback: []string{".cache"}, target: &CacheHome},
}

func initDirs() {
	Home = getHomeDir()

	for _, b := range xdgBases {
		parts := append([]string{Home}, b.fallback...)
		*b.target = readPath(b.env, filepath.Join(parts...))
	}
}
