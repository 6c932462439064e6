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
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/utils"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/dirs"
	"github.com/pkg/errors"
)

// GodnotesDir returns the godnotes directory under the given base directory
func GodnotesDir(base string) string {
	return dirs.AppDir(base)
}

// InitGodnotesDirs creates the godnotes directories if they don't already exist.
func InitGodnotesDirs(paths Paths) error {
	for _, d := range []struct {
		base string
		name string
	}{
		{paths.Config, "config"},
		{paths.Data, "data"},
		{paths.Cache, "cache"},
	} {
		if d.base == "" {
			continue
		}

		if err := utils.EnsureDir(GodnotesDir(d.base)); err != nil {
			return errors.Wrapf(err, "initializing %s dir", d.name)
		}
	}

	return nil
}
