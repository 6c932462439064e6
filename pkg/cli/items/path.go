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

package items

import (
	"strings"

	"github.com/pkg/errors"
)

// PathSeparator separates the names in an item path
const PathSeparator = "/"

// ErrAmbiguousPath is returned when more than one item matches a path
var ErrAmbiguousPath = errors.New("more than one item matches the path")

// Path returns the names from the top level down to the item, joined by
// PathSeparator. Missing ancestors end the walk.
func Path(list []Item, id string) string {
	var names []string
	seen := map[string]bool{}

	cur := Find(list, id)
	for cur != nil && !seen[cur.ID] {
		seen[cur.ID] = true
		names = append([]string{cur.Name}, names...)

		if cur.ParentID == "" {
			break
		}
		cur = Find(list, cur.ParentID)
	}

	return strings.Join(names, PathSeparator)
}

// Resolve finds an item by id, or else by its path of names. It returns nil
// if nothing matches.
func Resolve(list []Item, ref string) (*Item, error) {
	if it := Find(list, ref); it != nil {
		return it, nil
	}

	ref = strings.Trim(ref, PathSeparator)
	if ref == "" {
		return nil, nil
	}

	var match *Item
	for idx := range list {
		if Path(list, list[idx].ID) != ref {
			continue
		}
		if match != nil {
			return nil, errors.Wrap(ErrAmbiguousPath, ref)
		}

		match = &list[idx]
	}

	return match, nil
}
