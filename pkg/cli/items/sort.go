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
	"sort"
	"strings"
)

// Sort orders accepted by SortSiblings
const (
	SortByName    = "name"
	SortByUpdated = "updated"
	SortByCreated = "created"
)

// SortSiblings returns a sorted copy of the list. Folders come before files;
// within each group items are ordered by name, or newest first by the
// updated or created time.
func SortSiblings(list []Item, order string) []Item {
	ret := append([]Item(nil), list...)

	sort.SliceStable(ret, func(i, j int) bool {
		a, b := ret[i], ret[j]
		if a.IsFolder() != b.IsFolder() {
			return a.IsFolder()
		}

		switch order {
		case SortByUpdated:
			if a.UpdatedAt != b.UpdatedAt {
				return a.UpdatedAt > b.UpdatedAt
			}
		case SortByCreated:
			if a.CreatedAt != b.CreatedAt {
				return a.CreatedAt > b.CreatedAt
			}
		}

		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	return ret
}

// Children returns the items whose parent is parentID. With an empty
// parentID it returns the top level, including items whose parent is not
// in the list.
func Children(list []Item, parentID string) []Item {
	var ret []Item
	for _, it := range list {
		if parentID == "" {
			if it.ParentID == "" || IndexOf(list, it.ParentID) == -1 {
				ret = append(ret, it)
			}
			continue
		}

		if it.ParentID == parentID {
			ret = append(ret, it)
		}
	}

	return ret
}
