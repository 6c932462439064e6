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

// Descendants returns the id of the root followed by the ids of every item
// nested under it, in breadth first order. It returns nil if the root is
// not in the list.
func Descendants(list []Item, rootID string) []string {
	if IndexOf(list, rootID) == -1 {
		return nil
	}

	children := map[string][]string{}
	for _, it := range list {
		if it.ParentID != "" {
			children[it.ParentID] = append(children[it.ParentID], it.ID)
		}
	}

	ret := []string{rootID}
	seen := map[string]bool{rootID: true}
	for i := 0; i < len(ret); i++ {
		for _, c := range children[ret[i]] {
			if seen[c] {
				continue
			}

			seen[c] = true
			ret = append(ret, c)
		}
	}

	return ret
}

// CreatesCycle returns true if placing the item under destID would make the
// item its own ancestor. It walks the parent chain up from the destination.
func CreatesCycle(list []Item, id, destID string) bool {
	seen := map[string]bool{}

	cur := destID
	for cur != "" {
		if cur == id {
			return true
		}
		if seen[cur] {
			return true
		}
		seen[cur] = true

		it := Find(list, cur)
		if it == nil {
			return false
		}
		cur = it.ParentID
	}

	return false
}

// Depth returns the number of ancestors of the item that are present in the list
func Depth(list []Item, id string) int {
	var d int
	seen := map[string]bool{id: true}

	it := Find(list, id)
	for it != nil && it.ParentID != "" && !seen[it.ParentID] {
		seen[it.ParentID] = true
		it = Find(list, it.ParentID)
		if it != nil {
			d++
		}
	}

	return d
}
