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
	"encoding/json"
)

// Compare returns true if the two lists hold the same items in the same
// order, ignoring content. It is used to tell whether a state change is
// structural or only touches note bodies.
func Compare(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}

	for idx := range a {
		if !sameShape(a[idx], b[idx]) {
			return false
		}
	}

	return true
}

func sameShape(x, y Item) bool {
	if x.ID != y.ID ||
		x.Name != y.Name ||
		x.Type != y.Type ||
		x.ParentID != y.ParentID ||
		x.IsPinned != y.IsPinned ||
		x.IsFavorite != y.IsFavorite ||
		x.CreatedAt != y.CreatedAt ||
		x.UpdatedAt != y.UpdatedAt ||
		x.IsPending != y.IsPending {
		return false
	}

	return serializeTags(x.Tags) == serializeTags(y.Tags)
}

func serializeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}

	b, err := json.Marshal(tags)
	if err != nil {
		return ""
	}

	return string(b)
}

// SameContent returns true if both lists hold equal content for every position
func SameContent(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}

	for idx := range a {
		x, y := a[idx].Content, b[idx].Content
		if (x == nil) != (y == nil) {
			return false
		}
		if x != nil && *x != *y {
			return false
		}
	}

	return true
}
