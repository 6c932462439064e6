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
	"regexp"
	"strings"
)

var linkRegexp = regexp.MustCompile(`\[\[([^\[\]|]+)(?:\|[^\[\]]*)?\]\]`)

// ExtractLinks returns the distinct item ids referenced by [[id]] or
// [[id|label]] links in the content, in order of first appearance.
func ExtractLinks(content string) []string {
	var ret []string
	seen := map[string]bool{}

	for _, m := range linkRegexp.FindAllStringSubmatch(content, -1) {
		id := strings.TrimSpace(m[1])
		if id == "" || seen[id] {
			continue
		}

		seen[id] = true
		ret = append(ret, id)
	}

	return ret
}

// RewriteLinks replaces links to oldID with links to newID and reports
// whether anything changed.
func RewriteLinks(content, oldID, newID string) (string, bool) {
	changed := false

	ret := linkRegexp.ReplaceAllStringFunc(content, func(m string) string {
		sub := linkRegexp.FindStringSubmatch(m)
		if strings.TrimSpace(sub[1]) != oldID {
			return m
		}

		changed = true
		return strings.Replace(m, oldID, newID, 1)
	})

	return ret, changed
}

// UpdateBacklinks recomputes, for every item in the list, whether it is
// linked from sourceID according to the given content. Linked targets gain
// sourceID in their backlinks and targets no longer linked lose it. It
// returns the ids of the items that changed.
func UpdateBacklinks(list []Item, sourceID, content string) []string {
	linked := map[string]bool{}
	for _, id := range ExtractLinks(content) {
		linked[id] = true
	}

	var changed []string
	for idx := range list {
		it := &list[idx]
		if it.ID == sourceID {
			continue
		}

		has := Contains(it.Backlinks, sourceID)
		switch {
		case linked[it.ID] && !has:
			it.Backlinks = append(it.Backlinks, sourceID)
			changed = append(changed, it.ID)
		case !linked[it.ID] && has:
			it.Backlinks = Remove(it.Backlinks, sourceID)
			changed = append(changed, it.ID)
		}
	}

	return changed
}
