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
	"fmt"
	"strings"
)

// DeletedTagPrefix marks an item that was moved to the trash
const DeletedTagPrefix = "deleted:"

// DeletedTag returns the soft-delete marker for the given time in milliseconds
func DeletedTag(ts int64) string {
	return fmt.Sprintf("%s%d", DeletedTagPrefix, ts)
}

// IsDeletedTag returns true if the tag is a soft-delete marker
func IsDeletedTag(tag string) bool {
	return strings.HasPrefix(tag, DeletedTagPrefix)
}

// HasDeletedTag returns true if any of the tags is a soft-delete marker
func HasDeletedTag(tags []string) bool {
	for _, t := range tags {
		if IsDeletedTag(t) {
			return true
		}
	}

	return false
}

// IsDeleted returns true if the item carries a soft-delete marker
func (i Item) IsDeleted() bool {
	return HasDeletedTag(i.Tags)
}

// StripDeletedTags returns the tags without soft-delete markers
func StripDeletedTags(tags []string) []string {
	var ret []string
	for _, t := range tags {
		if !IsDeletedTag(t) {
			ret = append(ret, t)
		}
	}

	return ret
}

// WithDeletedTag returns the tags with a single soft-delete marker for ts
func WithDeletedTag(tags []string, ts int64) []string {
	return append(StripDeletedTags(tags), DeletedTag(ts))
}
