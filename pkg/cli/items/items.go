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

// Package items defines the file and folder nodes held by the store and the
// pure functions that operate on collections of them.
package items

import (
	"strings"

	"github.com/google/uuid"
)

// Type is the kind of an item
type Type string

const (
	// TypeFile is a note
	TypeFile Type = "file"
	// TypeFolder contains other items
	TypeFolder Type = "folder"
)

// TemporaryIDPrefix marks ids generated locally before the server assigned one
const TemporaryIDPrefix = "local-"

// Item is a file or a folder
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     Type   `json:"type"`
	ParentID string `json:"parentId,omitempty"`
	// Content is nil for a file whose body has not been loaded yet.
	Content     *string  `json:"content,omitempty"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
	IsPinned    bool     `json:"isPinned,omitempty"`
	IsFavorite  bool     `json:"isFavorite,omitempty"`
	IsProtected bool     `json:"isProtected,omitempty"`
	IsPublic    bool     `json:"isPublic,omitempty"`
	IsPending   bool     `json:"isPending,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Backlinks   []string `json:"backlinks,omitempty"`
}

// NewTemporaryID generates a local id for an item the server has not seen
func NewTemporaryID() string {
	return TemporaryIDPrefix + uuid.NewString()
}

// IsTemporaryID returns true if the id was generated locally
func IsTemporaryID(id string) bool {
	return strings.HasPrefix(id, TemporaryIDPrefix)
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}

// IsFile returns true if the item is a note
func (i Item) IsFile() bool {
	return i.Type == TypeFile
}

// IsFolder returns true if the item is a folder
func (i Item) IsFolder() bool {
	return i.Type == TypeFolder
}

// ContentString returns the content, or an empty string if it is not loaded
func (i Item) ContentString() string {
	if i.Content == nil {
		return ""
	}

	return *i.Content
}

// Clone returns a deep copy of the item
func (i Item) Clone() Item {
	ret := i
	if i.Content != nil {
		c := *i.Content
		ret.Content = &c
	}
	ret.Tags = cloneStrings(i.Tags)
	ret.Backlinks = cloneStrings(i.Backlinks)

	return ret
}

// CloneAll returns a deep copy of the given items
func CloneAll(src []Item) []Item {
	if src == nil {
		return nil
	}

	ret := make([]Item, len(src))
	for idx, it := range src {
		ret[idx] = it.Clone()
	}

	return ret
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}

	ret := make([]string, len(s))
	copy(ret, s)

	return ret
}

// IndexOf returns the position of the item with the given id, or -1
func IndexOf(list []Item, id string) int {
	for idx, it := range list {
		if it.ID == id {
			return idx
		}
	}

	return -1
}

// Find returns a pointer to the item with the given id inside the slice, or nil
func Find(list []Item, id string) *Item {
	idx := IndexOf(list, id)
	if idx == -1 {
		return nil
	}

	return &list[idx]
}

// Contains returns true if the string slice holds the value
func Contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}

// Remove returns the slice without any occurrence of the value
func Remove(list []string, s string) []string {
	var ret []string
	for _, v := range list {
		if v != s {
			ret = append(ret, v)
		}
	}

	return ret
}

// Replace substitutes newID for oldID in the list, keeping order and
// dropping any duplicate the substitution would create.
func Replace(list []string, oldID, newID string) []string {
	if !Contains(list, oldID) {
		return list
	}

	var ret []string
	seen := map[string]bool{}
	for _, v := range list {
		if v == oldID {
			v = newID
		}
		if seen[v] {
			continue
		}

		seen[v] = true
		ret = append(ret, v)
	}

	return ret
}
