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

package store

import (
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/syncerr"
)

// SetActiveFile makes the file the active one. An empty id clears it.
func (s *Store) SetActiveFile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if it := items.Find(s.state.Items, id); it == nil || !it.IsFile() {
			return syncerr.Validationf("set active file", "file '%s' not found", id)
		}
	}

	s.state.ActiveFileID = id
	s.persistLocked()

	return nil
}

// OpenFile adds the file to the open files and makes it active
func (s *Store) OpenFile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if it := items.Find(s.state.Items, id); it == nil || !it.IsFile() {
		return syncerr.Validationf("open file", "file '%s' not found", id)
	}

	if !items.Contains(s.state.OpenFiles, id) {
		s.state.OpenFiles = append(s.state.OpenFiles, id)
	}
	s.state.ActiveFileID = id
	s.persistLocked()

	return nil
}

// CloseFile removes the file from the open files. If it was active, the
// last remaining open file becomes active.
func (s *Store) CloseFile(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.OpenFiles = items.Remove(s.state.OpenFiles, id)
	if s.state.ActiveFileID == id {
		s.state.ActiveFileID = ""
		if n := len(s.state.OpenFiles); n > 0 {
			s.state.ActiveFileID = s.state.OpenFiles[n-1]
		}
	}
	s.persistLocked()
}

// SetExpanded expands or collapses a folder
func (s *Store) SetExpanded(id string, expanded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	has := items.Contains(s.state.ExpandedFolders, id)
	switch {
	case expanded && !has:
		s.state.ExpandedFolders = append(s.state.ExpandedFolders, id)
	case !expanded && has:
		s.state.ExpandedFolders = items.Remove(s.state.ExpandedFolders, id)
	default:
		return
	}
	s.persistLocked()
}

// SetSortOrder sets the sort order of the item tree
func (s *Store) SetSortOrder(order string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SortOrder = order
	s.persistLocked()
}

// SetTheme sets the theme
func (s *Store) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Theme = theme
	s.persistLocked()
}

// clearPointersLocked drops every ui pointer into the given set of ids
func (s *Store) clearPointersLocked(ids map[string]bool) {
	if ids[s.state.ActiveFileID] {
		s.state.ActiveFileID = ""
	}

	var open []string
	for _, id := range s.state.OpenFiles {
		if !ids[id] {
			open = append(open, id)
		}
	}
	s.state.OpenFiles = open

	var expanded []string
	for _, id := range s.state.ExpandedFolders {
		if !ids[id] {
			expanded = append(expanded, id)
		}
	}
	s.state.ExpandedFolders = expanded
}
