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
	"context"
	"strings"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/consts"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
)

func matches(it items.Item, lower string) bool {
	return strings.Contains(strings.ToLower(it.Name), lower) ||
		strings.Contains(strings.ToLower(it.ContentString()), lower)
}

// SearchGlobal returns the files whose name or content contains the query,
// ignoring case. When online, content matches on the server come first.
// A failed server search falls back to the local matches.
func (s *Store) SearchGlobal(ctx context.Context, query string) []items.Item {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	lower := strings.ToLower(query)

	s.mu.Lock()
	var local []items.Item
	for _, it := range s.state.Items {
		if it.IsFile() && !it.IsDeleted() && matches(it, lower) {
			local = append(local, it.Clone())
		}
	}
	online := s.onlineLocked()
	s.mu.Unlock()

	if !online {
		return local
	}

	notes, err := s.remote.ListNotes(ctx)
	if err != nil {
		s.mu.Lock()
		s.handleFailureLocked("search", err, nil, nil)
		s.mu.Unlock()

		return local
	}

	var ret []items.Item
	seen := map[string]bool{}
	for _, n := range notes {
		if len(ret) == consts.SearchResultLimit {
			break
		}
		if n.Content == nil || items.HasDeletedTag(n.Tags) {
			continue
		}
		if !strings.Contains(strings.ToLower(*n.Content), lower) {
			continue
		}

		ret = append(ret, noteItem(n))
		seen[n.ID] = true
	}

	for _, it := range local {
		if !seen[it.ID] {
			ret = append(ret, it)
		}
	}

	return ret
}
