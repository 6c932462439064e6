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

// Package queue records mutations that could not be sent to the server and
// replays them once the session is online again.
package queue

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MaxAttempts is the number of failed deliveries after which an entry is dropped
const MaxAttempts = 5

// Entry is a pending request against the server
type Entry struct {
	ID        string          `json:"id"`
	Method    string          `json:"method"`
	Endpoint  string          `json:"endpoint"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	ItemID    string          `json:"itemId,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Attempts  int             `json:"attempts"`
}

// NewEntry builds an entry with a fresh id. The payload is marshaled to JSON
// unless it is nil.
func NewEntry(method, endpoint string, payload interface{}, itemID string, now time.Time) (Entry, error) {
	e := Entry{
		ID:        uuid.NewString(),
		Method:    method,
		Endpoint:  endpoint,
		ItemID:    itemID,
		Timestamp: now.UnixMilli(),
	}

	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return Entry{}, errors.Wrap(err, "marshaling payload")
		}
		e.Payload = b
	}

	return e, nil
}

// coalescibleFields are the payload keys of simple field updates
var coalescibleFields = map[string]bool{
	"content":    true,
	"isFavorite": true,
	"isPinned":   true,
	"tags":       true,
	"name":       true,
	"title":      true,
	"parentId":   true,
	"folderId":   true,
}

func payloadKeys(payload json.RawMessage) ([]string, bool) {
	if len(payload) == 0 {
		return nil, false
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, false
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys, true
}

// shape returns the sorted payload keys of a coalescible entry, or an empty
// string if the entry cannot be coalesced.
func shape(e Entry) string {
	if e.Method != http.MethodPatch || e.ItemID == "" {
		return ""
	}

	keys, ok := payloadKeys(e.Payload)
	if !ok || len(keys) == 0 {
		return ""
	}
	for _, k := range keys {
		if !coalescibleFields[k] {
			return ""
		}
	}

	return strings.Join(keys, ",")
}

// IsCoalescible returns true if a newer entry of the same shape replaces this one
func IsCoalescible(e Entry) bool {
	return shape(e) != ""
}

// Enqueue appends the entry. A coalescible PATCH first removes any queued
// PATCH for the same item and endpoint carrying the same fields, so only
// the latest value is replayed.
func Enqueue(q []Entry, e Entry) []Entry {
	s := shape(e)
	if s == "" {
		return append(q, e)
	}

	ret := make([]Entry, 0, len(q)+1)
	for _, cur := range q {
		if cur.ItemID == e.ItemID && cur.Endpoint == e.Endpoint && shape(cur) == s {
			continue
		}

		ret = append(ret, cur)
	}

	return append(ret, e)
}

// RemoveItem drops every entry for the given item
func RemoveItem(q []Entry, itemID string) []Entry {
	var ret []Entry
	for _, e := range q {
		if e.ItemID != itemID {
			ret = append(ret, e)
		}
	}

	return ret
}

// HasCreate returns true if a POST creating the item is queued
func HasCreate(q []Entry, itemID string) bool {
	for _, e := range q {
		if e.ItemID == itemID && e.Method == http.MethodPost {
			return true
		}
	}

	return false
}

// HasItem returns true if any entry is queued for the item
func HasItem(q []Entry, itemID string) bool {
	for _, e := range q {
		if e.ItemID == itemID {
			return true
		}
	}

	return false
}

// HasPatchField returns true if a queued PATCH for the item sets the field
func HasPatchField(q []Entry, itemID, field string) bool {
	for _, e := range q {
		if e.ItemID != itemID || e.Method != http.MethodPatch {
			continue
		}

		keys, _ := payloadKeys(e.Payload)
		for _, k := range keys {
			if k == field {
				return true
			}
		}
	}

	return false
}

// parentFields are the payload keys that hold a reference to a folder id
var parentFields = []string{"parentId", "folderId"}

// RewriteItemID points every reference to oldID at newID: the item
// association, the id path segment of the endpoint, and parent references
// in payloads. It returns a new slice.
func RewriteItemID(q []Entry, oldID, newID string) []Entry {
	if q == nil {
		return nil
	}

	ret := make([]Entry, len(q))
	for idx, e := range q {
		if e.ItemID == oldID {
			e.ItemID = newID
		}
		e.Endpoint = rewriteEndpoint(e.Endpoint, oldID, newID)
		e.Payload = rewritePayload(e.Payload, oldID, newID)

		ret[idx] = e
	}

	return ret
}

func rewriteEndpoint(endpoint, oldID, newID string) string {
	path := endpoint
	query := ""
	if i := strings.Index(endpoint, "?"); i != -1 {
		path, query = endpoint[:i], endpoint[i:]
	}

	parts := strings.Split(path, "/")
	for idx, p := range parts {
		if p == oldID {
			parts[idx] = newID
		}
	}

	return strings.Join(parts, "/") + query
}

func rewritePayload(payload json.RawMessage, oldID, newID string) json.RawMessage {
	if len(payload) == 0 {
		return payload
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return payload
	}

	changed := false
	for _, f := range parentFields {
		raw, ok := m[f]
		if !ok {
			continue
		}

		var v string
		if err := json.Unmarshal(raw, &v); err != nil || v != oldID {
			continue
		}

		b, err := json.Marshal(newID)
		if err != nil {
			continue
		}
		m[f] = b
		changed = true
	}

	if !changed {
		return payload
	}

	b, err := json.Marshal(m)
	if err != nil {
		return payload
	}

	return b
}
