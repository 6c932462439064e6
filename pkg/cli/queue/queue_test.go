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

package queue

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/pkg/errors"
)

var testNow = time.Date(2009, time.November, 10, 23, 0, 0, 0, time.UTC)

func mustEntry(t *testing.T, method, endpoint string, payload interface{}, itemID string) Entry {
	e, err := NewEntry(method, endpoint, payload, itemID, testNow)
	if err != nil {
		t.Fatal(errors.Wrap(err, "making entry"))
	}

	return e
}

func payloadOf(t *testing.T, e Entry) map[string]interface{} {
	var m map[string]interface{}
	if err := json.Unmarshal(e.Payload, &m); err != nil {
		t.Fatal(errors.Wrap(err, "unmarshaling payload"))
	}

	return m
}

func TestNewEntry(t *testing.T) {
	e := mustEntry(t, http.MethodPatch, "/notes/n1", map[string]interface{}{"content": "hi"}, "n1")

	assert.NotEqual(t, e.ID, "", "id should be set")
	assert.Equal(t, e.Timestamp, testNow.UnixMilli(), "timestamp mismatch")
	assert.Equal(t, e.Attempts, 0, "attempts mismatch")
	assert.Equal(t, string(e.Payload), `{"content":"hi"}`, "payload mismatch")

	e = mustEntry(t, http.MethodDelete, "/notes/n1", nil, "n1")
	assert.Equal(t, len(e.Payload), 0, "nil payload should stay empty")
}

func TestEnqueue_coalesce(t *testing.T) {
	var q []Entry
	q = Enqueue(q, mustEntry(t, http.MethodPatch, "/notes/n1", map[string]interface{}{"content": "a"}, "n1"))
	q = Enqueue(q, mustEntry(t, http.MethodPatch, "/notes/n1", map[string]interface{}{"content": "ab"}, "n1"))

	assert.Equal(t, len(q), 1, "queue length mismatch")
	assert.Equal(t, payloadOf(t, q[0])["content"], "ab", "latest payload should win")
}

func TestEnqueue(t *testing.T) {
	testCases := []struct {
		existing []Entry
		entry    Entry
		expected []string
	}{
		{
			// different fields on the same endpoint are kept apart
			existing: []Entry{mustEntry(t, http.MethodPatch, "/notes/n1", map[string]interface{}{"content": "a"}, "n1")},
			entry:    mustEntry(t, http.MethodPatch, "/notes/n1", map[string]interface{}{"title": "b"}, "n1"),
			expected: []string{`{"content":"a"}`, `{"title":"b"}`},
		},
		{
			// other items are untouched
			existing: []Entry{mustEntry(t, http.MethodPatch, "/notes/n2", map[string]interface{}{"isPinned": true}, "n2")},
			entry:    mustEntry(t, http.MethodPatch, "/notes/n1", map[string]interface{}{"isPinned": false}, "n1"),
			expected: []string{`{"isPinned":true}`, `{"isPinned":false}`},
		},
		{
			// posts are never coalesced
			existing: []Entry{mustEntry(t, http.MethodPost, "/notes", map[string]interface{}{"title": "a"}, "n1")},
			entry:    mustEntry(t, http.MethodPost, "/notes", map[string]interface{}{"title": "a"}, "n1"),
			expected: []string{`{"title":"a"}`, `{"title":"a"}`},
		},
		{
			// public toggles are not simple field updates
			existing: []Entry{mustEntry(t, http.MethodPatch, "/notes/n1/public", map[string]interface{}{"isPublic": true}, "n1")},
			entry:    mustEntry(t, http.MethodPatch, "/notes/n1/public", map[string]interface{}{"isPublic": false}, "n1"),
			expected: []string{`{"isPublic":true}`, `{"isPublic":false}`},
		},
		{
			// the replaced entry moves to the end
			existing: []Entry{
				mustEntry(t, http.MethodPatch, "/folders/f1", map[string]interface{}{"parentId": "f2"}, "f1"),
				mustEntry(t, http.MethodPatch, "/folders/f1", map[string]interface{}{"name": "x"}, "f1"),
			},
			entry:    mustEntry(t, http.MethodPatch, "/folders/f1", map[string]interface{}{"parentId": nil}, "f1"),
			expected: []string{`{"name":"x"}`, `{"parentId":null}`},
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			q := Enqueue(tc.existing, tc.entry)

			var got []string
			for _, e := range q {
				got = append(got, string(e.Payload))
			}

			assert.DeepEqual(t, got, tc.expected, "payloads mismatch")
		})
	}
}

func TestRewriteItemID(t *testing.T) {
	q := []Entry{
		mustEntry(t, http.MethodPatch, "/notes/old-id-123", map[string]interface{}{"content": "B"}, "old-id-123"),
		mustEntry(t, http.MethodPatch, "/notes/old-id-1234", map[string]interface{}{"content": "C"}, "old-id-1234"),
		mustEntry(t, http.MethodPost, "/notes", map[string]interface{}{"title": "child", "folderId": "old-id-123"}, "n9"),
		mustEntry(t, http.MethodPost, "/trash/restore/note/old-id-123", nil, "old-id-123"),
	}

	got := RewriteItemID(q, "old-id-123", "new-id-456")

	assert.Equal(t, got[0].ItemID, "new-id-456", "item id mismatch")
	assert.Equal(t, got[0].Endpoint, "/notes/new-id-456", "endpoint mismatch")
	assert.Equal(t, got[1].ItemID, "old-id-1234", "similar id should be untouched")
	assert.Equal(t, got[1].Endpoint, "/notes/old-id-1234", "similar endpoint should be untouched")
	assert.Equal(t, payloadOf(t, got[2])["folderId"], "new-id-456", "parent reference mismatch")
	assert.Equal(t, got[3].Endpoint, "/trash/restore/note/new-id-456", "restore endpoint mismatch")

	// the input is not modified
	assert.Equal(t, q[0].ItemID, "old-id-123", "input should be untouched")
}

func TestHelpers(t *testing.T) {
	q := []Entry{
		mustEntry(t, http.MethodPost, "/notes", map[string]interface{}{"title": "a"}, "n1"),
		mustEntry(t, http.MethodPatch, "/notes/n1", map[string]interface{}{"content": "b"}, "n1"),
		mustEntry(t, http.MethodPatch, "/notes/n2", map[string]interface{}{"tags": []string{"x"}}, "n2"),
	}

	assert.Equal(t, HasCreate(q, "n1"), true, "n1 create")
	assert.Equal(t, HasCreate(q, "n2"), false, "n2 create")
	assert.Equal(t, HasPatchField(q, "n1", "content"), true, "n1 content")
	assert.Equal(t, HasPatchField(q, "n2", "content"), false, "n2 content")
	assert.Equal(t, HasItem(q, "n2"), true, "n2 item")
	assert.Equal(t, len(RemoveItem(q, "n1")), 1, "remove n1")
}
