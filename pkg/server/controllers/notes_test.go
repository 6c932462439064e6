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

package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/presenters"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/testutils"
)

func (e *testEnv) createNote(body string) presenters.Note {
	res := e.do("POST", "/api/notes", body)
	assert.StatusCodeEquals(e.t, res, http.StatusCreated, "creating note")

	var ret presenters.Note
	testutils.MustDecodeJSON(e.t, res, &ret)

	return ret
}

func TestNotes_create(t *testing.T) {
	env := newTestEnv(t)
	defer env.closer()

	note := env.createNote(`{"title":"hello","content":"# hello","tags":["a","b"],"isPinned":true}`)
	assert.Equal(t, note.Title, "hello", "title mismatch")
	assert.Equal(t, *note.Content, "# hello", "content mismatch")
	assert.DeepEqual(t, note.Tags, []string{"a", "b"}, "tags mismatch")
	assert.Equal(t, note.IsPinned, true, "isPinned mismatch")
	assert.Equal(t, note.IsFavorite, false, "isFavorite mismatch")
	assert.Equal(t, note.FolderID == nil, true, "folderId mismatch")

	res := env.do("GET", "/api/notes/"+note.ID, "")
	assert.StatusCodeEquals(t, res, http.StatusOK, "")
	var shown presenters.Note
	testutils.MustDecodeJSON(t, res, &shown)
	assert.Equal(t, shown.ID, note.ID, "id mismatch")

	res = env.do("GET", "/api/notes", "")
	assert.StatusCodeEquals(t, res, http.StatusOK, "")
	var list []presenters.Note
	testutils.MustDecodeJSON(t, res, &list)
	assert.Equal(t, len(list), 1, "note count mismatch")

	res = env.do("POST", "/api/notes", `{"title":"x","folderId":"missing"}`)
	assert.StatusCodeEquals(t, res, http.StatusUnprocessableEntity, "unknown folder")

	res = env.do("GET", "/api/notes/missing", "")
	assert.StatusCodeEquals(t, res, http.StatusNotFound, "unknown note")
}

func TestNotes_update(t *testing.T) {
	env := newTestEnv(t)
	defer env.closer()

	res := env.do("POST", "/api/folders", `{"name":"work"}`)
	var folder presenters.Folder
	testutils.MustDecodeJSON(t, res, &folder)

	note := env.createNote(fmt.Sprintf(`{"title":"hello","content":"body","folderId":"%s"}`, folder.ID))

	testCases := []struct {
		body          string
		expectedTitle string
		expectFolder  bool
		expectedTags  []string
		expectTrashed bool
	}{
		{
			body:          `{"title":"renamed"}`,
			expectedTitle: "renamed",
			expectFolder:  true,
			expectedTags:  []string{},
		},
		{
			body:          `{"folderId":null,"tags":["x"]}`,
			expectedTitle: "renamed",
			expectFolder:  false,
			expectedTags:  []string{"x"},
		},
		{
			body:          `{"tags":["x","deleted:2025-01-01T00:00:00Z"]}`,
			expectedTitle: "renamed",
			expectFolder:  false,
			expectedTags:  []string{"x"},
			expectTrashed: true,
		},
		{
			body:          `{"tags":["x"]}`,
			expectedTitle: "renamed",
			expectFolder:  false,
			expectedTags:  []string{"x"},
			expectTrashed: false,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			res := env.do("PATCH", "/api/notes/"+note.ID, tc.body)
			assert.StatusCodeEquals(t, res, http.StatusOK, "")

			var payload presenters.Note
			testutils.MustDecodeJSON(t, res, &payload)
			assert.Equal(t, payload.Title, tc.expectedTitle, "title mismatch")
			assert.Equal(t, *payload.Content, "body", "content should be untouched")
			assert.Equal(t, payload.FolderID != nil, tc.expectFolder, "folder mismatch")
			assert.DeepEqual(t, payload.Tags, tc.expectedTags, "tags mismatch")

			var record database.Note
			testutils.MustExec(t, env.db.Unscoped().Where("id = ?", note.ID).First(&record), "finding note")
			assert.Equal(t, record.DeletedAt.Valid, tc.expectTrashed, "trash state mismatch")
		})
	}

	res = env.do("PATCH", "/api/notes/"+note.ID, `{"isFavorite":"yes"}`)
	assert.StatusCodeEquals(t, res, http.StatusBadRequest, "invalid boolean")
}

func TestNotes_public(t *testing.T) {
	env := newTestEnv(t)
	defer env.closer()

	note := env.createNote(`{"title":"shared","content":"visible"}`)

	res := testutils.HTTPDo(t, testutils.MakeReq(env.url, "GET", "/api/public/notes/"+note.ID, ""))
	assert.StatusCodeEquals(t, res, http.StatusNotFound, "private note should not be visible")

	res = env.do("PATCH", "/api/notes/"+note.ID+"/public", `{}`)
	assert.StatusCodeEquals(t, res, http.StatusBadRequest, "isPublic is required")

	res = env.do("PATCH", "/api/notes/"+note.ID+"/public", `{"isPublic":true}`)
	assert.StatusCodeEquals(t, res, http.StatusOK, "")
	var updated presenters.Note
	testutils.MustDecodeJSON(t, res, &updated)
	assert.Equal(t, updated.IsPublic, true, "isPublic mismatch")

	res = testutils.HTTPDo(t, testutils.MakeReq(env.url, "GET", "/api/public/notes/"+note.ID, ""))
	assert.StatusCodeEquals(t, res, http.StatusOK, "")
	var public presenters.PublicNote
	testutils.MustDecodeJSON(t, res, &public)
	assert.Equal(t, public.Title, "shared", "title mismatch")
	assert.Equal(t, public.Content, "visible", "content mismatch")
}

func TestNotes_delete(t *testing.T) {
	env := newTestEnv(t)
	defer env.closer()

	note := env.createNote(`{"title":"hello"}`)

	res := env.do("DELETE", "/api/notes/"+note.ID, "")
	assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

	res = env.do("GET", "/api/notes/"+note.ID, "")
	assert.StatusCodeEquals(t, res, http.StatusNotFound, "trashed note should be hidden")

	res = env.do("DELETE", "/api/notes/"+note.ID, "")
	assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

	var count int64
	testutils.MustExec(t, env.db.Unscoped().Model(&database.Note{}).Where("id = ?", note.ID).Count(&count), "counting notes")
	assert.Equal(t, count, int64(0), "trashed note should be purged")
}
