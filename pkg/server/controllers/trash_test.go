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
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/presenters"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/testutils"
)

func TestTrash(t *testing.T) {
	env := newTestEnv(t)
	defer env.closer()

	res := env.do("POST", "/api/folders", `{"name":"work"}`)
	var folder presenters.Folder
	testutils.MustDecodeJSON(t, res, &folder)

	inFolder := env.createNote(fmt.Sprintf(`{"title":"inside","folderId":"%s"}`, folder.ID))
	loose := env.createNote(`{"title":"loose"}`)

	res = env.do("DELETE", "/api/folders/"+folder.ID, "")
	assert.StatusCodeEquals(t, res, http.StatusNoContent, "")
	res = env.do("DELETE", "/api/notes/"+loose.ID, "")
	assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

	res = env.do("GET", "/api/trash", "")
	assert.StatusCodeEquals(t, res, http.StatusOK, "")
	var trash presenters.Trash
	testutils.MustDecodeJSON(t, res, &trash)
	assert.Equal(t, len(trash.Folders), 1, "trashed folder count mismatch")
	assert.Equal(t, len(trash.Notes), 2, "trashed note count mismatch")
	assert.Equal(t, trash.Folders[0].DeletedAt != nil, true, "deletedAt should be present")

	res = env.do("POST", "/api/trash/restore/folder/"+folder.ID, "")
	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	res = env.do("GET", "/api/notes/"+inFolder.ID, "")
	assert.StatusCodeEquals(t, res, http.StatusOK, "note in the restored folder should be live")

	res = env.do("POST", "/api/trash/restore/note/"+loose.ID, "")
	assert.StatusCodeEquals(t, res, http.StatusOK, "")
	var restored presenters.Note
	testutils.MustDecodeJSON(t, res, &restored)
	assert.Equal(t, restored.DeletedAt == nil, true, "deletedAt should be cleared")

	res = env.do("GET", "/api/trash", "")
	testutils.MustDecodeJSON(t, res, &trash)
	assert.Equal(t, len(trash.Folders), 0, "trash should be empty")
	assert.Equal(t, len(trash.Notes), 0, "trash should be empty")

	res = env.do("POST", "/api/trash/restore/note/missing", "")
	assert.StatusCodeEquals(t, res, http.StatusNotFound, "")
}
