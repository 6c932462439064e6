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
	"net/http"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/app"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/context"
	mw "github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/middleware"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/presenters"
)

// NewTrash creates a new Trash controller.
func NewTrash(app *app.App) *Trash {
	return &Trash{
		app: app,
	}
}

// Trash is a controller for the trashed folders and notes.
type Trash struct {
	app *app.App
}

// Index handles GET /trash
func (t *Trash) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	trash, err := t.app.ListTrash(user.ID)
	if err != nil {
		handleJSONError(w, err, "finding trash")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentTrash(trash))
}

// RestoreFolder handles POST /trash/restore/folder/{folderID}
func (t *Trash) RestoreFolder(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	id, err := pathID(r, "folderID")
	if err != nil {
		handleJSONError(w, err, "parsing the path")
		return
	}

	folder, err := t.app.RestoreFolder(*user, id)
	if err != nil {
		handleJSONError(w, err, "restoring folder")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentFolder(folder))
}

// RestoreNote handles POST /trash/restore/note/{noteID}
func (t *Trash) RestoreNote(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	id, err := pathID(r, "noteID")
	if err != nil {
		handleJSONError(w, err, "parsing the path")
		return
	}

	note, err := t.app.RestoreNote(*user, id)
	if err != nil {
		handleJSONError(w, err, "restoring note")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentNote(note))
}
