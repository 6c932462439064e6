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

// NewNotes creates a new Notes controller.
func NewNotes(app *app.App) *Notes {
	return &Notes{
		app: app,
	}
}

// Notes is a note controller.
type Notes struct {
	app *app.App
}

// Index handles GET /notes
func (n *Notes) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	notes, err := n.app.ListNotes(user.ID)
	if err != nil {
		handleJSONError(w, err, "finding notes")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentNotes(notes))
}

// Show handles GET /notes/{noteID}
func (n *Notes) Show(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	id, err := pathID(r, "noteID")
	if err != nil {
		handleJSONError(w, err, "parsing the path")
		return
	}

	note, err := n.app.GetUserNote(n.app.DB, user.ID, id, false)
	if err != nil {
		handleJSONError(w, err, "finding note")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentNote(*note))
}

type createNotePayload struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	FolderID   *string  `json:"folderId"`
	Tags       []string `json:"tags"`
	IsFavorite bool     `json:"isFavorite"`
	IsPinned   bool     `json:"isPinned"`
}

// Create handles POST /notes
func (n *Notes) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var params createNotePayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing request payload")
		return
	}

	note, err := n.app.CreateNote(*user, app.CreateNoteParams{
		Title:      params.Title,
		Content:    params.Content,
		FolderID:   params.FolderID,
		Tags:       params.Tags,
		IsFavorite: params.IsFavorite,
		IsPinned:   params.IsPinned,
	})
	if err != nil {
		handleJSONError(w, err, "creating note")
		return
	}

	mw.RespondJSON(w, http.StatusCreated, presenters.PresentNote(note))
}

func parseUpdateNoteParams(p patch) (app.UpdateNoteParams, error) {
	var ret app.UpdateNoteParams
	var err error

	if ret.Title, err = p.str("title"); err != nil {
		return ret, err
	}
	if ret.Content, err = p.str("content"); err != nil {
		return ret, err
	}
	if ret.SetFolder, ret.FolderID, err = p.ref("folderId"); err != nil {
		return ret, err
	}
	if ret.Tags, err = p.tags("tags"); err != nil {
		return ret, err
	}
	if ret.IsFavorite, err = p.boolean("isFavorite"); err != nil {
		return ret, err
	}
	if ret.IsPinned, err = p.boolean("isPinned"); err != nil {
		return ret, err
	}

	return ret, nil
}

// Update handles PATCH /notes/{noteID}
func (n *Notes) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	id, err := pathID(r, "noteID")
	if err != nil {
		handleJSONError(w, err, "parsing the path")
		return
	}

	var p patch
	if err := parseRequestData(r, &p); err != nil {
		handleJSONError(w, err, "parsing request payload")
		return
	}
	params, err := parseUpdateNoteParams(p)
	if err != nil {
		handleJSONError(w, err, "parsing request payload")
		return
	}

	note, err := n.app.UpdateNote(*user, id, params)
	if err != nil {
		handleJSONError(w, err, "updating note")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentNote(note))
}

// Delete handles DELETE /notes/{noteID}
func (n *Notes) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	id, err := pathID(r, "noteID")
	if err != nil {
		handleJSONError(w, err, "parsing the path")
		return
	}

	if err := n.app.DeleteNote(*user, id, isPermanent(r)); err != nil {
		handleJSONError(w, err, "deleting note")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type setPublicPayload struct {
	IsPublic *bool `json:"isPublic"`
}

// SetPublic handles PATCH /notes/{noteID}/public
func (n *Notes) SetPublic(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	id, err := pathID(r, "noteID")
	if err != nil {
		handleJSONError(w, err, "parsing the path")
		return
	}

	var params setPublicPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing request payload")
		return
	}
	if params.IsPublic == nil {
		handleJSONError(w, errBadRequestf("isPublic is required"), "parsing request payload")
		return
	}

	note, err := n.app.SetNotePublic(*user, id, *params.IsPublic)
	if err != nil {
		handleJSONError(w, err, "updating public flag")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentNote(note))
}

// ShowPublic handles GET /public/notes/{noteID}. It needs no session.
func (n *Notes) ShowPublic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "noteID")
	if err != nil {
		handleJSONError(w, err, "parsing the path")
		return
	}

	note, err := n.app.GetPublicNote(id)
	if err != nil {
		handleJSONError(w, err, "finding public note")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentPublicNote(*note))
}
