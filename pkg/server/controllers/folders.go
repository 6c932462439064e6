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

// NewFolders creates a new Folders controller.
func NewFolders(app *app.App) *Folders {
	return &Folders{
		app: app,
	}
}

// Folders is a folder controller.
type Folders struct {
	app *app.App
}

// Index handles GET /folders
func (f *Folders) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	folders, err := f.app.ListFolders(user.ID)
	if err != nil {
		handleJSONError(w, err, "finding folders")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentFolders(folders))
}

type createFolderPayload struct {
	Name     string   `json:"name"`
	ParentID *string  `json:"parentId"`
	Tags     []string `json:"tags"`
}

// Create handles POST /folders
func (f *Folders) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var params createFolderPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing request payload")
		return
	}

	folder, err := f.app.CreateFolder(*user, app.CreateFolderParams{
		Name:     params.Name,
		ParentID: params.ParentID,
		Tags:     params.Tags,
	})
	if err != nil {
		handleJSONError(w, err, "creating folder")
		return
	}

	mw.RespondJSON(w, http.StatusCreated, presenters.PresentFolder(folder))
}

func parseUpdateFolderParams(p patch) (app.UpdateFolderParams, error) {
	var ret app.UpdateFolderParams
	var err error

	if ret.Name, err = p.str("name"); err != nil {
		return ret, err
	}
	if ret.SetParent, ret.ParentID, err = p.ref("parentId"); err != nil {
		return ret, err
	}
	if ret.Tags, err = p.tags("tags"); err != nil {
		return ret, err
	}

	return ret, nil
}

// Update handles PATCH /folders/{folderID}
func (f *Folders) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	id, err := pathID(r, "folderID")
	if err != nil {
		handleJSONError(w, err, "parsing the path")
		return
	}

	var p patch
	if err := parseRequestData(r, &p); err != nil {
		handleJSONError(w, err, "parsing request payload")
		return
	}
	params, err := parseUpdateFolderParams(p)
	if err != nil {
		handleJSONError(w, err, "parsing request payload")
		return
	}

	folder, err := f.app.UpdateFolder(*user, id, params)
	if err != nil {
		handleJSONError(w, err, "updating folder")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentFolder(folder))
}

func isPermanent(r *http.Request) bool {
	return r.URL.Query().Get("permanent") == "true"
}

// Delete handles DELETE /folders/{folderID}
func (f *Folders) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	id, err := pathID(r, "folderID")
	if err != nil {
		handleJSONError(w, err, "parsing the path")
		return
	}

	if err := f.app.DeleteFolder(*user, id, isPermanent(r)); err != nil {
		handleJSONError(w, err, "deleting folder")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
