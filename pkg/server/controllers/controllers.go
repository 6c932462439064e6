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

// Package controllers implements the http handlers of the server
package controllers

import (
	"net/http"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/app"
	"github.com/pkg/errors"
)

// Controllers is a group of controllers
type Controllers struct {
	Users   *Users
	Folders *Folders
	Notes   *Notes
	Trash   *Trash
	Health  *Health
}

// New returns a new group of controllers sharing the app
func New(a *app.App) *Controllers {
	return &Controllers{
		Users:   NewUsers(a),
		Folders: NewFolders(a),
		Notes:   NewNotes(a),
		Trash:   NewTrash(a),
		Health:  NewHealth(a),
	}
}

// NewHandler returns the root handler serving every route of the app
func NewHandler(a *app.App) (http.Handler, error) {
	ctl := New(a)

	h, err := NewRouter(a, RouteConfig{
		APIRoutes:   NewAPIRoutes(a, ctl),
		Controllers: ctl,
	})
	if err != nil {
		return nil, errors.Wrap(err, "initializing router")
	}

	return h, nil
}
