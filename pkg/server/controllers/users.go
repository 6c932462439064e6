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
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/log"
	mw "github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/middleware"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/presenters"
	"github.com/pkg/errors"
)

// NewUsers creates a new Users controller.
func NewUsers(app *app.App) *Users {
	return &Users{
		app: app,
	}
}

// Users is a user controller.
type Users struct {
	app *app.App
}

// CredentialsForm is the form data for log in and registration
type CredentialsForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /auth/register
func (u *Users) Register(w http.ResponseWriter, r *http.Request) {
	var form CredentialsForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	token, user, err := u.app.Register(form.Email, form.Password)
	if err != nil {
		handleJSONError(w, err, "registering user")
		return
	}

	log.WithFields(log.Fields{"user": user.ID}).Info("user registered")

	mw.RespondJSON(w, http.StatusCreated, presenters.Session{
		Token: token,
		User:  presenters.PresentUser(*user),
	})
}

// Login handles POST /auth/login
func (u *Users) Login(w http.ResponseWriter, r *http.Request) {
	var form CredentialsForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}
	if form.Email == "" || form.Password == "" {
		handleJSONError(w, app.ErrLoginInvalid, "logging in user")
		return
	}

	user, err := u.app.Authenticate(form.Email, form.Password)
	if err != nil {
		handleJSONError(w, err, "logging in user")
		return
	}

	token, _, err := u.app.SignIn(user)
	if err != nil {
		handleJSONError(w, err, "signing in user")
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.Session{
		Token: token,
		User:  presenters.PresentUser(*user),
	})
}

// Me handles GET /auth/me
func (u *Users) Me(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		mw.RespondUnauthorized(w)
		return
	}

	mw.RespondJSON(w, http.StatusOK, presenters.PresentUser(*user))
}

// Logout handles POST /auth/logout. It revokes the session the request was
// made with.
func (u *Users) Logout(w http.ResponseWriter, r *http.Request) {
	session := context.Session(r.Context())
	if session == nil {
		mw.RespondUnauthorized(w)
		return
	}

	if err := u.app.DeleteSession(session.JTI); err != nil {
		handleJSONError(w, errors.Wrap(err, "deleting session"), "logging out")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
