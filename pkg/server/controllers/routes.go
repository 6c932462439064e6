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
	mw "github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/middleware"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	APIRoutes   []Route
}

// NewAPIRoutes returns a new api routes
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	ret := []Route{
		{"GET", "/health", c.Health.Index, false},

		{"POST", "/auth/login", c.Users.Login, true},
		{"GET", "/auth/me", mw.Auth(a, c.Users.Me), true},
		{"POST", "/auth/logout", mw.Auth(a, c.Users.Logout), true},

		{"GET", "/folders", mw.Auth(a, c.Folders.Index), true},
		{"POST", "/folders", mw.Auth(a, c.Folders.Create), true},
		{"PATCH", "/folders/{folderID}", mw.Auth(a, c.Folders.Update), true},
		{"DELETE", "/folders/{folderID}", mw.Auth(a, c.Folders.Delete), true},

		{"GET", "/notes", mw.Auth(a, c.Notes.Index), true},
		{"POST", "/notes", mw.Auth(a, c.Notes.Create), true},
		{"GET", "/notes/{noteID}", mw.Auth(a, c.Notes.Show), true},
		{"PATCH", "/notes/{noteID}", mw.Auth(a, c.Notes.Update), true},
		{"DELETE", "/notes/{noteID}", mw.Auth(a, c.Notes.Delete), true},
		{"PATCH", "/notes/{noteID}/public", mw.Auth(a, c.Notes.SetPublic), true},
		{"GET", "/public/notes/{noteID}", c.Notes.ShowPublic, true},

		{"GET", "/trash", mw.Auth(a, c.Trash.Index), true},
		{"POST", "/trash/restore/folder/{folderID}", mw.Auth(a, c.Trash.RestoreFolder), true},
		{"POST", "/trash/restore/note/{noteID}", mw.Auth(a, c.Trash.RestoreNote), true},
	}

	if !a.DisableRegistration {
		ret = append(ret, Route{"POST", "/auth/register", c.Users.Register, true})
	}

	return ret
}

func registerRoutes(router *mux.Router, wrapper mw.Middleware, app *app.App, routes []Route) {
	for _, route := range routes {
		wrappedHandler := wrapper(route.Handler, app, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	mw.RespondError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	mw.RespondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	router := mux.NewRouter().StrictSlash(true)
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.NotFoundHandler = http.HandlerFunc(notFound)
	apiRouter.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	registerRoutes(apiRouter, mw.APIMw, app, rc.APIRoutes)

	router.Handle("/health", mw.APIMw(rc.Controllers.Health.Index, app, false)).Methods("GET")

	router.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /"))
	})

	return mw.Global(router), nil
}
