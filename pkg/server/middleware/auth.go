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

package middleware

import (
	"net/http"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/app"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/context"
)

// Auth is an authentication middleware. It rejects requests without a
// valid bearer token and puts the user and the session in the context.
func Auth(a *app.App, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := GetCredential(r)
		if err != nil || token == "" {
			RespondUnauthorized(w)
			return
		}

		user, session, err := a.Authorize(token)
		if err == app.ErrInvalidToken {
			RespondUnauthorized(w)
			return
		} else if err != nil {
			DoError(w, "authenticating with session", err, http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithPrincipal(r.Context(), user, session)))
	})
}
