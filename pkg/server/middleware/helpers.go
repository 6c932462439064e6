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
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/app"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/config"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/log"
	"github.com/pkg/errors"
)

// Middleware wraps a handler
type Middleware func(h http.HandlerFunc, app *app.App, rateLimit bool) http.Handler

// APIMw is the middleware applied to every API route
func APIMw(h http.HandlerFunc, app *app.App, rateLimit bool) http.Handler {
	return ApplyLimit(h.ServeHTTP, rateLimit && app.AppEnv != config.AppEnvTest)
}

// getSessionKeyFromAuth reads the bearer token from the Authorization header
func getSessionKeyFromAuth(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", nil
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}

	return strings.TrimSpace(parts[1]), nil
}

// GetCredential extracts the bearer token from the request
func GetCredential(r *http.Request) (string, error) {
	ret, err := getSessionKeyFromAuth(r)
	if err != nil {
		return "", errors.Wrap(err, "getting session key from Authorization header")
	}

	return ret, nil
}

// RespondJSON encodes v as the JSON body of a response with the given status
func RespondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

type errorPayload struct {
	Error string `json:"error"`
}

// RespondError responds with a JSON error message
func RespondError(w http.ResponseWriter, statusCode int, msg string) {
	RespondJSON(w, statusCode, errorPayload{Error: msg})
}

// RespondUnauthorized responds with unauthorized
func RespondUnauthorized(w http.ResponseWriter) {
	w.Header().Add("WWW-Authenticate", `Bearer realm="godnotes"`)
	RespondError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
}

// DoError logs the error and responds with the given status code with a generic status text
func DoError(w http.ResponseWriter, msg string, err error, statusCode int) {
	var message string
	if err == nil {
		message = msg
	} else {
		message = errors.Wrap(err, msg).Error()
	}

	log.WithFields(log.Fields{
		"statusCode": statusCode,
	}).Error(message)

	RespondError(w, statusCode, http.StatusText(statusCode))
}

// NotSupported is the handler for the route that is no longer supported
func NotSupported(w http.ResponseWriter, r *http.Request) {
	RespondError(w, http.StatusGone, "API version is not supported. Please upgrade your client.")
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequest logs the request
func logRequest(r *http.Request, statusCode int, start time.Time) {
	log.WithFields(log.Fields{
		"remoteAddr": lookupIP(r),
		"uri":        r.RequestURI,
		"method":     r.Method,
		"statusCode": statusCode,
		"duration":   time.Since(start).String(),
	}).Info("incoming request")
}

// Global is the middleware for all routes
func Global(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		h.ServeHTTP(rec, r)

		logRequest(r, rec.statusCode, start)
	})
}
