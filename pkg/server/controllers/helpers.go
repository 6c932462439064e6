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
	"encoding/json"
	"net/http"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/app"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/helpers"
	mw "github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/middleware"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// errBadRequest is the cause of errors about a malformed request payload
var errBadRequest = errors.New("malformed payload")

func errBadRequestf(format string, args ...interface{}) error {
	return errors.Wrapf(errBadRequest, format, args...)
}

// pathID returns the record id in the route variable. An id that is not in
// canonical form cannot match a record.
func pathID(r *http.Request, key string) (string, error) {
	id := mux.Vars(r)[key]
	if !helpers.IsID(id) {
		return "", errors.Wrapf(app.ErrNotFound, "id '%s'", id)
	}

	return id, nil
}

// maxPayloadSize bounds the size of a request body
const maxPayloadSize = 10 << 20

func parseRequestData(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.Wrap(errBadRequest, "empty body")
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxPayloadSize))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errBadRequest, err.Error())
	}

	return nil
}

// patch is a partial update. A key that is absent leaves the field
// unchanged and a null value clears it where that is allowed.
type patch map[string]json.RawMessage

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

func (p patch) decode(key string, v interface{}) error {
	if err := json.Unmarshal(p[key], v); err != nil {
		return errors.Wrapf(errBadRequest, "invalid %s", key)
	}

	return nil
}

// str returns the string under key, or nil if the key is absent
func (p patch) str(key string) (*string, error) {
	raw, ok := p[key]
	if !ok {
		return nil, nil
	}
	if isNull(raw) {
		return nil, errors.Wrapf(errBadRequest, "%s cannot be null", key)
	}

	var ret string
	if err := p.decode(key, &ret); err != nil {
		return nil, err
	}

	return &ret, nil
}

// ref returns whether the key is present and the nullable id under it
func (p patch) ref(key string) (bool, *string, error) {
	raw, ok := p[key]
	if !ok {
		return false, nil, nil
	}
	if isNull(raw) {
		return true, nil, nil
	}

	var ret string
	if err := p.decode(key, &ret); err != nil {
		return false, nil, err
	}
	if ret == "" {
		return true, nil, nil
	}

	return true, &ret, nil
}

func (p patch) boolean(key string) (*bool, error) {
	raw, ok := p[key]
	if !ok || isNull(raw) {
		return nil, nil
	}

	var ret bool
	if err := p.decode(key, &ret); err != nil {
		return nil, err
	}

	return &ret, nil
}

// tags returns the list under key. A null list is an empty one.
func (p patch) tags(key string) (*[]string, error) {
	raw, ok := p[key]
	if !ok {
		return nil, nil
	}

	ret := []string{}
	if !isNull(raw) {
		if err := p.decode(key, &ret); err != nil {
			return nil, err
		}
	}

	return &ret, nil
}

// handleJSONError responds with the status code matching the cause of err
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	cause := errors.Cause(err)

	switch {
	case cause == app.ErrNotFound:
		mw.RespondError(w, http.StatusNotFound, cause.Error())
	case cause == app.ErrLoginInvalid:
		mw.RespondError(w, http.StatusUnauthorized, cause.Error())
	case cause == app.ErrInvalidToken:
		mw.RespondUnauthorized(w)
	case cause == app.ErrDuplicateEmail:
		mw.RespondError(w, http.StatusConflict, cause.Error())
	case cause == app.ErrRegistrationDisabled:
		mw.RespondError(w, http.StatusForbidden, cause.Error())
	case app.IsValidation(cause):
		mw.RespondError(w, http.StatusUnprocessableEntity, cause.Error())
	case cause == errBadRequest:
		log.WithFields(log.Fields{"error": err.Error()}).Debug(msg)
		mw.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		mw.DoError(w, msg, err, http.StatusInternalServerError)
	}
}
