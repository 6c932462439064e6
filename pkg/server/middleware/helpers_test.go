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
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/pkg/errors"
)

func mustMakeRequest(t *testing.T) *http.Request {
	r, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(errors.Wrap(err, "constructing request"))
	}

	return r
}

func TestGetCredential(t *testing.T) {
	testCases := []struct {
		authHeaderStr string
		expected      string
		expectedErr   bool
	}{
		{authHeaderStr: "", expected: "", expectedErr: false},
		{authHeaderStr: "Bearer foo", expected: "foo", expectedErr: false},
		{authHeaderStr: "bearer bar", expected: "bar", expectedErr: false},
		{authHeaderStr: "Bearer  baz ", expected: "baz", expectedErr: false},
		{authHeaderStr: "Basic Zm9vOmJhcg==", expected: "", expectedErr: true},
		{authHeaderStr: "InvalidFormat", expected: "", expectedErr: true},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			r := mustMakeRequest(t)
			if tc.authHeaderStr != "" {
				r.Header.Set("Authorization", tc.authHeaderStr)
			}

			got, err := GetCredential(r)

			assert.Equal(t, err != nil, tc.expectedErr, "error mismatch")
			assert.Equal(t, got, tc.expected, "result mismatch")
		})
	}
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusCreated, map[string]string{"id": "1"})

	assert.Equal(t, w.Code, http.StatusCreated, "status code mismatch")
	assert.Equal(t, w.Header().Get("Content-Type"), "application/json", "content type mismatch")
	assert.Equal(t, w.Body.String(), "{\"id\":\"1\"}\n", "body mismatch")
}

func TestGlobal(t *testing.T) {
	h := Global(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, w.Code, http.StatusTeapot, "status code should pass through")
}
