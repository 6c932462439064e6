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
	"fmt"
	"net/http"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/app"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/presenters"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/testutils"
)

func TestRegister(t *testing.T) {
	testCases := []struct {
		email          string
		password       string
		expectedStatus int
	}{
		{email: "alice@example.com", password: "pass1234", expectedStatus: http.StatusCreated},
		{email: "", password: "pass1234", expectedStatus: http.StatusUnprocessableEntity},
		{email: "alice@example.com", password: "short", expectedStatus: http.StatusUnprocessableEntity},
		{email: "taken@example.com", password: "pass1234", expectedStatus: http.StatusConflict},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			db := testutils.InitMemoryDB(t)
			testutils.SetupUserData(db, "taken@example.com", "pass1234")

			a := app.NewTest()
			a.DB = db
			server := MustNewServer(t, &a)
			defer server.Close()

			body := testutils.MustMarshalJSON(t, CredentialsForm{Email: tc.email, Password: tc.password})
			res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "POST", "/api/auth/register", body))

			assert.StatusCodeEquals(t, res, tc.expectedStatus, "")
			if tc.expectedStatus != http.StatusCreated {
				return
			}

			var payload presenters.Session
			testutils.MustDecodeJSON(t, res, &payload)
			assert.Equal(t, payload.User.Email, tc.email, "email mismatch")
			assert.NotEqual(t, payload.Token, "", "token should be issued")

			user, _, err := a.Authorize(payload.Token)
			if err != nil {
				t.Fatal(err)
			}
			assert.Equal(t, user.ID, payload.User.ID, "user mismatch")
		})
	}
}

func TestRegisterDisabled(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := app.NewTest()
	a.DB = db
	a.DisableRegistration = true
	server := MustNewServer(t, &a)
	defer server.Close()

	body := testutils.MustMarshalJSON(t, CredentialsForm{Email: "alice@example.com", Password: "pass1234"})
	res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "POST", "/api/auth/register", body))

	assert.StatusCodeEquals(t, res, http.StatusNotFound, "")

	var count int64
	testutils.MustExec(t, db.Model(&database.User{}).Count(&count), "counting users")
	assert.Equal(t, count, int64(0), "user count mismatch")
}

func TestLogin(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	testutils.SetupUserData(db, "alice@example.com", "pass1234")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	testCases := []struct {
		body           string
		expectedStatus int
	}{
		{body: `{"email":"alice@example.com","password":"pass1234"}`, expectedStatus: http.StatusOK},
		{body: `{"email":"alice@example.com","password":"wrong"}`, expectedStatus: http.StatusUnauthorized},
		{body: `{"email":"bob@example.com","password":"pass1234"}`, expectedStatus: http.StatusUnauthorized},
		{body: `{"email":"","password":""}`, expectedStatus: http.StatusUnauthorized},
		{body: `{"email":`, expectedStatus: http.StatusBadRequest},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			res := testutils.HTTPDo(t, testutils.MakeReq(server.URL, "POST", "/api/auth/login", tc.body))

			assert.StatusCodeEquals(t, res, tc.expectedStatus, "")
			if tc.expectedStatus == http.StatusOK {
				var payload presenters.Session
				testutils.MustDecodeJSON(t, res, &payload)
				assert.Equal(t, payload.User.Email, "alice@example.com", "email mismatch")
				assert.NotEqual(t, payload.Token, "", "token should be issued")
			}
		})
	}
}

func TestMeAndLogout(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "alice@example.com", "pass1234")

	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	token, _, err := a.CreateSession(user)
	if err != nil {
		t.Fatal(err)
	}
	do := func(method, path string) *http.Response {
		req := testutils.MakeReq(server.URL, method, path, "")
		req.Header.Set("Authorization", "Bearer "+token)
		return testutils.HTTPDo(t, req)
	}

	res := do("GET", "/api/auth/me")
	assert.StatusCodeEquals(t, res, http.StatusOK, "")
	var me presenters.User
	testutils.MustDecodeJSON(t, res, &me)
	assert.Equal(t, me.ID, user.ID, "id mismatch")
	assert.Equal(t, me.Email, "alice@example.com", "email mismatch")

	res = do("POST", "/api/auth/logout")
	assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

	res = do("GET", "/api/auth/me")
	assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "token should be revoked")
}
