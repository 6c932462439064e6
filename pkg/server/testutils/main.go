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

// Package testutils provides utilities used in tests
package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/helpers"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// JWTSecret is the token signing secret of the test apps
const JWTSecret = "godnotes-test-secret"

// InitMemoryDB creates an in-memory SQLite database with the schema initialized
func InitMemoryDB(t *testing.T) *gorm.DB {
	// a unique name per test keeps the shared cache from leaking between tests
	uuid, err := helpers.NewID()
	if err != nil {
		t.Fatalf("failed to generate UUID for test database: %v", err)
	}

	db, err := database.Setup(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid), "error")
	if err != nil {
		t.Fatalf("failed to set up in-memory database: %v", err)
	}

	return db
}

// MustUUID generates a UUID and fails the test on error
func MustUUID(t *testing.T) string {
	uuid, err := helpers.NewID()
	if err != nil {
		t.Fatal(errors.Wrap(err, "Failed to generate UUID"))
	}
	return uuid
}

// SetupUserData creates and returns a new user with email and password for testing purposes
func SetupUserData(db *gorm.DB, email, password string) database.User {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(errors.Wrap(err, "Failed to hash password"))
	}

	user := database.User{
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := db.Create(&user).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare user"))
	}

	return user
}

// SetupSession creates a session for the user expiring at the given time
// and returns it with a bearer token signed with JWTSecret
func SetupSession(db *gorm.DB, user database.User, expiresAt time.Time) (database.Session, string) {
	jti, err := helpers.NewID()
	if err != nil {
		panic(errors.Wrap(err, "Failed to generate token id"))
	}

	session := database.Session{
		UserID:     user.ID,
		JTI:        jti,
		LastUsedAt: time.Now(),
		ExpiresAt:  expiresAt,
	}
	if err := db.Create(&session).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare session"))
	}

	claims := jwt.MapClaims{
		"uid":   user.ID,
		"email": user.Email,
		"jti":   jti,
		"sub":   user.ID,
		"iss":   "godnotes",
		"exp":   expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(JWTSecret))
	if err != nil {
		panic(errors.Wrap(err, "Failed to sign token"))
	}

	return session, token
}

// HTTPDo makes an HTTP request and returns a response
func HTTPDo(t *testing.T, req *http.Request) *http.Response {
	hc := http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	res, err := hc.Do(req)
	if err != nil {
		t.Fatal(errors.Wrap(err, "performing http request"))
	}

	return res
}

// SetReqAuthHeader sets the authorization header in the given request for the given user with a specific DB
func SetReqAuthHeader(t *testing.T, db *gorm.DB, req *http.Request, user database.User) {
	_, token := SetupSession(db, user, time.Now().Add(time.Hour*10*24))

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
}

// HTTPAuthDo makes an HTTP request with an appropriate authorization header for a user with a specific DB
func HTTPAuthDo(t *testing.T, db *gorm.DB, req *http.Request, user database.User) *http.Response {
	SetReqAuthHeader(t, db, req, user)

	return HTTPDo(t, req)
}

// MakeReq makes an HTTP request and returns a response
func MakeReq(endpoint string, method, path, data string) *http.Request {
	u := fmt.Sprintf("%s%s", endpoint, path)

	req, err := http.NewRequest(method, u, strings.NewReader(data))
	if err != nil {
		panic(errors.Wrap(err, "constructing http request"))
	}

	return req
}

// MustExec fails the test if the given database query has error
func MustExec(t *testing.T, db *gorm.DB, message string) {
	if err := db.Error; err != nil {
		t.Fatalf("%s: %s", message, err.Error())
	}
}

// MustMarshalJSON marshals the payload and fails the test on error
func MustMarshalJSON(t *testing.T, v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(errors.Wrap(err, "marshalling payload"))
	}

	return string(b)
}

// MustDecodeJSON decodes the response body into v and fails the test on error
func MustDecodeJSON(t *testing.T, res *http.Response, v interface{}) {
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatal(errors.Wrap(err, "decoding payload"))
	}
}

// StrPtr returns a pointer to s
func StrPtr(s string) *string {
	return &s
}
