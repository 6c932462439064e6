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
	"net/http/httptest"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/app"
)

// NewServer starts an httptest server for the app. The caller closes it.
func NewServer(a *app.App) (*httptest.Server, error) {
	h, err := NewHandler(a)
	if err != nil {
		return nil, err
	}

	return httptest.NewServer(h), nil
}

// MustNewServer starts a server for the app that is closed when the test
// finishes
func MustNewServer(t *testing.T, a *app.App) *httptest.Server {
	t.Helper()

	server, err := NewServer(a)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(server.Close)

	return server
}
