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

package client

import (
	"context"
	"net/http"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/syncerr"
	"github.com/pkg/errors"
)

// User is the signed in user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the response from the login and register endpoints
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CredentialsPayload is a payload for logging in and registering
type CredentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login requests a session token
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var resp Session
	err := c.doReq(ctx, http.MethodPost, "/auth/login", CredentialsPayload{Email: email, Password: password}, &resp)
	if err != nil {
		if syncerr.Is(err, syncerr.Unauthorized) {
			return Session{}, ErrInvalidLogin
		}

		return Session{}, errors.Wrap(err, "making http request")
	}

	return resp, nil
}

// Register creates an account and returns its first session
func (c *Client) Register(ctx context.Context, email, password string) (Session, error) {
	var resp Session
	err := c.doReq(ctx, http.MethodPost, "/auth/register", CredentialsPayload{Email: email, Password: password}, &resp)
	if err != nil {
		return Session{}, errors.Wrap(err, "making http request")
	}

	return resp, nil
}

// Me returns the user owning the current session
func (c *Client) Me(ctx context.Context) (User, error) {
	var resp User
	if err := c.doAuthorizedReq(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return User{}, errors.Wrap(err, "getting the current user")
	}

	return resp, nil
}

// Logout ends the session on the server side
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doAuthorizedReq(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return errors.Wrap(err, "making http request")
	}

	return nil
}
