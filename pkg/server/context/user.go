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

// Package context carries the authenticated caller of a request
package context

import (
	"context"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
)

type principalKey struct{}

// Principal is the caller a request was authorized as
type Principal struct {
	User    *database.User
	Session *database.Session
}

// WithPrincipal returns a copy of ctx carrying the user and the session the
// request was authorized with
func WithPrincipal(ctx context.Context, user *database.User, session *database.Session) context.Context {
	return context.WithValue(ctx, principalKey{}, Principal{User: user, Session: session})
}

// PrincipalFrom returns the caller stored in ctx
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// User returns the authorized user, or nil for an anonymous request
func User(ctx context.Context) *database.User {
	p, _ := PrincipalFrom(ctx)
	return p.User
}

// Session returns the session the request was authorized with, or nil
func Session(ctx context.Context) *database.Session {
	p, _ := PrincipalFrom(ctx)
	return p.Session
}
