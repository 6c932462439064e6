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

// Package syncerr classifies failures of the sync engine into a small set of kinds
package syncerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the class of a failure
type Kind int

const (
	// Unknown is a failure that could not be classified
	Unknown Kind = iota
	// Unauthorized means the session is no longer valid
	Unauthorized
	// NotFound means the server has no record of the resource
	NotFound
	// NetworkFailure is a transport error or an unclassified non-2xx response
	NetworkFailure
	// ValidationFailure is a rejected precondition
	ValidationFailure
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "not found"
	case NetworkFailure:
		return "network failure"
	case ValidationFailure:
		return "validation failure"
	default:
		return "unknown"
	}
}

// Error is an error tagged with a Kind
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}

	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an error of the given kind
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Validationf returns a ValidationFailure with a formatted message
func Validationf(op, format string, v ...interface{}) error {
	return &Error{Kind: ValidationFailure, Op: op, Err: errors.Errorf(format, v...)}
}

type kinded interface {
	ErrKind() Kind
}

// KindOf returns the kind of the given error. It looks through wrapped errors
// for an *Error or for any error reporting its own kind.
func KindOf(err error) Kind {
	if err == nil {
		return Unknown
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	var k kinded
	if errors.As(err, &k) {
		return k.ErrKind()
	}

	return Unknown
}

// Is reports whether the error is of the given kind
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
