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

package app

type appError string

func (e appError) Error() string {
	return string(e)
}

const (
	// ErrNotFound is an error for a record that does not exist or is owned
	// by another user
	ErrNotFound appError = "not found"
	// ErrLoginInvalid is an error for a wrong email and password combination
	ErrLoginInvalid appError = "Wrong email and password combination"
	// ErrInvalidToken is an error for a bearer token that is malformed,
	// expired or revoked
	ErrInvalidToken appError = "invalid or expired session"
	// ErrDuplicateEmail is an error for an email that is already taken
	ErrDuplicateEmail appError = "duplicate email"
	// ErrEmailRequired is an error for a missing email
	ErrEmailRequired appError = "Please enter an email"
	// ErrEmailInvalid is an error for a malformed email
	ErrEmailInvalid appError = "Please enter a valid email"
	// ErrPasswordTooShort is an error for a short password
	ErrPasswordTooShort appError = "password should be longer than 8 characters"
	// ErrRegistrationDisabled is an error for a sign up on a closed server
	ErrRegistrationDisabled appError = "registration is disabled"

	// ErrNameRequired is an error for a folder or note without a name
	ErrNameRequired appError = "name is required"
	// ErrInvalidParent is an error for a parent folder that is missing,
	// owned by another user or in the trash
	ErrInvalidParent appError = "parent folder not found"
	// ErrFolderCycle is an error for moving a folder under itself
	ErrFolderCycle appError = "a folder cannot be moved into itself or its descendants"
)

// IsValidation reports whether err was caused by invalid input
func IsValidation(err error) bool {
	switch err {
	case ErrEmailRequired, ErrEmailInvalid, ErrPasswordTooShort, ErrNameRequired, ErrInvalidParent, ErrFolderCycle:
		return true
	}

	return false
}
