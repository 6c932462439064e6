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

// Package helpers provides record identifiers shared by the server packages
package helpers

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// idLength is the length of the canonical text form of an identifier
const idLength = 36

// NewID generates the identifier of a new record
func NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Wrap(err, "generating id")
	}

	return id.String(), nil
}

// IsID reports whether s is an identifier in canonical form. Ids from the
// path of a request are checked with it before reaching the database.
func IsID(s string) bool {
	if len(s) != idLength {
		return false
	}

	_, err := uuid.Parse(s)
	return err == nil
}
