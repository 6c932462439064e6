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

// Package validate checks user input on the command line before it reaches
// the store
package validate

import (
	"strings"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/pkg/errors"
)

// ErrNameEmpty is an error for an empty item name
var ErrNameEmpty = errors.New("The name is empty")

// ErrNameMultiline is an error for an item name that has linebreaks
var ErrNameMultiline = errors.New("The name contains multiple lines")

// ErrNameHasSeparator is an error for an item name containing the path separator
var ErrNameHasSeparator = errors.New("The name cannot contain '" + items.PathSeparator + "'")

// ErrTagEmpty is an error for an empty tag
var ErrTagEmpty = errors.New("The tag is empty")

// ErrTagHasSpace is an error for a tag that has any space
var ErrTagHasSpace = errors.New("The tag cannot contain spaces")

// ErrTagReserved is an error for a tag used to mark trashed items
var ErrTagReserved = errors.New("The tag is reserved")

// ItemName validates the name of a file or a folder
func ItemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameEmpty
	}

	if strings.ContainsAny(name, "\r\n") {
		return ErrNameMultiline
	}

	if strings.Contains(name, items.PathSeparator) {
		return ErrNameHasSeparator
	}

	return nil
}

// Tag validates a single tag
func Tag(tag string) error {
	if tag == "" {
		return ErrTagEmpty
	}

	if strings.ContainsAny(tag, " \t\r\n") {
		return ErrTagHasSpace
	}

	if items.IsDeletedTag(tag) {
		return ErrTagReserved
	}

	return nil
}

// Tags validates every tag in the list
func Tags(tags []string) error {
	for _, t := range tags {
		if err := Tag(t); err != nil {
			return errors.Wrapf(err, "invalid tag '%s'", t)
		}
	}

	return nil
}
