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

package infra

import (
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/pkg/errors"
)

// ErrItemNotFound is returned when a reference matches no item
var ErrItemNotFound = errors.New("item not found")

// FindItem resolves a reference given on the command line, an id or a path
// of names, against the list
func FindItem(list []items.Item, ref string) (items.Item, error) {
	it, err := items.Resolve(list, ref)
	if err != nil {
		return items.Item{}, errors.Wrapf(err, "resolving '%s'", ref)
	}
	if it == nil {
		return items.Item{}, errors.Wrap(ErrItemNotFound, ref)
	}

	return *it, nil
}

// FindFolder resolves a folder reference. An empty reference or the path
// separator alone stands for the top level and yields an empty id.
func FindFolder(list []items.Item, ref string) (string, error) {
	if ref == "" || ref == items.PathSeparator {
		return "", nil
	}

	it, err := FindItem(list, ref)
	if err != nil {
		return "", err
	}
	if !it.IsFolder() {
		return "", errors.Errorf("'%s' is not a folder", ref)
	}

	return it.ID, nil
}
