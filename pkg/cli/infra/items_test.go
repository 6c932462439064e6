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
	"fmt"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/pkg/errors"
)

func TestFindItem(t *testing.T) {
	list := []items.Item{
		{ID: "f1", Name: "work", Type: items.TypeFolder},
		{ID: "n1", Name: "todo", Type: items.TypeFile, ParentID: "f1"},
		{ID: "n2", Name: "todo", Type: items.TypeFile},
	}

	testCases := []struct {
		ref         string
		expectedID  string
		expectedErr error
	}{
		{ref: "n1", expectedID: "n1"},
		{ref: "work/todo", expectedID: "n1"},
		{ref: "/todo", expectedID: "n2"},
		{ref: "work/missing", expectedErr: ErrItemNotFound},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			it, err := FindItem(list, tc.ref)

			assert.Equal(t, errors.Cause(err), tc.expectedErr, "error mismatch")
			assert.Equal(t, it.ID, tc.expectedID, "id mismatch")
		})
	}
}

func TestFindFolder(t *testing.T) {
	list := []items.Item{
		{ID: "f1", Name: "work", Type: items.TypeFolder},
		{ID: "n1", Name: "todo", Type: items.TypeFile, ParentID: "f1"},
	}

	id, err := FindFolder(list, "")
	assert.Equal(t, err, nil, "top level error")
	assert.Equal(t, id, "", "top level id")

	id, err = FindFolder(list, "/")
	assert.Equal(t, err, nil, "separator error")
	assert.Equal(t, id, "", "separator id")

	id, err = FindFolder(list, "work")
	assert.Equal(t, err, nil, "folder error")
	assert.Equal(t, id, "f1", "folder id")

	_, err = FindFolder(list, "work/todo")
	assert.NotEqual(t, err, nil, "a file is not a folder")
}
