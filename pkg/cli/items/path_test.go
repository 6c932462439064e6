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

package items

import (
	"fmt"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/pkg/errors"
)

func TestPath(t *testing.T) {
	list := []Item{
		{ID: "f1", Name: "work", Type: TypeFolder},
		{ID: "f2", Name: "ideas", Type: TypeFolder, ParentID: "f1"},
		{ID: "n1", Name: "plan", Type: TypeFile, ParentID: "f2"},
		{ID: "n2", Name: "orphan", Type: TypeFile, ParentID: "gone"},
	}

	testCases := []struct {
		id       string
		expected string
	}{
		{id: "f1", expected: "work"},
		{id: "n1", expected: "work/ideas/plan"},
		{id: "n2", expected: "orphan"},
		{id: "missing", expected: ""},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			assert.Equal(t, Path(list, tc.id), tc.expected, "path mismatch")
		})
	}
}

func TestResolve(t *testing.T) {
	list := []Item{
		{ID: "f1", Name: "work", Type: TypeFolder},
		{ID: "n1", Name: "plan", Type: TypeFile, ParentID: "f1"},
		{ID: "n2", Name: "dup", Type: TypeFile},
		{ID: "n3", Name: "dup", Type: TypeFile},
	}

	testCases := []struct {
		ref      string
		expected string
	}{
		{ref: "n1", expected: "n1"},
		{ref: "work/plan", expected: "n1"},
		{ref: "/work/plan/", expected: "n1"},
		{ref: "work", expected: "f1"},
		{ref: "plan", expected: ""},
		{ref: "", expected: ""},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			got, err := Resolve(list, tc.ref)
			if err != nil {
				t.Fatal(err)
			}

			var id string
			if got != nil {
				id = got.ID
			}
			assert.Equal(t, id, tc.expected, "id mismatch")
		})
	}

	t.Run("ambiguous", func(t *testing.T) {
		_, err := Resolve(list, "dup")
		assert.Equal(t, errors.Cause(err), ErrAmbiguousPath, "error mismatch")
	})
}
