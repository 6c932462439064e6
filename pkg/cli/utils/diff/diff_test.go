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

package diff

import (
	"fmt"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
)

func TestDo(t *testing.T) {
	testCases := []struct {
		s1       string
		s2       string
		expected []Line
	}{
		{
			s1:       "a\nb\n",
			s2:       "a\nb\n",
			expected: []Line{{Equal, "a"}, {Equal, "b"}},
		},
		{
			s1:       "a\nb\n",
			s2:       "a\nc\n",
			expected: []Line{{Equal, "a"}, {Delete, "b"}, {Insert, "c"}},
		},
		{
			s1:       "",
			s2:       "new\n",
			expected: []Line{{Insert, "new"}},
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			got := Do(tc.s1, tc.s2)

			assert.DeepEqual(t, got, tc.expected, "diff mismatch")
			assert.Equal(t, HasChanges(got), tc.s1 != tc.s2, "HasChanges mismatch")
		})
	}
}
