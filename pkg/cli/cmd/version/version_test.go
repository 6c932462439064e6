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

package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/context"
)

func TestPrintVersion(t *testing.T) {
	ctx := context.GodnotesCtx{
		Version:     "v1.2.3",
		APIEndpoint: "http://127.0.0.1:3001/api",
		Paths:       context.Paths{Config: "/home/alice/.config"},
	}

	t.Run("short", func(t *testing.T) {
		var buf bytes.Buffer
		printVersion(&buf, ctx, false)

		assert.Equal(t, buf.String(), "godnotes v1.2.3\n", "output mismatch")
	})

	t.Run("verbose", func(t *testing.T) {
		var buf bytes.Buffer
		printVersion(&buf, ctx, true)

		out := buf.String()
		assert.Equal(t, strings.HasPrefix(out, "godnotes v1.2.3\n"), true, "version line mismatch")
		assert.Equal(t, strings.Contains(out, "api endpoint: http://127.0.0.1:3001/api"), true, "endpoint mismatch")
		assert.Equal(t, strings.Contains(out, "/home/alice/.config/godnotes"), true, "config dir mismatch")
		assert.Equal(t, strings.Contains(out, "session:"), false, "session should be omitted without a store")
	})
}
