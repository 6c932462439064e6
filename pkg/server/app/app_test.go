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

import (
	"testing"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/clock"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/config"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/testutils"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a := NewTest()
		a.DB = testutils.InitMemoryDB(t)

		assert.Equal(t, a.Validate(), nil, "error mismatch")
	})

	t.Run("every problem is reported", func(t *testing.T) {
		a := App{}

		err := a.Validate()
		assert.Equal(t, len(multierr.Errors(err)), 4, "error count mismatch")
		assert.Equal(t, errors.Is(err, ErrEmptyClock), true, "missing clock")
		assert.Equal(t, errors.Is(err, ErrEmptyDB), true, "missing db")
		assert.Equal(t, errors.Is(err, ErrEmptyJWTSecret), true, "missing secret")
		assert.Equal(t, errors.Is(err, ErrInvalidSessionTTL), true, "invalid ttl")
	})
}

func TestNew(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	cfg := config.Config{
		AppEnv:              config.AppEnvTest,
		JWTSecret:           testutils.JWTSecret,
		SessionTTL:          time.Hour,
		DisableRegistration: true,
	}

	a, err := New(db, clock.NewMock(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, string(a.JWTSecret), testutils.JWTSecret, "secret mismatch")
	assert.Equal(t, a.SessionTTL, time.Hour, "ttl mismatch")
	assert.Equal(t, a.DisableRegistration, true, "registration mismatch")

	cfg.SessionTTL = 0
	_, err = New(db, clock.NewMock(), cfg)
	assert.Equal(t, errors.Is(err, ErrInvalidSessionTTL), true, "expected an invalid ttl")
}
