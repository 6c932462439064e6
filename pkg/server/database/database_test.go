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

package database

import (
	"fmt"
	"testing"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/assert"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/log"
	"github.com/pkg/errors"
	"gorm.io/gorm/logger"
)

func TestGetDBLogLevel(t *testing.T) {
	testCases := []struct {
		name     string
		level    string
		expected logger.LogLevel
	}{
		{
			name:     "debug level maps to Info",
			level:    log.LevelDebug,
			expected: logger.Info,
		},
		{
			name:     "info level maps to Silent",
			level:    log.LevelInfo,
			expected: logger.Silent,
		},
		{
			name:     "warn level maps to Warn",
			level:    log.LevelWarn,
			expected: logger.Warn,
		},
		{
			name:     "error level maps to Error",
			level:    log.LevelError,
			expected: logger.Error,
		},
		{
			name:     "unknown level maps to Silent",
			level:    "unknown",
			expected: logger.Silent,
		},
		{
			name:     "empty string maps to Silent",
			level:    "",
			expected: logger.Silent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := getDBLogLevel(tc.level)
			assert.Equal(t, result, tc.expected, "log level mismatch")
		})
	}
}

func TestSetup(t *testing.T) {
	db, err := Setup("file:setup-test?mode=memory&cache=shared", log.LevelError)
	if err != nil {
		t.Fatal(errors.Wrap(err, "setting up"))
	}

	ids, err := AppliedMigrations(db)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading applied migrations"))
	}
	assert.Equal(t, len(ids), 3, "all migrations should be applied")

	// running again is a no-op
	if err := Migrate(db); err != nil {
		t.Fatal(errors.Wrap(err, "migrating again"))
	}
}

func TestIsPostgresDSN(t *testing.T) {
	testCases := []struct {
		dsn      string
		expected bool
	}{
		{dsn: "postgres://user@localhost/godnotes", expected: true},
		{dsn: "postgresql://localhost:5432/godnotes?sslmode=disable", expected: true},
		{dsn: "/var/lib/godnotes/server.db", expected: false},
		{dsn: ":memory:", expected: false},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			assert.Equal(t, IsPostgresDSN(tc.dsn), tc.expected, "result mismatch")
		})
	}
}

func TestTags(t *testing.T) {
	db, err := Setup("file:tags-test?mode=memory&cache=shared", log.LevelError)
	if err != nil {
		t.Fatal(errors.Wrap(err, "setting up"))
	}

	testCases := []struct {
		tags     Tags
		expected []string
	}{
		{tags: Tags{"go", "work"}, expected: []string{"go", "work"}},
		{tags: Tags{"with space", "a,b"}, expected: []string{"with space", "a,b"}},
		{tags: Tags{}, expected: []string{}},
		{tags: nil, expected: []string{}},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", idx), func(t *testing.T) {
			n := Note{UserID: "u1", Title: "t", Tags: tc.tags}
			if err := db.Create(&n).Error; err != nil {
				t.Fatal(errors.Wrap(err, "creating note"))
			}

			var got Note
			if err := db.Where("id = ?", n.ID).First(&got).Error; err != nil {
				t.Fatal(errors.Wrap(err, "finding note"))
			}

			assert.DeepEqual(t, got.Tags.Slice(), tc.expected, "tags mismatch")
			assert.NotEqual(t, got.ID, "", "id should be assigned")
		})
	}
}
