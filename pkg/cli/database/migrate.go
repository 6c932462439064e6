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
	"embed"

	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationTable is the table recording applied migrations
const MigrationTable = "schema_migrations"

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}
}

// Migrate applies the pending migrations and returns how many ran
func Migrate(db *DB) (int, error) {
	ms := migrate.MigrationSet{TableName: MigrationTable}

	n, err := ms.Exec(db.Conn, "sqlite3", migrationSource(), migrate.Up)
	if err != nil {
		return n, errors.Wrap(err, "running migrations")
	}

	return n, nil
}
