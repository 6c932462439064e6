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
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database/migrations"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/log"
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

// MigrationTable is the table recording applied migrations
const MigrationTable = "schema_migrations"

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations.Files,
		Root:       ".",
	}
}

// migrateDialect returns the sql-migrate dialect matching the gorm driver
func migrateDialect(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "postgres"
	}

	return "sqlite3"
}

// Migrate applies the embedded index migrations on top of the schema
// created by InitSchema
func Migrate(db *gorm.DB) error {
	n, err := execMigrations(db, migrationSource(), migrate.Up, 0)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"applied": n,
	}).Info("Database migrated.")

	return nil
}

// Rollback undoes the last n applied migrations and returns how many were
// undone
func Rollback(db *gorm.DB, n int) (int, error) {
	if n <= 0 {
		return 0, errors.Errorf("invalid number of migrations to roll back: %d", n)
	}

	return execMigrations(db, migrationSource(), migrate.Down, n)
}

// execMigrations runs the migrations of the source in the given direction.
// A max of 0 runs all of them.
func execMigrations(db *gorm.DB, source migrate.MigrationSource, dir migrate.MigrationDirection, max int) (int, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, errors.Wrap(err, "getting the sql connection")
	}

	ms := migrate.MigrationSet{TableName: MigrationTable}
	n, err := ms.ExecMax(sqlDB, migrateDialect(db), source, dir, max)
	if err != nil {
		return n, errors.Wrap(err, "executing migrations")
	}

	return n, nil
}

// AppliedMigrations returns the ids of the applied migrations, oldest first
func AppliedMigrations(db *gorm.DB) ([]string, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "getting the sql connection")
	}

	ms := migrate.MigrationSet{TableName: MigrationTable}
	records, err := ms.GetMigrationRecords(sqlDB, migrateDialect(db))
	if err != nil {
		return nil, errors.Wrap(err, "reading migration records")
	}

	ret := make([]string, 0, len(records))
	for _, r := range records {
		ret = append(ret, r.Id)
	}

	return ret, nil
}
