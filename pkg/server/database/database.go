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
	"os"
	"path/filepath"
	"strings"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/log"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitSchema migrates database schema to reflect the latest model definition
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Session{},
		&Folder{},
		&Note{},
	); err != nil {
		return errors.Wrap(err, "auto migrating")
	}

	return nil
}

// getDBLogLevel maps the server log level to the gorm log level. SQL is only
// traced at debug level.
func getDBLogLevel(level string) logger.LogLevel {
	switch level {
	case log.LevelDebug:
		return logger.Info
	case log.LevelWarn:
		return logger.Warn
	case log.LevelError:
		return logger.Error
	default:
		return logger.Silent
	}
}

// IsPostgresDSN reports whether dsn is a postgres connection url
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func dialector(dsn string) (gorm.Dialector, error) {
	if IsPostgresDSN(dsn) {
		return postgres.Open(dsn), nil
	}

	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "creating database directory at %s", dir)
		}
	}

	return sqlite.Open(dsn), nil
}

// Open initializes the database connection. dsn is either a postgres url or
// a path to a sqlite file.
func Open(dsn, logLevel string) (*gorm.DB, error) {
	d, err := dialector(dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(getDBLogLevel(logLevel)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening database connection")
	}

	return db, nil
}

// Setup opens the database, creates the schema and applies the migrations
func Setup(dsn, logLevel string) (*gorm.DB, error) {
	db, err := Open(dsn, logLevel)
	if err != nil {
		return nil, err
	}
	if err := InitSchema(db); err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, errors.Wrap(err, "running migrations")
	}

	return db, nil
}
