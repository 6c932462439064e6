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

// Package database provides the local sqlite database holding the persisted
// snapshot of the item store
package database

import (
	"database/sql"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// DB contains information about the current database connection
type DB struct {
	Conn     *sql.DB
	Filepath string
}

// TX is a database transaction
type TX struct {
	tx *sql.Tx
}

// Open initializes a new connection to the sqlite database
func Open(dbPath string) (*DB, error) {
	dbConn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening db connection")
	}

	// Serialize access so that writers in the same process do not see
	// SQLITE_BUSY.
	dbConn.SetMaxOpenConns(1)

	db := &DB{
		Conn:     dbConn,
		Filepath: dbPath,
	}

	return db, nil
}

// Begin begins a transaction
func (d *DB) Begin() (*TX, error) {
	tx, err := d.Conn.Begin()
	if err != nil {
		return nil, err
	}

	return &TX{tx: tx}, nil
}

// Exec executes a sql
func (d *DB) Exec(query string, values ...interface{}) (sql.Result, error) {
	return d.Conn.Exec(query, values...)
}

// Query queries rows
func (d *DB) Query(query string, values ...interface{}) (*sql.Rows, error) {
	return d.Conn.Query(query, values...)
}

// QueryRow queries a row
func (d *DB) QueryRow(query string, values ...interface{}) *sql.Row {
	return d.Conn.QueryRow(query, values...)
}

// Close closes a db connection
func (d *DB) Close() error {
	return d.Conn.Close()
}

// Exec executes a sql in the transaction
func (t *TX) Exec(query string, values ...interface{}) (sql.Result, error) {
	return t.tx.Exec(query, values...)
}

// QueryRow queries a row in the transaction
func (t *TX) QueryRow(query string, values ...interface{}) *sql.Row {
	return t.tx.QueryRow(query, values...)
}

// Commit commits the transaction
func (t *TX) Commit() error {
	return t.tx.Commit()
}

// Rollback rolls back the transaction
func (t *TX) Rollback() error {
	return t.tx.Rollback()
}
