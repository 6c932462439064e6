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
	"database/sql"
	"strings"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/clock"
	"github.com/pkg/errors"
)

type queryer interface {
	QueryRow(query string, values ...interface{}) *sql.Row
}

type execer interface {
	Exec(query string, values ...interface{}) (sql.Result, error)
}

// GetSystem scans the value of the given system key into dest. It returns
// sql.ErrNoRows if the key is absent.
func GetSystem(db queryer, key string, dest interface{}) error {
	if err := db.QueryRow("SELECT value FROM system WHERE key = ?", key).Scan(dest); err != nil {
		if err == sql.ErrNoRows {
			return err
		}

		return errors.Wrapf(err, "finding system configuration record '%s'", key)
	}

	return nil
}

// UpsertSystem inserts or updates a system configuration
func UpsertSystem(db execer, key, value string, updatedAt int64) error {
	_, err := db.Exec(`INSERT INTO system (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, value, updatedAt)
	if err != nil {
		return errors.Wrapf(err, "saving system config for %s", key)
	}

	return nil
}

// DeleteSystem deletes the given system configuration
func DeleteSystem(db execer, key string) error {
	if _, err := db.Exec("DELETE FROM system WHERE key = ?", key); err != nil {
		return errors.Wrapf(err, "deleting system config for %s", key)
	}

	return nil
}

// KV is a key/value store over the system table
type KV struct {
	db    *DB
	clock clock.Clock
}

// NewKV returns a key/value store backed by the database
func NewKV(db *DB, c clock.Clock) *KV {
	if c == nil {
		c = clock.New()
	}

	return &KV{db: db, clock: c}
}

// Load returns the values of the given keys that are present
func (kv *KV) Load(keys []string) (map[string]string, error) {
	ret := map[string]string{}
	if len(keys) == 0 {
		return ret, nil
	}

	placeholders := strings.TrimRight(strings.Repeat("?,", len(keys)), ",")
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	rows, err := kv.db.Query("SELECT key, value FROM system WHERE key IN ("+placeholders+")", args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying system records")
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, errors.Wrap(err, "scanning a system record")
		}

		ret[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating system records")
	}

	return ret, nil
}

// Save writes all the given values in one transaction
func (kv *KV) Save(values map[string]string) error {
	tx, err := kv.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	now := kv.clock.Now().UnixMilli()
	for k, v := range values {
		if err := UpsertSystem(tx, k, v, now); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing a transaction")
	}

	return nil
}

// Delete removes the given keys in one transaction
func (kv *KV) Delete(keys ...string) error {
	tx, err := kv.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	for _, k := range keys {
		if err := DeleteSystem(tx, k); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing a transaction")
	}

	return nil
}
