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
	"database/sql/driver"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Tags is a list of tags stored as a postgres text array. On sqlite the same
// array literal is kept in a text column.
type Tags []string

// Value implements driver.Valuer
func (t Tags) Value() (driver.Value, error) {
	return pq.StringArray(t).Value()
}

// Scan implements sql.Scanner
func (t *Tags) Scan(src interface{}) error {
	var a pq.StringArray
	if err := a.Scan(src); err != nil {
		return errors.Wrap(err, "scanning tags")
	}

	*t = Tags(a)
	return nil
}

// GormDBDataType picks the column type for the dialect
func (Tags) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}

	return "text"
}

// Slice returns the tags as a non nil slice
func (t Tags) Slice() []string {
	if t == nil {
		return []string{}
	}

	return []string(t)
}
