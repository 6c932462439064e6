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
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/helpers"
	"gorm.io/gorm"
)

// Model is the base model definition. Records are identified by a uuid and
// soft deleted through DeletedAt.
type Model struct {
	ID        string         `gorm:"primaryKey;type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// BeforeCreate assigns an id to records created without one
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID != "" {
		return nil
	}

	id, err := helpers.NewID()
	if err != nil {
		return err
	}
	m.ID = id

	return nil
}

// User is a model for a user
type User struct {
	Model
	Email       string `gorm:"uniqueIndex;type:text"`
	Password    string
	LastLoginAt *time.Time
}

// Session is an issued bearer token. Deleting the row revokes the token.
type Session struct {
	Model
	UserID     string `gorm:"index;type:text"`
	JTI        string `gorm:"uniqueIndex;type:text"`
	LastUsedAt time.Time
	ExpiresAt  time.Time
}

// Folder is a model for a folder
type Folder struct {
	Model
	UserID   string  `gorm:"index;type:text"`
	Name     string
	ParentID *string `gorm:"index;type:text"`
	Tags     Tags
}

// Note is a model for a note
type Note struct {
	Model
	UserID     string  `gorm:"index;type:text"`
	FolderID   *string `gorm:"index;type:text"`
	Title      string
	Content    string
	Tags       Tags
	IsFavorite bool `gorm:"default:false"`
	IsPinned   bool `gorm:"default:false"`
	IsPublic   bool `gorm:"default:false"`
}
