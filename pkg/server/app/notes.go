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
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateNoteParams is the parameters for creating a note
type CreateNoteParams struct {
	Title      string
	Content    string
	FolderID   *string
	Tags       []string
	IsFavorite bool
	IsPinned   bool
}

// UpdateNoteParams is a partial update of a note. Nil fields are left
// unchanged. FolderID is applied only when SetFolder is true, and a nil
// FolderID then moves the note to the top level.
type UpdateNoteParams struct {
	Title      *string
	Content    *string
	SetFolder  bool
	FolderID   *string
	Tags       *[]string
	IsFavorite *bool
	IsPinned   *bool
}

// CreateNote creates a note for the user
func (a *App) CreateNote(user database.User, p CreateNoteParams) (database.Note, error) {
	title, err := normalizeName(p.Title)
	if err != nil {
		return database.Note{}, err
	}

	if err := checkParent(a.DB, user.ID, p.FolderID, false); err != nil {
		return database.Note{}, err
	}

	note := database.Note{
		UserID:     user.ID,
		FolderID:   p.FolderID,
		Title:      title,
		Content:    p.Content,
		Tags:       cleanTags(p.Tags),
		IsFavorite: p.IsFavorite,
		IsPinned:   p.IsPinned,
	}
	if err := a.DB.Create(&note).Error; err != nil {
		return note, errors.Wrap(err, "inserting note")
	}

	return note, nil
}

// GetUserNote finds a note of the user. Trashed notes are included only
// when unscoped is set.
func (a *App) GetUserNote(tx *gorm.DB, userID, id string, unscoped bool) (*database.Note, error) {
	conn := tx
	if unscoped {
		conn = conn.Unscoped()
	}

	var ret database.Note
	err := conn.Where("id = ? AND user_id = ?", id, userID).First(&ret).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "finding note")
	}

	return &ret, nil
}

// GetPublicNote finds a live note that its owner has made public
func (a *App) GetPublicNote(id string) (*database.Note, error) {
	var ret database.Note
	err := a.DB.Where("id = ? AND is_public = ?", id, true).First(&ret).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "finding note")
	}

	return &ret, nil
}

// ListNotes returns the live notes of the user, most recently updated first
func (a *App) ListNotes(userID string) ([]database.Note, error) {
	ret := []database.Note{}
	if err := a.DB.Where("user_id = ?", userID).Order("updated_at DESC, id DESC").Find(&ret).Error; err != nil {
		return nil, errors.Wrap(err, "finding notes")
	}

	return ret, nil
}

// UpdateNote applies a partial update to a note of the user. A tags update
// carrying the trash marker moves the note to the trash, and one without
// the marker takes a trashed note out of it.
func (a *App) UpdateNote(user database.User, id string, p UpdateNoteParams) (database.Note, error) {
	var ret database.Note

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		note, err := a.GetUserNote(tx, user.ID, id, true)
		if err != nil {
			return err
		}

		if p.Title != nil {
			title, err := normalizeName(*p.Title)
			if err != nil {
				return err
			}
			note.Title = title
		}
		if p.Content != nil {
			note.Content = *p.Content
		}
		if p.IsFavorite != nil {
			note.IsFavorite = *p.IsFavorite
		}
		if p.IsPinned != nil {
			note.IsPinned = *p.IsPinned
		}
		if p.Tags != nil {
			note.Tags = applyTrashTags(*p.Tags, &note.DeletedAt, a.Clock.Now())
		}
		if p.SetFolder {
			if err := checkParent(tx, user.ID, p.FolderID, note.DeletedAt.Valid); err != nil {
				return err
			}
			note.FolderID = p.FolderID
		}

		if err := tx.Unscoped().Save(note).Error; err != nil {
			return errors.Wrap(err, "saving note")
		}

		ret = *note
		return nil
	})

	return ret, err
}

// SetNotePublic turns the public flag of a live note on or off
func (a *App) SetNotePublic(user database.User, id string, public bool) (database.Note, error) {
	note, err := a.GetUserNote(a.DB, user.ID, id, false)
	if err != nil {
		return database.Note{}, err
	}

	if err := a.DB.Model(note).Update("is_public", public).Error; err != nil {
		return database.Note{}, errors.Wrap(err, "updating public flag")
	}
	note.IsPublic = public

	return *note, nil
}

// DeleteNote moves a live note to the trash. A note already in the trash,
// or any note when permanent is set, is removed for good.
func (a *App) DeleteNote(user database.User, id string, permanent bool) error {
	return a.DB.Transaction(func(tx *gorm.DB) error {
		note, err := a.GetUserNote(tx, user.ID, id, true)
		if err != nil {
			return err
		}

		if permanent || note.DeletedAt.Valid {
			if err := tx.Unscoped().Delete(note).Error; err != nil {
				return errors.Wrap(err, "deleting note")
			}

			return nil
		}

		if err := tx.Model(note).Update("deleted_at", a.Clock.Now()).Error; err != nil {
			return errors.Wrap(err, "trashing note")
		}

		return nil
	})
}
