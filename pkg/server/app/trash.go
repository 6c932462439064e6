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

// Trash is the content of the trash of a user
type Trash struct {
	Folders []database.Folder
	Notes   []database.Note
}

// ListTrash returns the trashed folders and notes of the user
func (a *App) ListTrash(userID string) (Trash, error) {
	ret := Trash{
		Folders: []database.Folder{},
		Notes:   []database.Note{},
	}

	conn := a.DB.Unscoped().Where("user_id = ? AND deleted_at IS NOT NULL", userID).Order("deleted_at DESC, id ASC").Session(&gorm.Session{})
	if err := conn.Find(&ret.Folders).Error; err != nil {
		return Trash{}, errors.Wrap(err, "finding trashed folders")
	}
	if err := conn.Find(&ret.Notes).Error; err != nil {
		return Trash{}, errors.Wrap(err, "finding trashed notes")
	}

	return ret, nil
}

// RestoreFolder takes a folder and everything nested under it out of the
// trash. If the parent of the folder is gone or still trashed, the folder is
// restored to the top level.
func (a *App) RestoreFolder(user database.User, id string) (database.Folder, error) {
	var ret database.Folder

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		folder, err := a.GetUserFolder(tx, user.ID, id, true)
		if err != nil {
			return err
		}

		folders, err := loadUserFolders(tx, user.ID)
		if err != nil {
			return err
		}
		ids := subtreeFolderIDs(folders, folder.ID)

		parentID, err := liveParentOrNil(tx, user.ID, folder.ParentID)
		if err != nil {
			return err
		}

		if err := tx.Unscoped().Model(&database.Note{}).
			Where("user_id = ? AND folder_id IN ? AND deleted_at IS NOT NULL", user.ID, ids).
			Update("deleted_at", nil).Error; err != nil {
			return errors.Wrap(err, "restoring notes")
		}
		if err := tx.Unscoped().Model(&database.Folder{}).
			Where("user_id = ? AND id IN ? AND deleted_at IS NOT NULL", user.ID, ids).
			Update("deleted_at", nil).Error; err != nil {
			return errors.Wrap(err, "restoring folders")
		}
		if err := tx.Model(folder).Update("parent_id", parentID).Error; err != nil {
			return errors.Wrap(err, "reparenting folder")
		}

		restored, err := a.GetUserFolder(tx, user.ID, id, false)
		if err != nil {
			return err
		}

		ret = *restored
		return nil
	})

	return ret, err
}

// RestoreNote takes a note out of the trash. If its folder is gone or still
// trashed, the note is restored to the top level.
func (a *App) RestoreNote(user database.User, id string) (database.Note, error) {
	var ret database.Note

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		note, err := a.GetUserNote(tx, user.ID, id, true)
		if err != nil {
			return err
		}

		folderID, err := liveParentOrNil(tx, user.ID, note.FolderID)
		if err != nil {
			return err
		}

		if err := tx.Unscoped().Model(note).Updates(map[string]interface{}{
			"deleted_at": nil,
			"folder_id":  folderID,
		}).Error; err != nil {
			return errors.Wrap(err, "restoring note")
		}

		restored, err := a.GetUserNote(tx, user.ID, id, false)
		if err != nil {
			return err
		}

		ret = *restored
		return nil
	})

	return ret, err
}
