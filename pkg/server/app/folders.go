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
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateFolderParams is the parameters for creating a folder
type CreateFolderParams struct {
	Name     string
	ParentID *string
	Tags     []string
}

// UpdateFolderParams is a partial update of a folder. Nil fields are left
// unchanged. ParentID is applied only when SetParent is true, and a nil
// ParentID then moves the folder to the top level.
type UpdateFolderParams struct {
	Name      *string
	SetParent bool
	ParentID  *string
	Tags      *[]string
}

// CreateFolder creates a folder for the user
func (a *App) CreateFolder(user database.User, p CreateFolderParams) (database.Folder, error) {
	name, err := normalizeName(p.Name)
	if err != nil {
		return database.Folder{}, err
	}

	if err := checkParent(a.DB, user.ID, p.ParentID, false); err != nil {
		return database.Folder{}, err
	}

	folder := database.Folder{
		UserID:   user.ID,
		Name:     name,
		ParentID: p.ParentID,
		Tags:     cleanTags(p.Tags),
	}
	if err := a.DB.Create(&folder).Error; err != nil {
		return database.Folder{}, errors.Wrap(err, "inserting folder")
	}

	return folder, nil
}

// GetUserFolder finds a folder of the user. Trashed folders are included
// only when unscoped is set.
func (a *App) GetUserFolder(tx *gorm.DB, userID, id string, unscoped bool) (*database.Folder, error) {
	conn := tx
	if unscoped {
		conn = conn.Unscoped()
	}

	var ret database.Folder
	err := conn.Where("id = ? AND user_id = ?", id, userID).First(&ret).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "finding folder")
	}

	return &ret, nil
}

// ListFolders returns the live folders of the user
func (a *App) ListFolders(userID string) ([]database.Folder, error) {
	ret := []database.Folder{}
	if err := a.DB.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&ret).Error; err != nil {
		return nil, errors.Wrap(err, "finding folders")
	}

	return ret, nil
}

// UpdateFolder applies a partial update to a folder of the user. A tags
// update carrying the trash marker moves the folder to the trash, and one
// without the marker takes a trashed folder out of it.
func (a *App) UpdateFolder(user database.User, id string, p UpdateFolderParams) (database.Folder, error) {
	var ret database.Folder

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		folder, err := a.GetUserFolder(tx, user.ID, id, true)
		if err != nil {
			return err
		}

		if p.Name != nil {
			name, err := normalizeName(*p.Name)
			if err != nil {
				return err
			}
			folder.Name = name
		}
		if p.Tags != nil {
			folder.Tags = applyTrashTags(*p.Tags, &folder.DeletedAt, a.Clock.Now())
		}
		if p.SetParent {
			if p.ParentID != nil {
				folders, err := loadUserFolders(tx, user.ID)
				if err != nil {
					return err
				}
				if isDescendant(folders, folder.ID, *p.ParentID) {
					return ErrFolderCycle
				}
			}

			if err := checkParent(tx, user.ID, p.ParentID, folder.DeletedAt.Valid); err != nil {
				return err
			}
			folder.ParentID = p.ParentID
		}

		if err := tx.Unscoped().Save(folder).Error; err != nil {
			return errors.Wrap(err, "saving folder")
		}

		ret = *folder
		return nil
	})

	return ret, err
}

// DeleteFolder moves a live folder and everything nested under it to the
// trash. A folder already in the trash, or any folder when permanent is set,
// is removed for good together with its contents.
func (a *App) DeleteFolder(user database.User, id string, permanent bool) error {
	return a.DB.Transaction(func(tx *gorm.DB) error {
		folder, err := a.GetUserFolder(tx, user.ID, id, true)
		if err != nil {
			return err
		}

		folders, err := loadUserFolders(tx, user.ID)
		if err != nil {
			return err
		}
		ids := subtreeFolderIDs(folders, folder.ID)

		if permanent || folder.DeletedAt.Valid {
			return purgeFolders(tx, user.ID, ids)
		}

		return trashFolders(tx, user.ID, ids, a.Clock.Now())
	})
}

func purgeFolders(tx *gorm.DB, userID string, ids []string) error {
	if err := tx.Unscoped().Where("user_id = ? AND folder_id IN ?", userID, ids).Delete(&database.Note{}).Error; err != nil {
		return errors.Wrap(err, "deleting notes")
	}
	if err := tx.Unscoped().Where("user_id = ? AND id IN ?", userID, ids).Delete(&database.Folder{}).Error; err != nil {
		return errors.Wrap(err, "deleting folders")
	}

	return nil
}

func trashFolders(tx *gorm.DB, userID string, ids []string, now time.Time) error {
	if err := tx.Model(&database.Note{}).Where("user_id = ? AND folder_id IN ?", userID, ids).Update("deleted_at", now).Error; err != nil {
		return errors.Wrap(err, "trashing notes")
	}
	if err := tx.Model(&database.Folder{}).Where("user_id = ? AND id IN ?", userID, ids).Update("deleted_at", now).Error; err != nil {
		return errors.Wrap(err, "trashing folders")
	}

	return nil
}
