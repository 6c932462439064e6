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
	"strings"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// deletedTagPrefix marks a record as trashed in a tags update sent by a
// client that was offline when it deleted the record
const deletedTagPrefix = "deleted:"

// splitDeletedTags returns the tags without the trash marker and whether
// the marker was present
func splitDeletedTags(tags []string) ([]string, bool) {
	ret := []string{}
	var trashed bool

	for _, t := range tags {
		if strings.HasPrefix(t, deletedTagPrefix) {
			trashed = true
			continue
		}

		ret = append(ret, t)
	}

	return ret, trashed
}

// applyTrashTags sets the tags on a record and moves it in or out of the
// trash according to the marker
func applyTrashTags(tags []string, deletedAt *gorm.DeletedAt, now time.Time) database.Tags {
	clean, trashed := splitDeletedTags(tags)

	if trashed && !deletedAt.Valid {
		*deletedAt = gorm.DeletedAt{Time: now, Valid: true}
	} else if !trashed && deletedAt.Valid {
		*deletedAt = gorm.DeletedAt{}
	}

	return database.Tags(clean)
}

func cleanTags(tags []string) database.Tags {
	clean, _ := splitDeletedTags(tags)

	return database.Tags(clean)
}

func normalizeName(name string) (string, error) {
	ret := strings.TrimSpace(name)
	if ret == "" {
		return "", ErrNameRequired
	}

	return ret, nil
}

// loadUserFolders returns every folder of the user including the trashed ones
func loadUserFolders(tx *gorm.DB, userID string) ([]database.Folder, error) {
	var ret []database.Folder
	if err := tx.Unscoped().Where("user_id = ?", userID).Find(&ret).Error; err != nil {
		return nil, errors.Wrap(err, "finding folders")
	}

	return ret, nil
}

// subtreeFolderIDs returns the id of the root and of every folder nested
// under it, parents before children
func subtreeFolderIDs(folders []database.Folder, rootID string) []string {
	children := map[string][]string{}
	for _, f := range folders {
		if f.ParentID != nil {
			children[*f.ParentID] = append(children[*f.ParentID], f.ID)
		}
	}

	ret := []string{rootID}
	seen := map[string]bool{rootID: true}
	for i := 0; i < len(ret); i++ {
		for _, c := range children[ret[i]] {
			if seen[c] {
				continue
			}
			seen[c] = true
			ret = append(ret, c)
		}
	}

	return ret
}

// isDescendant reports whether candidate is folderID or nested under it
func isDescendant(folders []database.Folder, folderID, candidate string) bool {
	for _, id := range subtreeFolderIDs(folders, folderID) {
		if id == candidate {
			return true
		}
	}

	return false
}

// checkParent verifies that the folder exists and belongs to the user. A
// trashed parent is accepted only when allowTrashed is set.
func checkParent(tx *gorm.DB, userID string, parentID *string, allowTrashed bool) error {
	if parentID == nil {
		return nil
	}

	var parent database.Folder
	err := tx.Unscoped().Where("id = ? AND user_id = ?", *parentID, userID).First(&parent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidParent
	} else if err != nil {
		return errors.Wrap(err, "finding parent folder")
	}

	if parent.DeletedAt.Valid && !allowTrashed {
		return ErrInvalidParent
	}

	return nil
}

// liveParentOrNil returns the parent id if it refers to a live folder of the
// user, and nil otherwise
func liveParentOrNil(tx *gorm.DB, userID string, parentID *string) (*string, error) {
	if parentID == nil {
		return nil, nil
	}

	err := checkParent(tx, userID, parentID, false)
	if err == ErrInvalidParent {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return parentID, nil
}
