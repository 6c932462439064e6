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

package presenters

import (
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/app"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
)

// Folder is a result of PresentFolder
type Folder struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ParentID  *string    `json:"parentId"`
	Tags      []string   `json:"tags"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// PresentFolder presents a folder
func PresentFolder(folder database.Folder) Folder {
	return Folder{
		ID:        folder.ID,
		Name:      folder.Name,
		ParentID:  folder.ParentID,
		Tags:      folder.Tags.Slice(),
		CreatedAt: FormatTS(folder.CreatedAt),
		UpdatedAt: FormatTS(folder.UpdatedAt),
		DeletedAt: formatDeletedAt(folder.DeletedAt),
	}
}

// PresentFolders presents folders
func PresentFolders(folders []database.Folder) []Folder {
	ret := []Folder{}

	for _, f := range folders {
		ret = append(ret, PresentFolder(f))
	}

	return ret
}

// Trash is a result of PresentTrash
type Trash struct {
	Folders []Folder `json:"folders"`
	Notes   []Note   `json:"notes"`
}

// PresentTrash presents the content of the trash
func PresentTrash(t app.Trash) Trash {
	return Trash{
		Folders: PresentFolders(t.Folders),
		Notes:   PresentNotes(t.Notes),
	}
}

// User is a result of PresentUser
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// PresentUser presents a user
func PresentUser(u database.User) User {
	return User{
		ID:    u.ID,
		Email: u.Email,
	}
}

// Session is the response of a sign in
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
