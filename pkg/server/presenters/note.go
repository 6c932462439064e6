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

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
)

// Note is a result of PresentNote
type Note struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    *string    `json:"content,omitempty"`
	FolderID   *string    `json:"folderId"`
	Tags       []string   `json:"tags"`
	IsFavorite bool       `json:"isFavorite"`
	IsPinned   bool       `json:"isPinned"`
	IsPublic   bool       `json:"isPublic"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}

// PresentNote presents note
func PresentNote(note database.Note) Note {
	content := note.Content

	return Note{
		ID:         note.ID,
		Title:      note.Title,
		Content:    &content,
		FolderID:   note.FolderID,
		Tags:       note.Tags.Slice(),
		IsFavorite: note.IsFavorite,
		IsPinned:   note.IsPinned,
		IsPublic:   note.IsPublic,
		CreatedAt:  FormatTS(note.CreatedAt),
		UpdatedAt:  FormatTS(note.UpdatedAt),
		DeletedAt:  formatDeletedAt(note.DeletedAt),
	}
}

// PresentNotes presents notes
func PresentNotes(notes []database.Note) []Note {
	ret := []Note{}

	for _, note := range notes {
		p := PresentNote(note)
		ret = append(ret, p)
	}

	return ret
}

// PublicNote is a note shown to anyone holding its public link
type PublicNote struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PresentPublicNote presents a public note without the owner's metadata
func PresentPublicNote(note database.Note) PublicNote {
	return PublicNote{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		UpdatedAt: FormatTS(note.UpdatedAt),
	}
}
