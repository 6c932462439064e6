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

package client

import (
	"fmt"
	"net/url"
)

// FoldersPath is the collection path of folders
const FoldersPath = "/folders"

// NotesPath is the collection path of notes
const NotesPath = "/notes"

// TrashPath is the path of the trash listing
const TrashPath = "/trash"

// FolderPath returns the path of the folder with the given id
func FolderPath(id string) string {
	return fmt.Sprintf("%s/%s", FoldersPath, url.PathEscape(id))
}

// NotePath returns the path of the note with the given id
func NotePath(id string) string {
	return fmt.Sprintf("%s/%s", NotesPath, url.PathEscape(id))
}

// NotePublicPath returns the path toggling the public link of a note
func NotePublicPath(id string) string {
	return fmt.Sprintf("%s/public", NotePath(id))
}

// RestoreFolderPath returns the path restoring a folder from the trash
func RestoreFolderPath(id string) string {
	return fmt.Sprintf("%s/restore/folder/%s", TrashPath, url.PathEscape(id))
}

// RestoreNotePath returns the path restoring a note from the trash
func RestoreNotePath(id string) string {
	return fmt.Sprintf("%s/restore/note/%s", TrashPath, url.PathEscape(id))
}

// PurgeFolderPath returns the path removing a folder for good
func PurgeFolderPath(id string) string {
	return FolderPath(id) + "?permanent=true"
}

// PurgeNotePath returns the path removing a note for good
func PurgeNotePath(id string) string {
	return NotePath(id) + "?permanent=true"
}
