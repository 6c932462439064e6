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
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Note is a note in the response
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

// CreateNotePayload is a payload for creating a note
type CreateNotePayload struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	FolderID   *string  `json:"folderId"`
	Tags       []string `json:"tags"`
	IsFavorite bool     `json:"isFavorite"`
	IsPinned   bool     `json:"isPinned"`
}

// ListNotes gets the notes of the user
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var resp []Note
	if err := c.doAuthorizedReq(ctx, http.MethodGet, NotesPath, nil, &resp); err != nil {
		return nil, errors.Wrap(err, "getting notes")
	}

	return resp, nil
}

// GetNote gets a single note with its content
func (c *Client) GetNote(ctx context.Context, id string) (Note, error) {
	var resp Note
	if err := c.doAuthorizedReq(ctx, http.MethodGet, NotePath(id), nil, &resp); err != nil {
		return Note{}, errors.Wrap(err, "getting a note")
	}

	return resp, nil
}

// CreateNote creates a note in the server
func (c *Client) CreateNote(ctx context.Context, p CreateNotePayload) (Note, error) {
	var resp Note
	if err := c.doAuthorizedReq(ctx, http.MethodPost, NotesPath, p, &resp); err != nil {
		return Note{}, errors.Wrap(err, "posting a note to the server")
	}

	return resp, nil
}

// UpdateNote updates a note in the server
func (c *Client) UpdateNote(ctx context.Context, id string, p Patch) (Note, error) {
	var resp Note
	if err := c.doAuthorizedReq(ctx, http.MethodPatch, NotePath(id), p, &resp); err != nil {
		return Note{}, errors.Wrap(err, "patching a note")
	}

	return resp, nil
}

// DeleteNote moves a note to the trash, or removes it for good if it is
// already there
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	if err := c.doAuthorizedReq(ctx, http.MethodDelete, NotePath(id), nil, nil); err != nil {
		return errors.Wrap(err, "deleting a note")
	}

	return nil
}

// PurgeNote removes a note for good
func (c *Client) PurgeNote(ctx context.Context, id string) error {
	if err := c.doAuthorizedReq(ctx, http.MethodDelete, PurgeNotePath(id), nil, nil); err != nil {
		return errors.Wrap(err, "purging a note")
	}

	return nil
}

type setPublicPayload struct {
	IsPublic bool `json:"isPublic"`
}

// SetNotePublic turns the public sharing link of a note on or off
func (c *Client) SetNotePublic(ctx context.Context, id string, public bool) (Note, error) {
	var resp Note
	if err := c.doAuthorizedReq(ctx, http.MethodPatch, NotePublicPath(id), setPublicPayload{IsPublic: public}, &resp); err != nil {
		return Note{}, errors.Wrap(err, "toggling the public link")
	}

	return resp, nil
}
