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
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Folder is a folder in the response
type Folder struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ParentID  *string    `json:"parentId"`
	Tags      []string   `json:"tags"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// CreateFolderPayload is a payload for creating a folder
type CreateFolderPayload struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

// Patch is a partial update. A key mapped to nil is sent as JSON null.
type Patch map[string]interface{}

// ListFolders gets the folders of the user
func (c *Client) ListFolders(ctx context.Context) ([]Folder, error) {
	var resp []Folder
	if err := c.doAuthorizedReq(ctx, http.MethodGet, FoldersPath, nil, &resp); err != nil {
		return nil, errors.Wrap(err, "getting folders")
	}

	return resp, nil
}

// CreateFolder creates a new folder in the server
func (c *Client) CreateFolder(ctx context.Context, p CreateFolderPayload) (Folder, error) {
	var resp Folder
	if err := c.doAuthorizedReq(ctx, http.MethodPost, FoldersPath, p, &resp); err != nil {
		return Folder{}, errors.Wrap(err, "posting a folder to the server")
	}

	return resp, nil
}

// UpdateFolder updates a folder in the server
func (c *Client) UpdateFolder(ctx context.Context, id string, p Patch) (Folder, error) {
	var resp Folder
	if err := c.doAuthorizedReq(ctx, http.MethodPatch, FolderPath(id), p, &resp); err != nil {
		return Folder{}, errors.Wrap(err, "patching a folder")
	}

	return resp, nil
}

// DeleteFolder moves a folder and its contents to the trash, or removes it
// for good if it is already there
func (c *Client) DeleteFolder(ctx context.Context, id string) error {
	if err := c.doAuthorizedReq(ctx, http.MethodDelete, FolderPath(id), nil, nil); err != nil {
		return errors.Wrap(err, "deleting a folder")
	}

	return nil
}

// PurgeFolder removes a folder and its contents for good
func (c *Client) PurgeFolder(ctx context.Context, id string) error {
	if err := c.doAuthorizedReq(ctx, http.MethodDelete, PurgeFolderPath(id), nil, nil); err != nil {
		return errors.Wrap(err, "purging a folder")
	}

	return nil
}

// Record is the identity and timestamps of a resource returned by a write
type Record struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Replay sends a previously recorded request. The response, if any, is
// decoded as a Record.
func (c *Client) Replay(ctx context.Context, method, path string, payload json.RawMessage) (Record, error) {
	var resp Record
	if err := c.doAuthorizedReq(ctx, method, path, payload, &resp); err != nil {
		return Record{}, errors.Wrapf(err, "replaying %s %s", method, path)
	}

	return resp, nil
}
