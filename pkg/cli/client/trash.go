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

	"github.com/pkg/errors"
)

// Trash is the response from the trash listing
type Trash struct {
	Folders []Folder `json:"folders"`
	Notes   []Note   `json:"notes"`
}

// ListTrash gets the soft deleted folders and notes of the user
func (c *Client) ListTrash(ctx context.Context) (Trash, error) {
	var resp Trash
	if err := c.doAuthorizedReq(ctx, http.MethodGet, TrashPath, nil, &resp); err != nil {
		return Trash{}, errors.Wrap(err, "getting trash")
	}

	return resp, nil
}

// RestoreFolder restores a folder and everything under it from the trash
func (c *Client) RestoreFolder(ctx context.Context, id string) error {
	if err := c.doAuthorizedReq(ctx, http.MethodPost, RestoreFolderPath(id), nil, nil); err != nil {
		return errors.Wrap(err, "restoring a folder")
	}

	return nil
}

// RestoreNote restores a note from the trash
func (c *Client) RestoreNote(ctx context.Context, id string) error {
	if err := c.doAuthorizedReq(ctx, http.MethodPost, RestoreNotePath(id), nil, nil); err != nil {
		return errors.Wrap(err, "restoring a note")
	}

	return nil
}
