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

// Package consts provides definitions of constants
package consts

import (
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/dirs"
)

var (
	// GodnotesDirName is the name of the directory containing godnotes files
	GodnotesDirName = dirs.AppName
	// GodnotesDBFileName is a filename for the godnotes SQLite database
	GodnotesDBFileName = "godnotes.db"
	// TmpContentFileBase is the base for the filename for a temporary content
	TmpContentFileBase = "GODNOTES_TMPCONTENT"
	// TmpContentFileExt is the extension for the temporary content file
	TmpContentFileExt = "md"
	// ConfigFilename is the name of the config file
	ConfigFilename = "godnotesrc"
	// EnvFilename is the name of the optional dotenv file in the config directory
	EnvFilename = ".env"

	// SystemSessionKey is the session key
	SystemSessionKey = "session_token"
	// SystemSessionUser is the user owning the session
	SystemSessionUser = "session_user"
)

const (
	// ContentDebounce is the quiet period after the last edit of a note
	// before its content is saved
	ContentDebounce = time.Second
	// DefaultSyncInterval is the period of the background sync
	DefaultSyncInterval = 5 * time.Minute
	// DefaultAPIEndpoint is the default Persistence Service endpoint
	DefaultAPIEndpoint = "http://localhost:3001/api"
	// SearchResultLimit caps the server matches returned by a global search
	SearchResultLimit = 10
)
