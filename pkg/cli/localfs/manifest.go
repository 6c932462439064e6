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

package localfs

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ManifestPath is the storage path of the sync manifest
const ManifestPath = "sync-manifest.json"

// Manifest maps an item id to the time in milliseconds its body was last
// written locally or confirmed by the server
type Manifest map[string]int64

// Clone returns a copy of the manifest
func (m Manifest) Clone() Manifest {
	ret := make(Manifest, len(m))
	for k, v := range m {
		ret[k] = v
	}

	return ret
}

// LoadManifest reads the manifest. A missing or unreadable manifest yields
// an empty one.
func LoadManifest(s Storage) (Manifest, error) {
	if s == nil {
		return Manifest{}, nil
	}

	ok, err := s.Exists(ManifestPath)
	if err != nil {
		return Manifest{}, errors.Wrap(err, "checking manifest")
	}
	if !ok {
		return Manifest{}, nil
	}

	b, err := s.ReadFile(ManifestPath)
	if err != nil {
		return Manifest{}, errors.Wrap(err, "reading manifest")
	}

	m := Manifest{}
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, errors.Wrap(err, "unmarshalling manifest")
	}

	return m, nil
}

// SaveManifest writes the manifest
func SaveManifest(s Storage, m Manifest) error {
	if s == nil {
		return nil
	}

	b, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshalling manifest")
	}

	if err := s.WriteFile(ManifestPath, b); err != nil {
		return errors.Wrap(err, "writing manifest")
	}

	return nil
}
