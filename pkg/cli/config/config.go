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

// Package config reads and writes the godnotes configuration
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/consts"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/utils"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds godnotes configuration. Values in the file are overridden by
// GODNOTES_* environment variables.
type Config struct {
	Editor       string        `yaml:"editor" env:"GODNOTES_EDITOR"`
	APIEndpoint  string        `yaml:"apiEndpoint" env:"GODNOTES_API_ENDPOINT"`
	Offline      bool          `yaml:"offline" env:"GODNOTES_OFFLINE"`
	SyncInterval time.Duration `yaml:"syncInterval" env:"GODNOTES_SYNC_INTERVAL"`
	SortOrder    string        `yaml:"sortOrder,omitempty" env:"GODNOTES_SORT_ORDER"`
	Theme        string        `yaml:"theme,omitempty" env:"GODNOTES_THEME"`
}

// Default returns the configuration written on first run
func Default(apiEndpoint, editor string) Config {
	if apiEndpoint == "" {
		apiEndpoint = consts.DefaultAPIEndpoint
	}

	return Config{
		Editor:       editor,
		APIEndpoint:  apiEndpoint,
		SyncInterval: consts.DefaultSyncInterval,
	}
}

// GetPath returns the path to the config file under the given config home
func GetPath(configHome string) string {
	return filepath.Join(configHome, consts.GodnotesDirName, consts.ConfigFilename)
}

// LoadEnvFile loads the .env file in the godnotes config directory, if any.
// Variables already set in the environment win.
func LoadEnvFile(configHome string) error {
	path := filepath.Join(configHome, consts.GodnotesDirName, consts.EnvFilename)

	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking env file")
	}
	if !ok {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}

	return nil
}

// Read reads the config file and applies environment overrides
func Read(configHome string) (Config, error) {
	var ret Config

	b, err := os.ReadFile(GetPath(configHome))
	if err != nil {
		return ret, errors.Wrap(err, "reading config file")
	}

	if err := yaml.Unmarshal(b, &ret); err != nil {
		return ret, errors.Wrap(err, "unmarshalling config")
	}

	if err := env.Parse(&ret); err != nil {
		return ret, errors.Wrap(err, "parsing environment")
	}

	if ret.SyncInterval == 0 {
		ret.SyncInterval = consts.DefaultSyncInterval
	}

	return ret, nil
}

// Write writes the config to the config file
func Write(configHome string, cf Config) error {
	b, err := yaml.Marshal(cf)
	if err != nil {
		return errors.Wrap(err, "marshalling config into YAML")
	}

	if err := utils.WriteFileAtomic(GetPath(configHome), b, 0644); err != nil {
		return errors.Wrap(err, "writing the config file")
	}

	return nil
}
