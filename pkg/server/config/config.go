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

package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/dirs"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"
	// AppEnvTest represents an app environment for tests. Rate limiting is off.
	AppEnvTest string = "TEST"
	// DefaultDBFilename is the default database filename
	DefaultDBFilename = "server.db"
	// DefaultSessionTTL is how long a session token stays valid
	DefaultSessionTTL = 30 * 24 * time.Hour
)

var (
	// DefaultDBPath is the default path to the database file
	DefaultDBPath = filepath.Join(dirs.AppDir(dirs.DataHome), DefaultDBFilename)
)

var (
	// ErrDBMissingPath is an error for an incomplete configuration missing the database path
	ErrDBMissingPath = errors.New("DB Path is empty")
	// ErrDatabaseURLInvalid is an error for a database url that is not a postgres url
	ErrDatabaseURLInvalid = errors.New("Invalid DatabaseURL")
	// ErrPortInvalid is an error for an incomplete configuration with invalid port
	ErrPortInvalid = errors.New("Invalid Port")
	// ErrJWTSecretMissing is an error for a configuration without a secret to sign session tokens
	ErrJWTSecretMissing = errors.New("JWT secret is empty")
	// ErrSessionTTLInvalid is an error for a non positive session lifetime
	ErrSessionTTLInvalid = errors.New("Invalid SessionTTL")
)

// envConfig holds the settings read from the environment
type envConfig struct {
	AppEnv              string `env:"APP_ENV"`
	Port                string `env:"PORT"`
	DBPath              string `env:"DBPath"`
	DatabaseURL         string `env:"DATABASE_URL"`
	JWTSecret           string `env:"JWT_SECRET"`
	SessionTTL          string `env:"SESSION_TTL"`
	DisableRegistration bool   `env:"DisableRegistration"`
	LogLevel            string `env:"LOG_LEVEL"`
}

// firstSet returns the first non-empty value
func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

// Config is an application configuration
type Config struct {
	AppEnv              string
	DisableRegistration bool
	Port                string
	// DBPath is the sqlite database file, used unless DatabaseURL is set
	DBPath string
	// DatabaseURL is a postgres connection url
	DatabaseURL string
	JWTSecret   string
	SessionTTL  time.Duration
	LogLevel    string
}

// Params are the configuration parameters for creating a new Config. They
// usually come from command line flags.
type Params struct {
	// EnvFile is a dotenv file loaded before the environment is read.
	// Variables already set in the environment win.
	EnvFile             string
	AppEnv              string
	Port                string
	DBPath              string
	DatabaseURL         string
	JWTSecret           string
	SessionTTL          string
	DisableRegistration bool
	LogLevel            string
}

// New constructs and returns a new validated config. Each setting is taken
// from the params, then the environment, then the default.
func New(p Params) (Config, error) {
	if p.EnvFile != "" {
		if err := godotenv.Load(p.EnvFile); err != nil {
			return Config{}, errors.Wrapf(err, "loading env file '%s'", p.EnvFile)
		}
	}

	var e envConfig
	if err := env.Parse(&e); err != nil {
		return Config{}, errors.Wrap(err, "reading environment")
	}

	ttl, err := time.ParseDuration(firstSet(p.SessionTTL, e.SessionTTL, DefaultSessionTTL.String()))
	if err != nil {
		return Config{}, errors.Wrap(ErrSessionTTLInvalid, err.Error())
	}

	c := Config{
		AppEnv:              firstSet(p.AppEnv, e.AppEnv, AppEnvProduction),
		Port:                firstSet(p.Port, e.Port, "3001"),
		DBPath:              firstSet(p.DBPath, e.DBPath, DefaultDBPath),
		DatabaseURL:         firstSet(p.DatabaseURL, e.DatabaseURL),
		JWTSecret:           firstSet(p.JWTSecret, e.JWTSecret),
		SessionTTL:          ttl,
		DisableRegistration: p.DisableRegistration || e.DisableRegistration,
		LogLevel:            firstSet(p.LogLevel, e.LogLevel, "info"),
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

// DSN returns the data source to open, the postgres url if one is set or
// else the sqlite file
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	return c.DBPath
}

func isPostgresURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

func validate(c Config) error {
	if c.Port == "" {
		return ErrPortInvalid
	}
	if c.DatabaseURL != "" && !isPostgresURL(c.DatabaseURL) {
		return errors.Wrapf(ErrDatabaseURLInvalid, "'%s'", c.DatabaseURL)
	}
	if c.DatabaseURL == "" && c.DBPath == "" {
		return ErrDBMissingPath
	}
	if c.JWTSecret == "" {
		return ErrJWTSecretMissing
	}
	if c.SessionTTL <= 0 {
		return ErrSessionTTLInvalid
	}

	return nil
}
