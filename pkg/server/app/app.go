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

// Package app implements the operations of the server on top of the database
package app

import (
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/clock"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/config"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

var (
	// ErrEmptyDB is an error for missing database connection in the app configuration
	ErrEmptyDB = errors.New("No database connection was provided")
	// ErrEmptyClock is an error for missing clock in the app configuration
	ErrEmptyClock = errors.New("No clock was provided")
	// ErrEmptyJWTSecret is an error for a missing token signing secret
	ErrEmptyJWTSecret = errors.New("No JWT secret was provided")
	// ErrInvalidSessionTTL is an error for a non positive session lifetime
	ErrInvalidSessionTTL = errors.New("Session TTL must be positive")
)

// App holds what the operations of the server share
type App struct {
	DB                  *gorm.DB
	Clock               clock.Clock
	JWTSecret           []byte
	SessionTTL          time.Duration
	DisableRegistration bool
	AppEnv              string
}

// New returns a validated app serving the configuration with the database
func New(db *gorm.DB, c clock.Clock, cfg config.Config) (App, error) {
	a := App{
		DB:                  db,
		Clock:               c,
		JWTSecret:           []byte(cfg.JWTSecret),
		SessionTTL:          cfg.SessionTTL,
		DisableRegistration: cfg.DisableRegistration,
		AppEnv:              cfg.AppEnv,
	}
	if err := a.Validate(); err != nil {
		return App{}, err
	}

	return a, nil
}

// Validate reports every missing or invalid field at once
func (a *App) Validate() error {
	var err error

	if a.Clock == nil {
		err = multierr.Append(err, ErrEmptyClock)
	}
	if a.DB == nil {
		err = multierr.Append(err, ErrEmptyDB)
	}
	if len(a.JWTSecret) == 0 {
		err = multierr.Append(err, ErrEmptyJWTSecret)
	}
	if a.SessionTTL <= 0 {
		err = multierr.Append(err, ErrInvalidSessionTTL)
	}

	return err
}
