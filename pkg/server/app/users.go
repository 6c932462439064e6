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

package app

import (
	"strings"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/log"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// minPasswordLength is the minimum length of a password
const minPasswordLength = 8

// TouchLastLoginAt updates the last login timestamp
func (a *App) TouchLastLoginAt(user database.User, tx *gorm.DB) error {
	t := a.Clock.Now()
	if err := tx.Model(&user).Update("last_login_at", &t).Error; err != nil {
		return errors.Wrap(err, "updating last_login_at")
	}

	return nil
}

func normalizeEmail(email string) (string, error) {
	ret := strings.ToLower(strings.TrimSpace(email))
	if ret == "" {
		return "", ErrEmailRequired
	}

	at := strings.Index(ret, "@")
	if at < 1 || at == len(ret)-1 || strings.ContainsAny(ret, " \t\n") {
		return "", ErrEmailInvalid
	}

	return ret, nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}

	return string(hashed), nil
}

// CreateUser creates a user
func (a *App) CreateUser(email, password string) (database.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return database.User{}, err
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return database.User{}, err
	}

	tx := a.DB.Begin()

	var count int64
	if err := tx.Unscoped().Model(&database.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		tx.Rollback()
		return database.User{}, errors.Wrap(err, "counting user")
	}
	if count > 0 {
		tx.Rollback()
		return database.User{}, ErrDuplicateEmail
	}

	user := database.User{
		Email:    email,
		Password: hashedPassword,
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return database.User{}, errors.Wrap(err, "saving user")
	}
	if err := a.TouchLastLoginAt(user, tx); err != nil {
		tx.Rollback()
		return database.User{}, errors.Wrap(err, "updating last login")
	}

	if err := tx.Commit().Error; err != nil {
		return database.User{}, errors.Wrap(err, "committing transaction")
	}

	return user, nil
}

// GetUserByEmail finds the user with the given email
func (a *App) GetUserByEmail(email string) (*database.User, error) {
	var user database.User
	err := a.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "finding user")
	}

	return &user, nil
}

// Authenticate authenticates a user
func (a *App) Authenticate(email, password string) (*database.User, error) {
	user, err := a.GetUserByEmail(email)
	if err == ErrNotFound {
		return nil, ErrLoginInvalid
	} else if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrLoginInvalid
	}

	return user, nil
}

// SignIn starts a session for the user and returns its bearer token
func (a *App) SignIn(user *database.User) (string, *database.Session, error) {
	if err := a.TouchLastLoginAt(*user, a.DB); err != nil {
		log.ErrorWrap(err, "touching login timestamp")
	}

	token, session, err := a.CreateSession(*user)
	if err != nil {
		return "", nil, errors.Wrap(err, "creating session")
	}

	return token, &session, nil
}

// Register creates a user and starts the first session
func (a *App) Register(email, password string) (string, *database.User, error) {
	if a.DisableRegistration {
		return "", nil, ErrRegistrationDisabled
	}

	user, err := a.CreateUser(email, password)
	if err != nil {
		return "", nil, err
	}

	token, _, err := a.SignIn(&user)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// UpdateUserPassword replaces the password of the user and revokes every
// existing session
func (a *App) UpdateUserPassword(user *database.User, password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}

	return a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Update("password", hashed).Error; err != nil {
			return errors.Wrap(err, "updating password")
		}

		return a.DeleteUserSessions(tx, user.ID)
	})
}

// RemoveUser deletes the user and everything the user owns
func (a *App) RemoveUser(user *database.User) error {
	return a.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&database.Note{}, &database.Folder{}, &database.Session{}} {
			if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(model).Error; err != nil {
				return errors.Wrap(err, "deleting user data")
			}
		}

		if err := tx.Unscoped().Delete(user).Error; err != nil {
			return errors.Wrap(err, "deleting user")
		}

		return nil
	})
}
