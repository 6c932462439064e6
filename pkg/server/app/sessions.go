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
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/helpers"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// tokenIssuer is the issuer claim of the bearer tokens
const tokenIssuer = "godnotes"

// Claims are the claims carried by a bearer token. The registered ID claim
// names the session row backing the token.
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// CreateSession starts a new session for the user and returns the signed
// bearer token for it
func (a *App) CreateSession(user database.User) (string, database.Session, error) {
	jti, err := helpers.NewID()
	if err != nil {
		return "", database.Session{}, errors.Wrap(err, "generating token id")
	}

	now := a.Clock.Now()
	session := database.Session{
		UserID:     user.ID,
		JTI:        jti,
		LastUsedAt: now,
		ExpiresAt:  now.Add(a.SessionTTL),
	}

	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.JWTSecret)
	if err != nil {
		return "", database.Session{}, errors.Wrap(err, "signing token")
	}

	if err := a.DB.Create(&session).Error; err != nil {
		return "", database.Session{}, errors.Wrap(err, "saving session")
	}

	return token, session, nil
}

// ParseToken verifies the signature and the lifetime of a bearer token
func (a *App) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return a.JWTSecret, nil
	}, jwt.WithTimeFunc(a.Clock.Now), jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Authorize resolves a bearer token to its user and session. A token whose
// session was revoked or has expired is rejected.
func (a *App) Authorize(tokenStr string) (*database.User, *database.Session, error) {
	claims, err := a.ParseToken(tokenStr)
	if err != nil {
		return nil, nil, err
	}

	var session database.Session
	err = a.DB.Where("jti = ?", claims.ID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrInvalidToken
	} else if err != nil {
		return nil, nil, errors.Wrap(err, "finding session")
	}

	now := a.Clock.Now()
	if !session.ExpiresAt.After(now) || session.UserID != claims.UserID {
		return nil, nil, ErrInvalidToken
	}

	var user database.User
	err = a.DB.Where("id = ?", session.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrInvalidToken
	} else if err != nil {
		return nil, nil, errors.Wrap(err, "finding user")
	}

	if err := a.DB.Model(&session).Update("last_used_at", now).Error; err != nil {
		log.ErrorWrap(err, "touching session")
	}

	return &user, &session, nil
}

// DeleteUserSessions deletes all existing sessions for the given user. It effectively
// invalidates all existing sessions.
func (a *App) DeleteUserSessions(db *gorm.DB, userID string) error {
	if err := db.Unscoped().Where("user_id = ?", userID).Delete(&database.Session{}).Error; err != nil {
		return errors.Wrap(err, "deleting sessions")
	}

	return nil
}

// DeleteSession revokes the session with the given token id
func (a *App) DeleteSession(jti string) error {
	if err := a.DB.Unscoped().Where("jti = ?", jti).Delete(&database.Session{}).Error; err != nil {
		return errors.Wrap(err, "deleting the session")
	}

	return nil
}

// DeleteExpiredSessions removes the sessions past their expiry and returns
// how many were removed
func (a *App) DeleteExpiredSessions() (int64, error) {
	res := a.DB.Unscoped().Where("expires_at <= ?", a.Clock.Now()).Delete(&database.Session{})
	if err := res.Error; err != nil {
		return 0, errors.Wrap(err, "deleting expired sessions")
	}

	return res.RowsAffected, nil
}
