// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rmorgan-dev/folio/internal/config"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/store"
	"github.com/rmorgan-dev/folio/internal/utils"
	"github.com/rmorgan-dev/folio/internal/validators"
	"github.com/rmorgan-dev/folio/models"
)

// Auth implements AuthService on top of the user repository. Revoked tokens
// are held in memory until their natural expiry; a background worker sweeps
// the set periodically.
type Auth struct {
	users  store.UserRepository
	cfg    *config.StructuredConfig
	logger *logger.Logger

	mu      sync.Mutex
	revoked map[string]time.Time // signed token -> expiry
}

func NewAuthService(users store.UserRepository, cfg *config.StructuredConfig, log *logger.Logger) *Auth {
	return &Auth{
		users:   users,
		cfg:     cfg,
		logger:  log,
		revoked: make(map[string]time.Time),
	}
}

func (a *Auth) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validators.ValidateCredentials(user.Email, user.Password); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("password hashing failed")
		return models.User{}, err
	}
	user.Password = ""
	user.PasswordHash = string(hash)

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	log.Info().Str("user_id", created.UserID.String()).Msg("user registered")
	return created, nil
}

func (a *Auth) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	found, err := a.users.FindUserByEmail(ctx, user.Email)
	if err != nil {
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(user.Password)); err != nil {
		log.Info().Str("email", user.Email).Msg("password mismatch")
		return models.User{}, ErrWrongPassword
	}

	return found, nil
}

func (a *Auth) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.cfg.App.TokenIssuer, user.UserID, a.cfg.App.TokenDuration, a.cfg.App.TokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("token generation failed")
		return models.Token{}, err
	}
	return token, nil
}

func (a *Auth) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	a.mu.Lock()
	_, isRevoked := a.revoked[tokenString]
	a.mu.Unlock()
	if isRevoked {
		return models.Token{}, ErrTokenRevoked
	}

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.cfg.App.TokenSignKey, a.cfg.App.TokenIssuer)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}
	return token, nil
}

func (a *Auth) RevokeToken(ctx context.Context, tokenString string) error {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.cfg.App.TokenSignKey, a.cfg.App.TokenIssuer)
	if err != nil {
		// Invalid or expired tokens need no revocation entry.
		return nil
	}

	expiry := time.Now().Add(a.cfg.App.TokenDuration)
	if exp, expErr := token.Claims.GetExpirationTime(); expErr == nil && exp != nil {
		expiry = exp.Time
	}

	a.mu.Lock()
	a.revoked[tokenString] = expiry
	a.mu.Unlock()

	logger.FromContext(ctx).Info().Str("user_id", token.UserID.String()).Msg("token revoked")
	return nil
}

func (a *Auth) Session(ctx context.Context, userID uuid.UUID) (models.Identity, error) {
	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.Identity{}, err
	}
	return user.Identity(), nil
}

func (a *Auth) SweepRevoked(now time.Time) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	removed := 0
	for token, expiry := range a.revoked {
		if expiry.Before(now) {
			delete(a.revoked, token)
			removed++
		}
	}
	return removed
}
