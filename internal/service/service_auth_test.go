// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/rmorgan-dev/folio/internal/config"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/mock"
	"github.com/rmorgan-dev/folio/internal/store"
	"github.com/rmorgan-dev/folio/models"
)

func testServerConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			TokenSignKey:  "test-sign-key",
			TokenIssuer:   "folio-test",
			TokenDuration: time.Hour,
		},
	}
}

func newTestAuthService(t *testing.T, ctrl *gomock.Controller) (*Auth, *mock.MockUserRepository) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)
	return NewAuthService(mockUsers, testServerConfig(), logger.Nop()), mockUsers
}

func TestAuth_RegisterUser_HashesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthService(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Empty(t, u.Password, "plain-text password must not reach the repository")
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password1")))
			u.UserID = uuid.New()
			return u, nil
		},
	)

	created, err := svc.RegisterUser(ctx, models.User{Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.UserID)
}

func TestAuth_RegisterUser_RejectsBadCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	_, err := svc.RegisterUser(context.Background(), models.User{Email: "not-an-email", Password: "password1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), models.User{Email: "alice@example.com", Password: "short"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuth_RegisterUser_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthService(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.RegisterUser(ctx, models.User{Email: "alice@example.com", Password: "password1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuth_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthService(t, ctrl)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := models.User{UserID: uuid.New(), Email: "alice@example.com", PasswordHash: string(hash)}

	mockUsers.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(stored, nil)

	found, err := svc.Login(ctx, models.User{Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, stored.UserID, found.UserID)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthService(t, ctrl)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)

	mockUsers.EXPECT().FindUserByEmail(ctx, "alice@example.com").
		Return(models.User{Email: "alice@example.com", PasswordHash: string(hash)}, nil)

	_, err = svc.Login(ctx, models.User{Email: "alice@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthService(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByEmail(ctx, "ghost@example.com").Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(ctx, models.User{Email: "ghost@example.com", Password: "password1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestAuth_TokenRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.CreateToken(ctx, models.User{UserID: userID})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed.UserID)
}

func TestAuth_ParseToken_Revoked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: uuid.New()})
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(ctx, token.SignedString))

	_, err = svc.ParseToken(ctx, token.SignedString)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuth_RevokeToken_InvalidTokenIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	require.NoError(t, svc.RevokeToken(context.Background(), "garbage"))
	assert.Zero(t, svc.SweepRevoked(time.Now()))
}

func TestAuth_SweepRevoked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: uuid.New()})
	require.NoError(t, err)
	require.NoError(t, svc.RevokeToken(ctx, token.SignedString))

	// Not yet expired.
	assert.Zero(t, svc.SweepRevoked(time.Now()))

	// Well past the token lifetime.
	assert.Equal(t, 1, svc.SweepRevoked(time.Now().Add(2*time.Hour)))
}

func TestAuth_Session(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers := newTestAuthService(t, ctrl)
	ctx := context.Background()
	userID := uuid.New()

	mockUsers.EXPECT().FindUserByID(ctx, userID).
		Return(models.User{UserID: userID, Email: "alice@example.com", FullName: "Alice"}, nil)

	identity, err := svc.Session(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.ID)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.Equal(t, "Alice", identity.FullName)
}
