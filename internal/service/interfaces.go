package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rmorgan-dev/folio/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService handles account registration, credential verification, and the
// JWT token lifecycle including server-side revocation.
type AuthService interface {
	// RegisterUser validates and creates a new account. The plain-text
	// password in user.Password is bcrypt-hashed before persistence and
	// never stored.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login verifies the email/password pair and returns the stored user
	// record. Returns ErrWrongPassword when the password does not match.
	Login(ctx context.Context, user models.User) (models.User, error)

	// CreateToken issues a signed JWT for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw JWT string, including a revocation check.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// RevokeToken adds the token to the server-side revocation set so it is
	// rejected for the remainder of its lifetime. Used by sign-out.
	RevokeToken(ctx context.Context, tokenString string) error

	// Session resolves a user ID (from a validated token) to the public
	// identity projection.
	Session(ctx context.Context, userID uuid.UUID) (models.Identity, error)

	// SweepRevoked drops revocation entries whose tokens expired before now
	// and returns how many were removed. Called periodically by a worker.
	SweepRevoked(now time.Time) int
}

// JournalService implements the owner-scoped journal CRUD operations exposed
// by the HTTP API.
type JournalService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.JournalEntry, error)
	Create(ctx context.Context, userID uuid.UUID, draft models.EntryDraft) (models.JournalEntry, error)
	Get(ctx context.Context, id, userID uuid.UUID) (models.JournalEntry, error)
	Update(ctx context.Context, id, userID uuid.UUID, patch models.EntryPatch) (models.JournalEntry, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// ProjectService serves the portfolio projects API from the in-memory store.
type ProjectService interface {
	List(ctx context.Context) []models.Project
	Get(ctx context.Context, id int) (models.Project, error)
	Create(ctx context.Context, project models.Project) (models.Project, error)
	Update(ctx context.Context, id int, patch models.ProjectPatch) (models.Project, error)
	Delete(ctx context.Context, id int) error
}
