package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/rmorgan-dev/folio/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists and looks up user accounts.
type UserRepository interface {
	// CreateUser persists a new user record and returns the fully populated
	// [models.User] with server-assigned fields (UserID, CreatedAt).
	// Returns [ErrEmailAlreadyExists] if the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail retrieves the user record whose Email matches.
	// Returns [ErrNoUserWasFound] if no such user exists.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID retrieves the user record with the given ID.
	// Returns [ErrNoUserWasFound] if no such user exists.
	FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
}

// JournalRepository persists journal entries. Every read and mutation is
// scoped by owner: an entry is only ever visible to, and mutable by, the
// user that created it.
type JournalRepository interface {
	// ListByOwner returns all entries owned by userID ordered by creation
	// time descending (newest first). An empty result is not an error.
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.JournalEntry, error)

	// Create inserts a new entry for userID. The database assigns id and
	// both timestamps; the canonical row is returned.
	Create(ctx context.Context, userID uuid.UUID, draft models.EntryDraft) (models.JournalEntry, error)

	// Get fetches a single entry by id, scoped to userID. Returns
	// [ErrEntryNotFound] when the entry is absent or owned by someone else;
	// the two cases are deliberately indistinguishable.
	Get(ctx context.Context, id, userID uuid.UUID) (models.JournalEntry, error)

	// Update applies a partial update to the entry matching both id and
	// userID, re-stamps updated_at, and returns the canonical row.
	// Returns [ErrEntryNotFound] when no row matches.
	Update(ctx context.Context, id, userID uuid.UUID, patch models.EntryPatch) (models.JournalEntry, error)

	// Delete removes the entry matching both id and userID.
	// Returns [ErrEntryNotFound] when no row matches.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
