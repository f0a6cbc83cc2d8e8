package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rmorgan-dev/folio/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// Subscription is a handle to an active session watch. Unsubscribe stops the
// watch and is safe to call more than once.
type Subscription interface {
	Unsubscribe()
}

// ServerAdapter is the client-side gateway to the remote data service. All
// methods translate HTTP failures into the sentinel errors of this package.
type ServerAdapter interface {
	// SetToken installs the bearer token used for authenticated calls.
	// An empty string clears it.
	SetToken(token string)

	// Token returns the currently installed bearer token, or "".
	Token() string

	// Register creates a new account. It does not authenticate the client;
	// a subsequent Login is required.
	Register(ctx context.Context, user models.User) (models.Identity, error)

	// Login authenticates with email/password, installs the returned bearer
	// token on the adapter, and returns the identity.
	Login(ctx context.Context, user models.User) (models.Identity, error)

	// Logout revokes the given token on the server. The token is passed
	// explicitly so revocation can proceed after the adapter's own token
	// has already been cleared.
	Logout(ctx context.Context, token string) error

	// Session resolves the installed token to the identity it belongs to.
	Session(ctx context.Context) (models.Identity, error)

	// SubscribeSession polls Session at the given interval and invokes fn
	// with the current identity (nil when unauthenticated) whenever the
	// authentication state changes.
	SubscribeSession(interval time.Duration, fn func(identity *models.Identity)) Subscription

	// ListEntries returns the caller's journal entries, newest first.
	ListEntries(ctx context.Context) ([]models.JournalEntry, error)

	CreateEntry(ctx context.Context, draft models.EntryDraft) (models.JournalEntry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (models.JournalEntry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, patch models.EntryPatch) (models.JournalEntry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}
