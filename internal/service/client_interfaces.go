package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rmorgan-dev/folio/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientSessionService owns the client's authentication state: the current
// identity, the persisted bearer token, and the session watch that keeps the
// two aligned with the server.
type ClientSessionService interface {
	// Run performs startup reconciliation (verifying any persisted token
	// against the server) and starts the session watch. It must be called
	// once before the other methods.
	Run(ctx context.Context) error

	// SignUp registers a new account. It never establishes a session: the
	// identity and token remain untouched regardless of outcome.
	SignUp(ctx context.Context, email, password string, profile models.Profile) (models.Identity, error)

	// SignIn authenticates and, on success, installs the identity and
	// persists the bearer token.
	SignIn(ctx context.Context, email, password string) (models.Identity, error)

	// SignOut clears the local session immediately, then revokes the token
	// on the server in the background. Remote failures never resurrect the
	// local session.
	SignOut(ctx context.Context) error

	// ClearAuth drops the local identity and persisted token without any
	// remote call.
	ClearAuth(ctx context.Context)

	// Identity returns the current identity, or nil when unauthenticated.
	Identity() *models.Identity

	// Busy reports whether an auth operation is currently in flight.
	Busy() bool

	// Subscribe registers fn to be invoked on every identity change,
	// including the transition to unauthenticated (nil). The returned
	// function cancels the registration and is safe to call repeatedly.
	Subscribe(fn func(identity *models.Identity)) (unsubscribe func())

	// Close stops the session watch and releases the local session store.
	Close() error
}

// ClientJournalService keeps a client-side cache of the owner's journal feed
// synchronized with the server, and applies mutations to both.
type ClientJournalService interface {
	// Run subscribes the feed to identity changes so it refetches on
	// sign-in and resets on sign-out.
	Run()

	// FetchAll replaces the cache with the server's feed for the current
	// identity. Without an identity it resets the cache to empty and
	// reports ready without a remote call. A failed or timed-out fetch
	// leaves the cache untouched and marks the feed errored.
	FetchAll(ctx context.Context) error

	// Entries returns a copy of the cached feed, newest first.
	Entries() []models.JournalEntry

	// State returns the current feed state.
	State() models.FeedState

	// Err returns the failure recorded by the last fetch, or nil.
	Err() error

	// CreateEntry stores a new entry and prepends the canonical stored row
	// to the cache.
	CreateEntry(ctx context.Context, draft models.EntryDraft) (models.JournalEntry, error)

	// UpdateEntry applies a partial update and replaces the cached row in
	// place, preserving feed order.
	UpdateEntry(ctx context.Context, id uuid.UUID, patch models.EntryPatch) (models.JournalEntry, error)

	// DeleteEntry removes the entry remotely and drops it from the cache.
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	// GetEntry fetches a single entry from the server, bypassing the cache.
	GetEntry(ctx context.Context, id uuid.UUID) (models.JournalEntry, error)
}
