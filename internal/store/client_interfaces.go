package store

import (
	"context"
	"errors"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// ErrLocalSessionNotFound is returned by [SessionStore.LoadToken] when no
// token has been persisted (or it was cleared).
var ErrLocalSessionNotFound = errors.New("local session not found")

// SessionStore persists the client's bearer token between runs so that
// startup reconciliation has a session candidate to verify against the
// server. It is the Go analogue of a browser's persisted session.
type SessionStore interface {
	// SaveToken stores token, replacing any previously saved one.
	SaveToken(ctx context.Context, token string) error

	// LoadToken returns the persisted token or [ErrLocalSessionNotFound].
	LoadToken(ctx context.Context) (string, error)

	// ClearToken removes the persisted token. Clearing an already-empty
	// store is not an error.
	ClearToken(ctx context.Context) error

	// Close releases the underlying database handle.
	Close() error
}
