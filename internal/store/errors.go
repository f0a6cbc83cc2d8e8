package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because the email is already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrEntryNotFound is returned when a read, update, or delete targets a
	// journal entry that does not exist for the given owner. Whether the
	// entry is missing entirely or belongs to another user is not revealed.
	ErrEntryNotFound = errors.New("journal entry not found")

	// ErrProjectNotFound is returned when a project id does not exist in the
	// in-memory store.
	ErrProjectNotFound = errors.New("project not found")

	// ErrEmptyPatch is returned when an update request contains no fields to
	// change.
	ErrEmptyPatch = errors.New("empty update patch")
)
