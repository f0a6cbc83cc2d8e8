package service

import "errors"

var (
	// ErrNotAuthenticated is returned by operations that require a signed-in
	// identity when there is none.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoActiveSession is returned by SignOut when there is no session to
	// terminate, and by FetchAll when the identity is present but the
	// adapter holds no token to fetch with.
	ErrNoActiveSession = errors.New("no active session")

	// ErrOperationInFlight is returned when a mutation is requested while a
	// previous one on the same component has not finished.
	ErrOperationInFlight = errors.New("operation already in flight")

	// ErrFetchTimeout is returned by FetchAll when the feed fetch exceeds
	// the configured deadline. It is distinct from an empty feed.
	ErrFetchTimeout = errors.New("feed fetch timed out")
)
