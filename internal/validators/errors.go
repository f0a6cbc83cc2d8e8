package validators

import "errors"

// Validation errors. These are detected client-side (and re-checked
// server-side) before any remote call is made.
var (
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrEmptyContent    = errors.New("content must not be empty")
	ErrUnknownMood     = errors.New("unknown mood label")
	ErrEmptyPatch      = errors.New("update must change at least one field")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
)
