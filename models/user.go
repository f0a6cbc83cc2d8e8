package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account record used for authentication.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the server-assigned unique identifier of the user.
	UserID uuid.UUID `json:"id"`

	// Email is the unique address the user signs in with.
	Email string `json:"email"`

	// Password carries the plain-text password on inbound register/login
	// requests only. It is never persisted and never serialized back out.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// FullName is the display name of the user. Optional.
	FullName string `json:"full_name,omitempty"`

	// Username is an optional public handle.
	Username string `json:"username,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identity is the authenticated-user view handed out to clients after a
// successful sign-in or session check. It is the public projection of [User]:
// no credential material, only what the presentation layer needs.
type Identity struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name,omitempty"`
	Username string    `json:"username,omitempty"`
}

// Profile carries the optional fields a user may supply at sign-up.
type Profile struct {
	FullName string `json:"full_name,omitempty"`
	Username string `json:"username,omitempty"`
}

// Identity returns the public projection of the user record.
func (u User) Identity() Identity {
	return Identity{
		ID:       u.UserID,
		Email:    u.Email,
		FullName: u.FullName,
		Username: u.Username,
	}
}
