package models

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a single journal record owned by one user.
//
// ID and both timestamps are assigned by the server; UserID is fixed at
// creation time and never changes. The JSON tags define the wire contract
// shared by the HTTP API and the client adapter.
type JournalEntry struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`

	// Mood is an optional single label (e.g. "happy", "reflective"),
	// restricted to [MoodLabels] at write time.
	Mood string `json:"mood,omitempty"`

	// Tags is an ordered set of lowercase strings. Normalization (lowercase,
	// duplicate suppression, insertion order preserved) happens on write.
	Tags []string `json:"tags,omitempty"`

	IsPrivate bool      `json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the JournalEntry model.
func (e JournalEntry) TableName() string {
	return "journal_entries"
}

// EntryDraft holds the client-supplied fields for a new journal entry.
// IsPrivate is a pointer so that "omitted" can be told apart from "false";
// the server defaults omitted values to true.
type EntryDraft struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Mood      string   `json:"mood,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	IsPrivate *bool    `json:"is_private,omitempty"`
}

// EntryPatch describes a partial update to an existing entry. Nil fields are
// left untouched by the server.
type EntryPatch struct {
	Title     *string   `json:"title,omitempty"`
	Content   *string   `json:"content,omitempty"`
	Mood      *string   `json:"mood,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
	IsPrivate *bool     `json:"is_private,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p EntryPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Mood == nil && p.Tags == nil && p.IsPrivate == nil
}

// MoodLabels is the closed set of mood tags. Both the client and the server
// validate against it on write, so an unknown mood never reaches storage.
var MoodLabels = []string{
	"happy",
	"sad",
	"excited",
	"calm",
	"anxious",
	"grateful",
	"reflective",
}

// IsKnownMood reports whether mood is one of [MoodLabels].
// The empty string is accepted: mood is optional.
func IsKnownMood(mood string) bool {
	if mood == "" {
		return true
	}
	for _, m := range MoodLabels {
		if m == mood {
			return true
		}
	}
	return false
}
