// Package validators implements input validation for journal entries and
// credentials. Validation failures never reach the server: both the CLI
// client and the HTTP handlers reject bad input at their own boundary using
// the same rules.
package validators

import (
	"strings"

	"github.com/rmorgan-dev/folio/models"
)

// ValidateDraft checks a new-entry draft and normalizes its tags in place.
//
// Rules:
//   - title and content must be non-empty after trimming;
//   - mood, when present, must be one of [models.MoodLabels];
//   - tags are lowercased and de-duplicated, insertion order preserved.
func ValidateDraft(draft *models.EntryDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(draft.Content) == "" {
		return ErrEmptyContent
	}
	if !models.IsKnownMood(draft.Mood) {
		return ErrUnknownMood
	}

	draft.Tags = NormalizeTags(draft.Tags)
	return nil
}

// ValidatePatch checks a partial update and normalizes its tags in place.
// Fields left nil are not validated; fields that are present follow the same
// rules as in [ValidateDraft].
func ValidatePatch(patch *models.EntryPatch) error {
	if patch.Empty() {
		return ErrEmptyPatch
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return ErrEmptyTitle
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return ErrEmptyContent
	}
	if patch.Mood != nil && !models.IsKnownMood(*patch.Mood) {
		return ErrUnknownMood
	}

	if patch.Tags != nil {
		normalized := NormalizeTags(*patch.Tags)
		patch.Tags = &normalized
	}
	return nil
}

// NormalizeTags lowercases every tag, trims surrounding whitespace, drops
// empties, and suppresses duplicates while preserving first-seen order.
func NormalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
