// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/store"
	"github.com/rmorgan-dev/folio/internal/validators"
	"github.com/rmorgan-dev/folio/models"
)

// Journal implements JournalService. Every operation is scoped to the owner
// taken from the authenticated request, so entries of other users are
// indistinguishable from missing ones.
type Journal struct {
	entries store.JournalRepository
	logger  *logger.Logger
}

func NewJournalService(entries store.JournalRepository, log *logger.Logger) *Journal {
	return &Journal{entries: entries, logger: log}
}

func (j *Journal) List(ctx context.Context, userID uuid.UUID) ([]models.JournalEntry, error) {
	return j.entries.ListByOwner(ctx, userID)
}

func (j *Journal) Create(ctx context.Context, userID uuid.UUID, draft models.EntryDraft) (models.JournalEntry, error) {
	if err := validators.ValidateDraft(&draft); err != nil {
		return models.JournalEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	entry, err := j.entries.Create(ctx, userID, draft)
	if err != nil {
		return models.JournalEntry{}, err
	}

	logger.FromContext(ctx).Info().
		Str("entry_id", entry.ID.String()).
		Str("user_id", userID.String()).
		Msg("journal entry created")
	return entry, nil
}

func (j *Journal) Get(ctx context.Context, id, userID uuid.UUID) (models.JournalEntry, error) {
	return j.entries.Get(ctx, id, userID)
}

func (j *Journal) Update(ctx context.Context, id, userID uuid.UUID, patch models.EntryPatch) (models.JournalEntry, error) {
	if err := validators.ValidatePatch(&patch); err != nil {
		return models.JournalEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return j.entries.Update(ctx, id, userID, patch)
}

func (j *Journal) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := j.entries.Delete(ctx, id, userID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().
		Str("entry_id", id.String()).
		Str("user_id", userID.String()).
		Msg("journal entry deleted")
	return nil
}
