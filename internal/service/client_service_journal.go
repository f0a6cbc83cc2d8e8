// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/rmorgan-dev/folio/internal/adapter"
	"github.com/rmorgan-dev/folio/internal/config"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/validators"
	"github.com/rmorgan-dev/folio/models"
)

// ClientJournal implements ClientJournalService. The cache mirrors the
// server's feed for the current identity, newest entry first; the server's
// ordering is authoritative and never re-sorted here.
type ClientJournal struct {
	server  adapter.ServerAdapter
	session ClientSessionService
	cfg     config.Client
	logger  *logger.Logger

	mu       sync.RWMutex
	entries  []models.JournalEntry
	state    models.FeedState
	fetchErr error
	mutating bool

	unsubscribe func()
}

func NewClientJournalService(server adapter.ServerAdapter, session ClientSessionService, cfg config.Client, log *logger.Logger) *ClientJournal {
	return &ClientJournal{
		server:  server,
		session: session,
		cfg:     cfg,
		logger:  log,
		state:   models.FeedIdle,
	}
}

// Run implements [ClientJournalService]. A sign-in triggers a full refetch;
// a sign-out (or a switch to another identity, which arrives as a change)
// resets the cache immediately so one user's entries are never shown to
// another.
func (j *ClientJournal) Run() {
	j.unsubscribe = j.session.Subscribe(func(identity *models.Identity) {
		if identity == nil {
			j.reset()
			return
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), j.cfg.FetchTimeout)
			defer cancel()
			if err := j.FetchAll(ctx); err != nil {
				j.logger.Error().Err(err).Msg("feed refetch after sign-in failed")
			}
		}()
	})
}

// Stop cancels the identity subscription started by Run.
func (j *ClientJournal) Stop() {
	if j.unsubscribe != nil {
		j.unsubscribe()
	}
}

// FetchAll implements [ClientJournalService].
func (j *ClientJournal) FetchAll(ctx context.Context) error {
	if j.session.Identity() == nil {
		j.reset()
		return nil
	}

	// The identity can outlive the adapter's token for a moment around a
	// forced sign-out; the cache must never hold entries fetched without a
	// session behind them.
	if j.server.Token() == "" {
		j.mu.Lock()
		j.state = models.FeedErrored
		j.fetchErr = ErrNoActiveSession
		j.mu.Unlock()
		return ErrNoActiveSession
	}

	j.mu.Lock()
	j.state = models.FeedLoading
	j.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, j.cfg.FetchTimeout)
	defer cancel()

	entries, err := j.server.ListEntries(fetchCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrFetchTimeout
		}

		// The cache keeps the last good feed; only the state flips.
		j.mu.Lock()
		j.state = models.FeedErrored
		j.fetchErr = err
		j.mu.Unlock()
		return err
	}

	j.mu.Lock()
	j.entries = entries
	j.state = models.FeedReady
	j.fetchErr = nil
	j.mu.Unlock()
	return nil
}

// reset empties the cache without a remote call. An absent identity has an
// empty feed, successfully.
func (j *ClientJournal) reset() {
	j.mu.Lock()
	j.entries = nil
	j.state = models.FeedReady
	j.fetchErr = nil
	j.mu.Unlock()
}

// Entries implements [ClientJournalService].
func (j *ClientJournal) Entries() []models.JournalEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	entries := make([]models.JournalEntry, len(j.entries))
	copy(entries, j.entries)
	return entries
}

// State implements [ClientJournalService].
func (j *ClientJournal) State() models.FeedState {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state
}

// Err implements [ClientJournalService].
func (j *ClientJournal) Err() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.fetchErr
}

// CreateEntry implements [ClientJournalService]. The canonical row returned
// by the server, not the draft, is what enters the cache, so server-assigned
// fields (id, timestamps, privacy default) are always present.
func (j *ClientJournal) CreateEntry(ctx context.Context, draft models.EntryDraft) (models.JournalEntry, error) {
	if err := j.beginMutation(); err != nil {
		return models.JournalEntry{}, err
	}
	defer j.endMutation()

	// Bad drafts are rejected here; the server never sees them.
	if err := validators.ValidateDraft(&draft); err != nil {
		return models.JournalEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	entry, err := j.server.CreateEntry(ctx, draft)
	if err != nil {
		return models.JournalEntry{}, err
	}

	j.mu.Lock()
	j.entries = append([]models.JournalEntry{entry}, j.entries...)
	j.mu.Unlock()

	j.logger.Info().Str("entry_id", entry.ID.String()).Msg("entry created")
	return entry, nil
}

// UpdateEntry implements [ClientJournalService].
func (j *ClientJournal) UpdateEntry(ctx context.Context, id uuid.UUID, patch models.EntryPatch) (models.JournalEntry, error) {
	if err := j.beginMutation(); err != nil {
		return models.JournalEntry{}, err
	}
	defer j.endMutation()

	if err := validators.ValidatePatch(&patch); err != nil {
		return models.JournalEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	entry, err := j.server.UpdateEntry(ctx, id, patch)
	if err != nil {
		return models.JournalEntry{}, err
	}

	j.mu.Lock()
	for i := range j.entries {
		if j.entries[i].ID == id {
			j.entries[i] = entry
			break
		}
	}
	j.mu.Unlock()

	return entry, nil
}

// DeleteEntry implements [ClientJournalService].
func (j *ClientJournal) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := j.beginMutation(); err != nil {
		return err
	}
	defer j.endMutation()

	if err := j.server.DeleteEntry(ctx, id); err != nil {
		return err
	}

	j.mu.Lock()
	for i := range j.entries {
		if j.entries[i].ID == id {
			j.entries = append(j.entries[:i], j.entries[i+1:]...)
			break
		}
	}
	j.mu.Unlock()

	j.logger.Info().Str("entry_id", id.String()).Msg("entry deleted")
	return nil
}

// GetEntry implements [ClientJournalService]. Reads straight from the server
// so a stale cache can never mask an entry that was changed or removed
// elsewhere.
func (j *ClientJournal) GetEntry(ctx context.Context, id uuid.UUID) (models.JournalEntry, error) {
	if j.session.Identity() == nil {
		return models.JournalEntry{}, ErrNotAuthenticated
	}
	return j.server.GetEntry(ctx, id)
}

// beginMutation enforces the single-mutation-in-flight rule and the
// authentication requirement shared by all mutating operations.
func (j *ClientJournal) beginMutation() error {
	if j.session.Identity() == nil {
		return ErrNotAuthenticated
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.mutating {
		return ErrOperationInFlight
	}
	j.mutating = true
	return nil
}

func (j *ClientJournal) endMutation() {
	j.mu.Lock()
	j.mutating = false
	j.mu.Unlock()
}
