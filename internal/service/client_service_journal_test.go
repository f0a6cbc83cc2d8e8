// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/mock"
	"github.com/rmorgan-dev/folio/internal/validators"
	"github.com/rmorgan-dev/folio/models"
)

func newTestClientJournal(t *testing.T, ctrl *gomock.Controller) (*ClientJournal, *mock.MockServerAdapter, *mock.MockClientSessionService) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockSession := mock.NewMockClientSessionService(ctrl)
	mockAdapter.EXPECT().Token().Return("bearer-token").AnyTimes()

	svc := NewClientJournalService(mockAdapter, mockSession, testClientConfig(), logger.Nop())
	return svc, mockAdapter, mockSession
}

func someIdentity() *models.Identity {
	return &models.Identity{ID: uuid.New(), Email: "alice@example.com"}
}

func feedOf(titles ...string) []models.JournalEntry {
	entries := make([]models.JournalEntry, 0, len(titles))
	for _, title := range titles {
		entries = append(entries, models.JournalEntry{ID: uuid.New(), Title: title})
	}
	return entries
}

func TestClientJournal_FetchAll_NoIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockSession := newTestClientJournal(t, ctrl)

	// No ListEntries expectation: an absent identity must not reach the server.
	mockSession.EXPECT().Identity().Return(nil)

	require.NoError(t, svc.FetchAll(context.Background()))
	assert.Empty(t, svc.Entries())
	assert.Equal(t, models.FeedReady, svc.State())
	assert.NoError(t, svc.Err())
}

func TestClientJournal_FetchAll_NoToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Built without the helper: this adapter must report an empty token.
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockSession := mock.NewMockClientSessionService(ctrl)
	svc := NewClientJournalService(mockAdapter, mockSession, testClientConfig(), logger.Nop())

	mockSession.EXPECT().Identity().Return(someIdentity())
	mockAdapter.EXPECT().Token().Return("")

	err := svc.FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.Equal(t, models.FeedErrored, svc.State())
	assert.Empty(t, svc.Entries())
}

func TestClientJournal_FetchAll_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSession := newTestClientJournal(t, ctrl)
	feed := feedOf("newest", "middle", "oldest")

	mockSession.EXPECT().Identity().Return(someIdentity())
	mockAdapter.EXPECT().ListEntries(gomock.Any()).Return(feed, nil)

	require.NoError(t, svc.FetchAll(context.Background()))

	got := svc.Entries()
	require.Len(t, got, 3)
	// The server's ordering is authoritative; no client-side re-sort.
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "middle", got[1].Title)
	assert.Equal(t, "oldest", got[2].Title)
	assert.Equal(t, models.FeedReady, svc.State())
}

func TestClientJournal_FetchAll_FailureKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSession := newTestClientJournal(t, ctrl)
	feed := feedOf("kept entry")

	mockSession.EXPECT().Identity().Return(someIdentity()).Times(2)
	gomock.InOrder(
		mockAdapter.EXPECT().ListEntries(gomock.Any()).Return(feed, nil),
		mockAdapter.EXPECT().ListEntries(gomock.Any()).Return(nil, errors.New("server down")),
	)

	require.NoError(t, svc.FetchAll(context.Background()))
	require.Error(t, svc.FetchAll(context.Background()))

	assert.Equal(t, models.FeedErrored, svc.State())
	assert.Error(t, svc.Err())

	got := svc.Entries()
	require.Len(t, got, 1)
	assert.Equal(t, "kept entry", got[0].Title)
}

func TestClientJournal_FetchAll_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSession := newTestClientJournal(t, ctrl)
	svc.cfg.FetchTimeout = 10 * time.Millisecond

	mockSession.EXPECT().Identity().Return(someIdentity())
	mockAdapter.EXPECT().ListEntries(gomock.Any()).DoAndReturn(
		func(ctx context.Context) ([]models.JournalEntry, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	)

	err := svc.FetchAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchTimeout)
	assert.Equal(t, models.FeedErrored, svc.State())
	assert.ErrorIs(t, svc.Err(), ErrFetchTimeout)
}

func TestClientJournal_CreateEntry_PrependsCanonicalRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSession := newTestClientJournal(t, ctrl)
	feed := feedOf("existing")

	mockSession.EXPECT().Identity().Return(someIdentity()).Times(2)
	mockAdapter.EXPECT().ListEntries(gomock.Any()).Return(feed, nil)
	require.NoError(t, svc.FetchAll(context.Background()))

	draft := models.EntryDraft{Title: "brand new", Content: "hello"}
	stored := models.JournalEntry{
		ID:        uuid.New(),
		Title:     "brand new",
		Content:   "hello",
		IsPrivate: true,
		CreatedAt: time.Now(),
	}
	mockAdapter.EXPECT().CreateEntry(gomock.Any(), draft).Return(stored, nil)

	got, err := svc.CreateEntry(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.True(t, got.IsPrivate)

	entries := svc.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, stored.ID, entries[0].ID, "new entry goes to the top of the feed")
	assert.Equal(t, "existing", entries[1].Title)
}

func TestClientJournal_CreateEntry_NotAuthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockSession := newTestClientJournal(t, ctrl)

	mockSession.EXPECT().Identity().Return(nil)

	_, err := svc.CreateEntry(context.Background(), models.EntryDraft{Title: "x", Content: "y"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClientJournal_CreateEntry_RejectsInvalidDraftLocally(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No CreateEntry expectation on the adapter: a bad draft must be
	// rejected before any request goes out.
	svc, _, mockSession := newTestClientJournal(t, ctrl)

	mockSession.EXPECT().Identity().Return(someIdentity())

	_, err := svc.CreateEntry(context.Background(), models.EntryDraft{Title: "T", Content: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrEmptyContent)
}

func TestClientJournal_UpdateEntry_ReplacesInPlace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSession := newTestClientJournal(t, ctrl)
	feed := feedOf("first", "second", "third")
	target := feed[1]

	mockSession.EXPECT().Identity().Return(someIdentity()).Times(2)
	mockAdapter.EXPECT().ListEntries(gomock.Any()).Return(feed, nil)
	require.NoError(t, svc.FetchAll(context.Background()))

	newTitle := "second, revised"
	patch := models.EntryPatch{Title: &newTitle}
	updated := target
	updated.Title = newTitle
	mockAdapter.EXPECT().UpdateEntry(gomock.Any(), target.ID, patch).Return(updated, nil)

	got, err := svc.UpdateEntry(context.Background(), target.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, newTitle, got.Title)

	entries := svc.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "first", entries[0].Title)
	assert.Equal(t, newTitle, entries[1].Title, "updated entry keeps its position")
	assert.Equal(t, "third", entries[2].Title)
}

func TestClientJournal_UpdateEntry_RejectsInvalidPatchLocally(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockSession := newTestClientJournal(t, ctrl)

	mockSession.EXPECT().Identity().Return(someIdentity()).Times(2)

	blank := "  "
	_, err := svc.UpdateEntry(context.Background(), uuid.New(), models.EntryPatch{Title: &blank})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrEmptyTitle)

	_, err = svc.UpdateEntry(context.Background(), uuid.New(), models.EntryPatch{})
	require.Error(t, err)
	assert.ErrorIs(t, err, validators.ErrEmptyPatch)
}

func TestClientJournal_DeleteEntry_RemovesFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSession := newTestClientJournal(t, ctrl)
	feed := feedOf("keep", "drop")
	target := feed[1]

	mockSession.EXPECT().Identity().Return(someIdentity()).Times(2)
	mockAdapter.EXPECT().ListEntries(gomock.Any()).Return(feed, nil)
	require.NoError(t, svc.FetchAll(context.Background()))

	mockAdapter.EXPECT().DeleteEntry(gomock.Any(), target.ID).Return(nil)
	require.NoError(t, svc.DeleteEntry(context.Background(), target.ID))

	entries := svc.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "keep", entries[0].Title)
}

func TestClientJournal_DeleteEntry_RemoteFailureKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSession := newTestClientJournal(t, ctrl)
	feed := feedOf("keep")

	mockSession.EXPECT().Identity().Return(someIdentity()).Times(2)
	mockAdapter.EXPECT().ListEntries(gomock.Any()).Return(feed, nil)
	require.NoError(t, svc.FetchAll(context.Background()))

	mockAdapter.EXPECT().DeleteEntry(gomock.Any(), feed[0].ID).Return(errors.New("server down"))
	require.Error(t, svc.DeleteEntry(context.Background(), feed[0].ID))

	assert.Len(t, svc.Entries(), 1)
}

func TestClientJournal_GetEntry_BypassesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSession := newTestClientJournal(t, ctrl)
	entry := models.JournalEntry{ID: uuid.New(), Title: "direct"}

	mockSession.EXPECT().Identity().Return(someIdentity())
	mockAdapter.EXPECT().GetEntry(gomock.Any(), entry.ID).Return(entry, nil)

	got, err := svc.GetEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry, got)
	// The cache stays untouched.
	assert.Equal(t, models.FeedIdle, svc.State())
}

func TestClientJournal_GetEntry_NotAuthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockSession := newTestClientJournal(t, ctrl)

	mockSession.EXPECT().Identity().Return(nil)

	_, err := svc.GetEntry(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClientJournal_MutationGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSession := newTestClientJournal(t, ctrl)

	mockSession.EXPECT().Identity().Return(someIdentity()).AnyTimes()

	started := make(chan struct{})
	release := make(chan struct{})
	mockAdapter.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.EntryDraft) (models.JournalEntry, error) {
			close(started)
			<-release
			return models.JournalEntry{ID: uuid.New()}, nil
		},
	)

	errs := make(chan error, 1)
	go func() {
		_, err := svc.CreateEntry(context.Background(), models.EntryDraft{Title: "a", Content: "b"})
		errs <- err
	}()

	<-started
	_, err := svc.CreateEntry(context.Background(), models.EntryDraft{Title: "c", Content: "d"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOperationInFlight)

	close(release)
	require.NoError(t, <-errs)
}

func TestClientJournal_Run_IdentityChangeDrivesFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSession := newTestClientJournal(t, ctrl)

	var onChange func(*models.Identity)
	mockSession.EXPECT().Subscribe(gomock.Any()).DoAndReturn(
		func(fn func(*models.Identity)) func() {
			onChange = fn
			return func() {}
		},
	)
	svc.Run()
	require.NotNil(t, onChange)

	// Sign-in: the feed refetches for the new identity.
	fetched := make(chan struct{})
	mockSession.EXPECT().Identity().Return(someIdentity())
	mockAdapter.EXPECT().ListEntries(gomock.Any()).DoAndReturn(
		func(context.Context) ([]models.JournalEntry, error) {
			defer close(fetched)
			return feedOf("mine"), nil
		},
	)

	onChange(someIdentity())
	select {
	case <-fetched:
	case <-time.After(time.Second):
		t.Fatal("no refetch after sign-in")
	}

	require.Eventually(t, func() bool {
		return len(svc.Entries()) == 1
	}, time.Second, 10*time.Millisecond)

	// Sign-out: the cache resets immediately, no remote call.
	onChange(nil)
	assert.Empty(t, svc.Entries())
	assert.Equal(t, models.FeedReady, svc.State())
}
