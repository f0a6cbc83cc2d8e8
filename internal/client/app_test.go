// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/mock"
	"github.com/rmorgan-dev/folio/internal/service"
	"github.com/rmorgan-dev/folio/models"
)

type appMocks struct {
	session *mock.MockClientSessionService
	journal *mock.MockClientJournalService
}

func newTestApp(t *testing.T, ctrl *gomock.Controller) (*App, appMocks, *strings.Builder) {
	t.Helper()

	mocks := appMocks{
		session: mock.NewMockClientSessionService(ctrl),
		journal: mock.NewMockClientJournalService(ctrl),
	}

	app, err := NewApp(&service.ClientServices{
		Session: mocks.session,
		Journal: mocks.journal,
	}, logger.Nop())
	require.NoError(t, err)

	out := &strings.Builder{}
	app.out = out
	return app, mocks, out
}

func TestNewApp_RequiresServices(t *testing.T) {
	_, err := NewApp(nil, logger.Nop())
	assert.Error(t, err)
}

func TestDispatch_SignIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mocks, out := newTestApp(t, ctrl)
	mocks.session.EXPECT().SignIn(gomock.Any(), "rae@example.com", "hunter2").
		Return(models.Identity{Email: "rae@example.com"}, nil)

	quit := app.dispatch(context.Background(), "signin rae@example.com hunter2", nil)

	assert.False(t, quit)
	assert.Contains(t, out.String(), "signed in as rae@example.com")
}

func TestDispatch_SignIn_Usage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, _, out := newTestApp(t, ctrl)

	app.dispatch(context.Background(), "signin rae@example.com", nil)

	assert.Contains(t, out.String(), "usage: signin")
}

func TestDispatch_WhoAmI_NotSignedIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mocks, out := newTestApp(t, ctrl)
	mocks.session.EXPECT().Identity().Return(nil)

	app.dispatch(context.Background(), "whoami", nil)

	assert.Contains(t, out.String(), "not signed in")
}

func TestDispatch_List_ShowsEntriesNewestFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mocks, out := newTestApp(t, ctrl)
	mocks.journal.EXPECT().State().Return(models.FeedReady)
	mocks.journal.EXPECT().Entries().Return([]models.JournalEntry{
		{ID: uuid.New(), Title: "newest"},
		{ID: uuid.New(), Title: "oldest"},
	})

	app.dispatch(context.Background(), "list", nil)

	output := out.String()
	assert.Less(t, strings.Index(output, "newest"), strings.Index(output, "oldest"))
}

func TestDispatch_List_ErroredFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mocks, out := newTestApp(t, ctrl)
	mocks.journal.EXPECT().State().Return(models.FeedErrored)
	mocks.journal.EXPECT().Err().Return(errors.New("server unreachable"))

	app.dispatch(context.Background(), "list", nil)

	assert.Contains(t, out.String(), "server unreachable")
}

func TestDispatch_New_ReadsContentLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mocks, out := newTestApp(t, ctrl)
	entryID := uuid.New()
	mocks.journal.EXPECT().CreateEntry(gomock.Any(), models.EntryDraft{
		Title:   "first post",
		Content: "hello world",
	}).Return(models.JournalEntry{ID: entryID, Title: "first post"}, nil)

	lines := make(chan string, 1)
	lines <- "hello world"

	app.dispatch(context.Background(), "new first post", lines)

	assert.Contains(t, out.String(), "created "+entryID.String())
}

func TestDispatch_Remove_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, _, out := newTestApp(t, ctrl)

	app.dispatch(context.Background(), "rm not-a-uuid", nil)

	assert.Contains(t, out.String(), "invalid entry id")
}

func TestDispatch_Quit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, _, _ := newTestApp(t, ctrl)

	assert.True(t, app.dispatch(context.Background(), "quit", nil))
	assert.True(t, app.dispatch(context.Background(), "exit", nil))
}

func TestDispatch_UnknownCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, _, out := newTestApp(t, ctrl)

	app.dispatch(context.Background(), "frobnicate", nil)

	assert.Contains(t, out.String(), "unknown command")
}
