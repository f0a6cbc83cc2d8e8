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

	"github.com/rmorgan-dev/folio/internal/adapter"
	"github.com/rmorgan-dev/folio/internal/config"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/mock"
	"github.com/rmorgan-dev/folio/internal/store"
	"github.com/rmorgan-dev/folio/models"
)

func testClientConfig() config.Client {
	return config.Client{
		RequestTimeout:      time.Second,
		FetchTimeout:        time.Second,
		SessionPollInterval: time.Minute,
	}
}

func newTestClientSession(t *testing.T, ctrl *gomock.Controller) (*ClientSession, *mock.MockServerAdapter, *mock.MockSessionStore) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockSessions := mock.NewMockSessionStore(ctrl)

	svc := NewClientSessionService(mockAdapter, mockSessions, testClientConfig(), logger.Nop())
	return svc, mockAdapter, mockSessions
}

func TestClientSession_Run_NoPersistedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestClientSession(t, ctrl)
	ctx := context.Background()

	mockSessions.EXPECT().LoadToken(ctx).Return("", store.ErrLocalSessionNotFound)
	mockAdapter.EXPECT().SubscribeSession(time.Minute, gomock.Any()).Return(mock.NewMockSubscription(ctrl))

	require.NoError(t, svc.Run(ctx))
	assert.Nil(t, svc.Identity())
}

func TestClientSession_Run_PersistedTokenAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestClientSession(t, ctrl)
	ctx := context.Background()
	identity := models.Identity{ID: uuid.New(), Email: "alice@example.com"}

	gomock.InOrder(
		mockSessions.EXPECT().LoadToken(ctx).Return("persisted-token", nil),
		mockAdapter.EXPECT().SetToken("persisted-token"),
		mockAdapter.EXPECT().Session(ctx).Return(identity, nil),
		mockAdapter.EXPECT().SubscribeSession(time.Minute, gomock.Any()).Return(mock.NewMockSubscription(ctrl)),
	)

	require.NoError(t, svc.Run(ctx))
	require.NotNil(t, svc.Identity())
	assert.Equal(t, identity.ID, svc.Identity().ID)
}

func TestClientSession_Run_PersistedTokenRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestClientSession(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockSessions.EXPECT().LoadToken(ctx).Return("stale-token", nil),
		mockAdapter.EXPECT().SetToken("stale-token"),
		mockAdapter.EXPECT().Session(ctx).Return(models.Identity{}, adapter.ErrUnauthorized),
		mockAdapter.EXPECT().SetToken(""),
		mockSessions.EXPECT().ClearToken(ctx).Return(nil),
		mockAdapter.EXPECT().SubscribeSession(time.Minute, gomock.Any()).Return(mock.NewMockSubscription(ctrl)),
	)

	require.NoError(t, svc.Run(ctx))
	assert.Nil(t, svc.Identity())
}

func TestClientSession_Run_KeepsTokenWhenServerUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestClientSession(t, ctrl)
	ctx := context.Background()

	// No SetToken("") and no ClearToken expectation: a failed reachability
	// check must not discard the persisted session.
	gomock.InOrder(
		mockSessions.EXPECT().LoadToken(ctx).Return("persisted-token", nil),
		mockAdapter.EXPECT().SetToken("persisted-token"),
		mockAdapter.EXPECT().Session(ctx).Return(models.Identity{}, errors.New("connection refused")),
		mockAdapter.EXPECT().SubscribeSession(time.Minute, gomock.Any()).Return(mock.NewMockSubscription(ctrl)),
	)

	require.NoError(t, svc.Run(ctx))
	assert.Nil(t, svc.Identity())
}

func TestClientSession_SignIn_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestClientSession(t, ctrl)
	ctx := context.Background()
	identity := models.Identity{ID: uuid.New(), Email: "alice@example.com"}

	var notified *models.Identity
	svc.Subscribe(func(id *models.Identity) { notified = id })

	gomock.InOrder(
		mockAdapter.EXPECT().Login(ctx, models.User{Email: "alice@example.com", Password: "password1"}).Return(identity, nil),
		mockAdapter.EXPECT().Token().Return("fresh-token"),
		mockSessions.EXPECT().SaveToken(ctx, "fresh-token").Return(nil),
	)

	got, err := svc.SignIn(ctx, "alice@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, identity, got)

	require.NotNil(t, svc.Identity())
	assert.Equal(t, identity.ID, svc.Identity().ID)
	require.NotNil(t, notified)
	assert.Equal(t, identity.ID, notified.ID)
	assert.False(t, svc.Busy())
}

func TestClientSession_SignIn_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestClientSession(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.Identity{}, adapter.ErrUnauthorized)

	_, err := svc.SignIn(ctx, "alice@example.com", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Nil(t, svc.Identity())
}

func TestClientSession_SignUp_DoesNotAuthenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestClientSession(t, ctrl)
	ctx := context.Background()
	identity := models.Identity{ID: uuid.New(), Email: "bob@example.com", Username: "bob"}

	mockAdapter.EXPECT().
		Register(ctx, models.User{Email: "bob@example.com", Password: "password1", Username: "bob"}).
		Return(identity, nil)

	got, err := svc.SignUp(ctx, "bob@example.com", "password1", models.Profile{Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, identity, got)

	// Registration must leave the client signed out.
	assert.Nil(t, svc.Identity())
}

func TestClientSession_SignOut_ClearsLocallyThenRevokesRemotely(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestClientSession(t, ctrl)
	ctx := context.Background()
	identity := models.Identity{ID: uuid.New(), Email: "alice@example.com"}

	// Establish a session first.
	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(identity, nil)
	mockAdapter.EXPECT().Token().Return("live-token")
	mockSessions.EXPECT().SaveToken(ctx, "live-token").Return(nil)
	_, err := svc.SignIn(ctx, "alice@example.com", "password1")
	require.NoError(t, err)

	revoked := make(chan string, 1)
	mockAdapter.EXPECT().Token().Return("live-token")
	mockAdapter.EXPECT().SetToken("")
	mockSessions.EXPECT().ClearToken(ctx).Return(nil)
	mockAdapter.EXPECT().Logout(gomock.Any(), "live-token").DoAndReturn(
		func(_ context.Context, token string) error {
			revoked <- token
			return nil
		},
	)

	require.NoError(t, svc.SignOut(ctx))

	// Local state is gone before remote revocation completes.
	assert.Nil(t, svc.Identity())

	select {
	case token := <-revoked:
		assert.Equal(t, "live-token", token)
	case <-time.After(time.Second):
		t.Fatal("remote revocation was never attempted")
	}
}

func TestClientSession_SignOut_RemoteFailureStaysSignedOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestClientSession(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.Identity{ID: uuid.New()}, nil)
	mockAdapter.EXPECT().Token().Return("live-token")
	mockSessions.EXPECT().SaveToken(ctx, "live-token").Return(nil)
	_, err := svc.SignIn(ctx, "alice@example.com", "password1")
	require.NoError(t, err)

	done := make(chan struct{})
	mockAdapter.EXPECT().Token().Return("live-token")
	mockAdapter.EXPECT().SetToken("")
	mockSessions.EXPECT().ClearToken(ctx).Return(nil)
	mockAdapter.EXPECT().Logout(gomock.Any(), "live-token").DoAndReturn(
		func(context.Context, string) error {
			close(done)
			return errors.New("server unreachable")
		},
	)

	require.NoError(t, svc.SignOut(ctx))
	<-done
	assert.Nil(t, svc.Identity())
}

func TestClientSession_SignOut_NoActiveSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestClientSession(t, ctrl)

	mockAdapter.EXPECT().Token().Return("")

	err := svc.SignOut(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestClientSession_ClearAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestClientSession(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.Identity{ID: uuid.New()}, nil)
	mockAdapter.EXPECT().Token().Return("live-token")
	mockSessions.EXPECT().SaveToken(ctx, "live-token").Return(nil)
	_, err := svc.SignIn(ctx, "alice@example.com", "password1")
	require.NoError(t, err)

	mockAdapter.EXPECT().SetToken("")
	mockSessions.EXPECT().ClearToken(ctx).Return(nil)

	svc.ClearAuth(ctx)
	assert.Nil(t, svc.Identity())
}

func TestClientSession_Subscribe_UnsubscribeStopsNotifications(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestClientSession(t, ctrl)
	ctx := context.Background()

	calls := 0
	unsubscribe := svc.Subscribe(func(*models.Identity) { calls++ })
	unsubscribe()
	unsubscribe() // repeated calls are harmless

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.Identity{ID: uuid.New()}, nil)
	mockAdapter.EXPECT().Token().Return("live-token")
	mockSessions.EXPECT().SaveToken(ctx, "live-token").Return(nil)
	_, err := svc.SignIn(ctx, "alice@example.com", "password1")
	require.NoError(t, err)

	assert.Zero(t, calls)
}

func TestClientSession_Close_StopsWatchAndStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestClientSession(t, ctrl)
	ctx := context.Background()
	sub := mock.NewMockSubscription(ctrl)

	mockSessions.EXPECT().LoadToken(ctx).Return("", store.ErrLocalSessionNotFound)
	mockAdapter.EXPECT().SubscribeSession(time.Minute, gomock.Any()).Return(sub)
	require.NoError(t, svc.Run(ctx))

	sub.EXPECT().Unsubscribe()
	mockSessions.EXPECT().Close().Return(nil)
	require.NoError(t, svc.Close())
}
