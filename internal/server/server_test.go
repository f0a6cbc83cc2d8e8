// SPDX-License-Identifier: Apache-2.0

package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rmorgan-dev/folio/internal/config"
	myHTTP "github.com/rmorgan-dev/folio/internal/handler/http"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/mock"
	"github.com/rmorgan-dev/folio/internal/service"
)

func testHandler(t *testing.T) *myHTTP.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	svcs := &service.Services{
		AuthService:    mock.NewMockAuthService(ctrl),
		JournalService: mock.NewMockJournalService(ctrl),
		ProjectService: mock.NewMockProjectService(ctrl),
	}
	return myHTTP.NewHandler(svcs, logger.Nop())
}

func TestNewServer_RequiresAddress(t *testing.T) {
	_, err := NewServer(testHandler(t), config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServerAddress)
}

func TestNewServer_Success(t *testing.T) {
	srv, err := NewServer(testHandler(t), config.Server{HTTPAddress: "localhost:0"}, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, srv)
}
