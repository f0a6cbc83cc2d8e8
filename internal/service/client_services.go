package service

import (
	"github.com/rmorgan-dev/folio/internal/adapter"
	"github.com/rmorgan-dev/folio/internal/config"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/store"
)

// ClientServices aggregates the client-side services.
type ClientServices struct {
	Session ClientSessionService
	Journal ClientJournalService
}

// NewClientServices wires the client services on top of the server adapter
// and the local session store. The journal feed subscribes to the session so
// identity changes propagate automatically.
func NewClientServices(server adapter.ServerAdapter, sessions store.SessionStore, cfg config.Client, log *logger.Logger) *ClientServices {
	session := NewClientSessionService(server, sessions, cfg, log)
	journal := NewClientJournalService(server, session, cfg, log)
	journal.Run()

	return &ClientServices{Session: session, Journal: journal}
}
