package service

import (
	"github.com/rmorgan-dev/folio/internal/config"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/store"
)

// Services aggregates all server-side business services.
type Services struct {
	AuthService
	JournalService
	ProjectService
}

// NewServices wires the services on top of the storage layer.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg, log),
		JournalService: NewJournalService(storages.JournalRepository, log),
		ProjectService: NewProjectService(storages.ProjectStore, log),
	}
}
