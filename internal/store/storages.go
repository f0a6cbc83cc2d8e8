package store

import (
	"context"
	"fmt"

	"github.com/rmorgan-dev/folio/internal/config"
	"github.com/rmorgan-dev/folio/internal/logger"
)

// Storages groups all server-side repositories into a single value that can
// be passed to the service layer.
type Storages struct {
	UserRepository    UserRepository
	JournalRepository JournalRepository
	ProjectStore      *ProjectStore
}

// NewStorages initialises the server storage layer: it opens the PostgreSQL
// connection, runs pending schema migrations, and wires the repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		JournalRepository: NewJournalRepository(db, logger),
		ProjectStore:      NewProjectStore(),
	}, nil
}
