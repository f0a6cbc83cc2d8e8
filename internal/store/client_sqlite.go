package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rmorgan-dev/folio/internal/logger"
)

// The session table holds at most one row. The CHECK constraint makes the
// single-row invariant a schema property instead of application logic.
const createSessionTable = `CREATE TABLE IF NOT EXISTS session (
    id       INTEGER PRIMARY KEY CHECK (id = 1),
    token    TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// sqliteSessionStore is the SQLite-backed implementation of [SessionStore].
type sqliteSessionStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSessionStore opens (creating if necessary) the SQLite database at path
// and ensures the session table exists. Pass ":memory:" for a non-persistent
// store, e.g. in tests.
func NewSessionStore(path string, log *logger.Logger) (SessionStore, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if _, err := db.Exec(createSessionTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session table: %w", err)
	}

	log.Debug().Str("path", path).Msg("client session store opened")
	return &sqliteSessionStore{db: db, logger: log}, nil
}

// SaveToken implements [SessionStore].
func (s *sqliteSessionStore) SaveToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session (id, token, saved_at) VALUES (1, ?, CURRENT_TIMESTAMP)
         ON CONFLICT(id) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at;`,
		token)
	if err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	return nil
}

// LoadToken implements [SessionStore].
func (s *sqliteSessionStore) LoadToken(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM session WHERE id = 1;`).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrLocalSessionNotFound
		}
		return "", fmt.Errorf("load session token: %w", err)
	}
	if token == "" {
		return "", ErrLocalSessionNotFound
	}

	return token, nil
}

// ClearToken implements [SessionStore].
func (s *sqliteSessionStore) ClearToken(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1;`); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// Close implements [SessionStore].
func (s *sqliteSessionStore) Close() error {
	return s.db.Close()
}
