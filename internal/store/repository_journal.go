package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/models"
)

// psql builds parameterised queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var journalColumns = []string{"id", "user_id", "title", "content", "mood", "tags", "is_private", "created_at", "updated_at"}

// journalRepository is the PostgreSQL-backed implementation of
// [JournalRepository]. All queries carry a compound (id AND user_id) filter
// on single-row operations so that a stale or guessed id can never read or
// mutate another user's entry.
type journalRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewJournalRepository constructs a [JournalRepository] backed by the
// provided database connection and logger.
func NewJournalRepository(db *DB, logger *logger.Logger) JournalRepository {
	logger.Debug().Msg("creating journal repository")
	return &journalRepository{
		db:     db,
		logger: logger,
	}
}

// ListByOwner implements [JournalRepository]. The ORDER BY created_at DESC is
// part of the API contract: clients display the result as-is and never
// re-sort it.
func (r *journalRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select(journalColumns...).
		From("journal_entries").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*journalRepository.ListByOwner").Msg("error: list query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Err(err).Str("func", "*journalRepository.ListByOwner").Msg("error: scanning row failed")
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return entries, nil
}

// Create implements [JournalRepository]. The id and both timestamps are
// assigned by the database; is_private defaults to true when the draft
// leaves it unset.
func (r *journalRepository) Create(ctx context.Context, userID uuid.UUID, draft models.EntryDraft) (models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	isPrivate := true
	if draft.IsPrivate != nil {
		isPrivate = *draft.IsPrivate
	}

	tags, err := marshalTags(draft.Tags)
	if err != nil {
		return models.JournalEntry{}, err
	}

	query, args, err := psql.
		Insert("journal_entries").
		Columns("user_id", "title", "content", "mood", "tags", "is_private").
		Values(userID, draft.Title, draft.Content, draft.Mood, tags, isPrivate).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("build insert query: %w", err)
	}

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*journalRepository.Create").Msg("error: entry insert failed")
		return models.JournalEntry{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return entry, nil
}

// Get implements [JournalRepository].
func (r *journalRepository) Get(ctx context.Context, id, userID uuid.UUID) (models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select(journalColumns...).
		From("journal_entries").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("build get query: %w", err)
	}

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JournalEntry{}, ErrEntryNotFound
		}

		log.Err(err).Str("func", "*journalRepository.Get").Msg("error: entry lookup failed")
		return models.JournalEntry{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return entry, nil
}

// Update implements [JournalRepository]. Only the fields present in patch are
// written; updated_at is always re-stamped by the database.
func (r *journalRepository) Update(ctx context.Context, id, userID uuid.UUID, patch models.EntryPatch) (models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	if patch.Empty() {
		return models.JournalEntry{}, ErrEmptyPatch
	}

	builder := psql.
		Update("journal_entries").
		Set("updated_at", sq.Expr("NOW()"))

	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.Content != nil {
		builder = builder.Set("content", *patch.Content)
	}
	if patch.Mood != nil {
		builder = builder.Set("mood", *patch.Mood)
	}
	if patch.Tags != nil {
		tags, err := marshalTags(*patch.Tags)
		if err != nil {
			return models.JournalEntry{}, err
		}
		builder = builder.Set("tags", tags)
	}
	if patch.IsPrivate != nil {
		builder = builder.Set("is_private", *patch.IsPrivate)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("build update query: %w", err)
	}

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JournalEntry{}, ErrEntryNotFound
		}

		log.Err(err).Str("func", "*journalRepository.Update").Msg("error: entry update failed")
		return models.JournalEntry{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return entry, nil
}

// Delete implements [JournalRepository].
func (r *journalRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Delete("journal_entries").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*journalRepository.Delete").Msg("error: entry delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// rowScanner is the subset of *sql.Row and *sql.Rows used by scanEntry.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.JournalEntry, error) {
	var entry models.JournalEntry
	var mood sql.NullString
	var tagsRaw []byte

	err := row.Scan(&entry.ID, &entry.UserID, &entry.Title, &entry.Content, &mood, &tagsRaw, &entry.IsPrivate, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return models.JournalEntry{}, err
	}

	entry.Mood = mood.String
	if len(tagsRaw) > 0 {
		if err := json.Unmarshal(tagsRaw, &entry.Tags); err != nil {
			return models.JournalEntry{}, fmt.Errorf("decode tags: %w", err)
		}
	}

	return entry, nil
}

// marshalTags serialises the tag list for the jsonb column. A nil slice is
// stored as an empty array, not NULL.
func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return raw, nil
}

func columnList() string {
	list := journalColumns[0]
	for _, c := range journalColumns[1:] {
		list += ", " + c
	}
	return list
}
