package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/dbx"
)

// created_at is stored as Unix seconds so both dialects round-trip it
// without driver-specific time parsing.
const entryColumns = `id, title, author, created_at, public, text`

type EntryRepository struct {
	db dbx.DBTX
}

func NewEntryRepository(db dbx.DBTX) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Create(ctx context.Context, entry *domain.DiaryEntry) (int64, error) {
	query :=
		`INSERT INTO diary_entries (title, author, created_at, public, text)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		entry.Title, entry.Author, entry.CreatedAt.Unix(), entry.Public, entry.Text).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *EntryRepository) FindByID(ctx context.Context, id int64) (*domain.DiaryEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM diary_entries WHERE id = $1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

func (r *EntryRepository) ListPublic(ctx context.Context) ([]domain.DiaryEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM diary_entries WHERE public = TRUE ORDER BY id`
	return r.list(ctx, query)
}

func (r *EntryRepository) ListByAuthor(ctx context.Context, author string) ([]domain.DiaryEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM diary_entries WHERE author = $1 ORDER BY id`
	return r.list(ctx, query, author)
}

func (r *EntryRepository) SetVisibility(ctx context.Context, id int64, author string, public bool) error {
	query :=
		`UPDATE diary_entries SET public = $1
		 WHERE id = $2 AND author = $3`

	res, err := r.db.ExecContext(ctx, query, public, id, author)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res, domain.ErrNotFoundOrForbidden)
}

func (r *EntryRepository) Delete(ctx context.Context, id int64, author string) error {
	query :=
		`DELETE FROM diary_entries
		 WHERE id = $1 AND author = $2`

	res, err := r.db.ExecContext(ctx, query, id, author)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res, domain.ErrNotFoundOrForbidden)
}

func (r *EntryRepository) list(ctx context.Context, query string, args ...any) ([]domain.DiaryEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	entries := []domain.DiaryEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*domain.DiaryEntry, error) {
	var (
		entry   domain.DiaryEntry
		created int64
	)
	if err := s.Scan(&entry.ID, &entry.Title, &entry.Author, &created, &entry.Public, &entry.Text); err != nil {
		return nil, err
	}
	entry.CreatedAt = time.Unix(created, 0).UTC()
	return &entry, nil
}
