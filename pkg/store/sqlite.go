package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Timestamps are stored as Unix seconds.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS acronyms (
    term       TEXT PRIMARY KEY,
    definition TEXT NOT NULL,
    added_by   TEXT NOT NULL DEFAULT '',
    added_at   INTEGER NOT NULL
)`

type sqlite struct {
	db *sql.DB
}

// NewSQLite initializes a [Store] backed by a local SQLite database
// file, creating both the file and its schema if needed. This is the
// default backend: a single-binary bot with a single-file database.
func NewSQLite(path string) (Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database %q: %w", path, err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize SQLite schema: %w", err)
	}

	return &sqlite{db: db}, nil
}

func (s *sqlite) Get(ctx context.Context, acronym string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT term, definition, added_by, added_at FROM acronyms WHERE term = ?`,
		Normalize(acronym))

	var e Entry
	var addedAt int64
	err := row.Scan(&e.Acronym, &e.Definition, &e.AddedBy, &addedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read acronym: %w", err)
	}

	e.AddedAt = time.Unix(addedAt, 0).UTC()
	return e, nil
}

func (s *sqlite) Put(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO acronyms (term, definition, added_by, added_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (term) DO UPDATE SET
		     definition = excluded.definition,
		     added_by   = excluded.added_by,
		     added_at   = excluded.added_at`,
		Normalize(e.Acronym), e.Definition, e.AddedBy, e.AddedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save acronym: %w", err)
	}
	return nil
}

func (s *sqlite) Delete(ctx context.Context, acronym string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM acronyms WHERE term = ?`, Normalize(acronym))
	if err != nil {
		return fmt.Errorf("failed to delete acronym: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete acronym: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqlite) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT term, definition, added_by, added_at FROM acronyms ORDER BY term ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list acronyms: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var addedAt int64
		if err := rows.Scan(&e.Acronym, &e.Definition, &e.AddedBy, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to list acronyms: %w", err)
		}
		e.AddedAt = time.Unix(addedAt, 0).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list acronyms: %w", err)
	}
	return entries, nil
}

func (s *sqlite) Close() error {
	return s.db.Close()
}
