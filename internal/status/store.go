// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package status persists the conversion service's per-upload records in
// SQLite so they survive restarts and can be swept by age.
package status

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/doc2md/pkg/types"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("conversion not found")

// Store manages the conversion status database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the status database at path, creating its parent
// directory and the schema when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			input_file TEXT NOT NULL,
			output_file TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Create inserts a new record in the processing state.
func (s *Store) Create(ctx context.Context, id, inputFile string, createdAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, status, input_file, created_at) VALUES (?, ?, ?, ?)`,
		id, string(types.ConversionProcessing), inputFile, createdAt.UnixNano())
	if err != nil {
		return fmt.Errorf("creating conversion %s: %w", id, err)
	}
	return nil
}

// MarkCompleted records a successful conversion and its stored output name.
func (s *Store) MarkCompleted(ctx context.Context, id, outputFile string) error {
	return s.update(ctx, id, types.ConversionCompleted, outputFile)
}

// MarkFailed records a failed conversion.
func (s *Store) MarkFailed(ctx context.Context, id string) error {
	return s.update(ctx, id, types.ConversionFailed, "")
}

func (s *Store) update(ctx context.Context, id string, st types.ConversionStatus, outputFile string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE conversions SET status = ?, output_file = ? WHERE id = ?`,
		string(st), outputFile, id)
	if err != nil {
		return fmt.Errorf("updating conversion %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating conversion %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("updating conversion %s: %w", id, ErrNotFound)
	}
	return nil
}

// Get returns the record for id, or an error matching ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (types.ConversionRecord, error) {
	var (
		rec     types.ConversionRecord
		st      string
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, status, input_file, output_file, created_at FROM conversions WHERE id = ?`, id,
	).Scan(&rec.ID, &st, &rec.InputFile, &rec.OutputFile, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ConversionRecord{}, fmt.Errorf("conversion %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return types.ConversionRecord{}, fmt.Errorf("querying conversion %s: %w", id, err)
	}
	rec.Status = types.ConversionStatus(st)
	rec.CreatedAt = time.Unix(0, created).UTC()
	return rec, nil
}

// DeleteOlderThan removes records created before cutoff and returns how
// many were removed.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM conversions WHERE created_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("deleting expired conversions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting expired conversions: %w", err)
	}
	return n, nil
}
