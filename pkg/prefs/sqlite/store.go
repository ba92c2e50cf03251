// Package sqlite keeps preferred layouts in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/matzehuels/stenoboard/pkg/prefs"
	"github.com/matzehuels/stenoboard/pkg/prefs/sqlite/migrations"
)

// Store is a prefs.Store backed by one SQLite table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at filename and migrates it.
func Open(filename string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := migrations.Migrate(db, logger); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, system string) (string, bool, error) {
	var path string
	err := s.db.QueryRowContext(ctx,
		`SELECT path FROM preferred_layouts WHERE system = ?`, system).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite select: %w", err)
	}
	return path, true, nil
}

func (s *Store) Set(ctx context.Context, system, path string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferred_layouts (system, path, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(system) DO UPDATE SET path = excluded.path, updated_at = excluded.updated_at`,
		system, path)
	if err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, system string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferred_layouts WHERE system = ?`, system); err != nil {
		return fmt.Errorf("sqlite delete: %w", err)
	}
	return nil
}

func (s *Store) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT system, path FROM preferred_layouts`)
	if err != nil {
		return nil, fmt.Errorf("sqlite select: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var system, path string
		if err := rows.Scan(&system, &path); err != nil {
			return nil, fmt.Errorf("sqlite scan: %w", err)
		}
		out[system] = path
	}
	return out, rows.Err()
}

var _ prefs.Store = (*Store)(nil)
