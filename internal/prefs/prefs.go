// Package prefs persists small user preferences (theme, layout and the last
// filter) in a local SQLite database.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Keys stored by the session.
const (
	KeyThemeMode        = "theme.mode"
	KeyLayout           = "ui.layout"
	KeyFilterMaxAgeDays = "filter.max_age_days"
	KeyFilterPriority   = "filter.priority"
	KeyFilterVisibility = "filter.visibility"
)

type entry struct {
	Key       string `db:"key"`
	Value     string `db:"value"`
	UpdatedAt int64  `db:"updated_at"`
}

// Store is a key-value preference table.
type Store struct {
	db *sqlx.DB
	mu sync.Mutex
}

// Open opens (or creates) the preference database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating prefs directory: %w", err)
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening prefs db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `
		CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating prefs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the stored value for key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, nil
	}

	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM prefs WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading pref %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if s == nil || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO prefs (key, value, updated_at)
		VALUES (:key, :value, :updated_at)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, entry{Key: key, Value: value, UpdatedAt: time.Now().Unix()})
	if err != nil {
		return fmt.Errorf("writing pref %q: %w", key, err)
	}
	return nil
}

// All returns every stored preference.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string)
	if s == nil || s.db == nil {
		return out, nil
	}

	var entries []entry
	if err := s.db.SelectContext(ctx, &entries, `SELECT key, value, updated_at FROM prefs ORDER BY key`); err != nil {
		return nil, fmt.Errorf("listing prefs: %w", err)
	}
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return out, nil
}

// Clear removes every stored preference.
func (s *Store) Clear(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM prefs`); err != nil {
		return fmt.Errorf("clearing prefs: %w", err)
	}
	return nil
}
