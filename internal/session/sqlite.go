package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS session_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteKV implements KV on a SQLite database.
type SQLiteKV struct {
	db     *sql.DB
	logger *slog.Logger
}

// DefaultDBPath returns the default session database location,
// ~/.taskdeck/taskdeck.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".taskdeck", "taskdeck.db"), nil
}

// NewSQLiteKV opens (or creates) a SQLite database at dbPath and
// prepares the session schema. Use ":memory:" for tests. The parent
// directory is created when missing.
func NewSQLiteKV(dbPath string, logger *slog.Logger) (*SQLiteKV, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session schema: %w", err)
	}

	return &SQLiteKV{db: db, logger: logger.With("component", "session-kv")}, nil
}

// Get reads the value for key. ok is false when the key is absent.
func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	s.logger.Debug("sql", "op", "select", "key", key)

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set writes key to value, replacing any existing entry.
func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	s.logger.Debug("sql", "op", "upsert", "key", key)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	s.logger.Debug("sql", "op", "delete", "key", key)

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_state WHERE key = ?`, key)
	return err
}

// Close closes the underlying database connection.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
