// Package archive keeps recovered histories in a SQLite database so many
// containers can be searched together.
package archive

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var migrations = []string{
	`
CREATE TABLE IF NOT EXISTS imports (
  import_id    TEXT PRIMARY KEY,
  source       TEXT NOT NULL,
  imported_at  INTEGER NOT NULL
);
`,
	`
CREATE TABLE IF NOT EXISTS histories (
  id                 INTEGER PRIMARY KEY AUTOINCREMENT,
  import_id          TEXT NOT NULL REFERENCES imports(import_id) ON DELETE CASCADE,
  uin                TEXT NOT NULL,
  nick               TEXT NOT NULL,
  msg_quantity       INTEGER NOT NULL,
  container_size     INTEGER NOT NULL,
  decode_failures    INTEGER NOT NULL DEFAULT 0
);
`,
	`
CREATE TABLE IF NOT EXISTS messages (
  history_id     INTEGER NOT NULL REFERENCES histories(id) ON DELETE CASCADE,
  seq            INTEGER NOT NULL,
  stored_number  INTEGER NOT NULL,
  timestamp      INTEGER NOT NULL,
  sent           INTEGER NOT NULL CHECK(sent IN (0, 1)),
  text           TEXT NOT NULL,
  decode_failed  INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (history_id, seq)
);
`,
	`
CREATE INDEX IF NOT EXISTS idx_histories_uin
ON histories (uin, id);
`,
	`
CREATE INDEX IF NOT EXISTS idx_messages_time
ON messages (timestamp, history_id, seq);
`,
}

// ErrNotFound indicates a missing history.
var ErrNotFound = errors.New("archive: not found")

// Store is a thin wrapper around a SQLite connection.
type Store struct {
	db        *sql.DB
	closeOnce sync.Once
}

// Open opens (or creates) the archive at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", filepath.ToSlash(dbPath))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.enableWALMode(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.applyMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	var closeErr error
	s.closeOnce.Do(func() {
		closeErr = s.db.Close()
	})
	return closeErr
}

func (s *Store) applyMigrations() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version >= len(migrations) {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i := version; i < len(migrations); i++ {
		if _, err := tx.Exec(migrations[i]); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d;", i+1)); err != nil {
			return fmt.Errorf("set schema version %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration transaction: %w", err)
	}

	return nil
}

func (s *Store) enableWALMode() error {
	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode=WAL;").Scan(&journalMode); err != nil {
		return fmt.Errorf("enable WAL mode: %w", err)
	}
	if !strings.EqualFold(journalMode, "wal") {
		return fmt.Errorf("enable WAL mode: unexpected journal mode %q", journalMode)
	}
	return nil
}
