package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store on a single SQLite database file.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the database at dbDir/dbFile
// and makes sure the schema exists.
func NewSQLiteStore(dbDir, dbFile string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory '%s': %w", dbDir, err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// One connection keeps the single-writer model and the foreign key pragma intact.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set SQLite synchronous pragma: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify database connection: %w", err)
	}

	store := &SQLiteStore{db: db, now: time.Now}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS authors (
			name TEXT PRIMARY KEY,
			password_hash BLOB,
			created INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS graphs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created INTEGER NOT NULL,
			updated INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS posts (
			graph_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			id TEXT NOT NULL,
			parent_id TEXT,
			destination_id TEXT,
			text TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			auxiliary INTEGER NOT NULL DEFAULT 0,
			author TEXT NOT NULL DEFAULT '',
			timestamp INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (graph_id, id),
			UNIQUE (graph_id, seq),
			FOREIGN KEY (graph_id) REFERENCES graphs(id) ON DELETE CASCADE
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Close checkpoints the write-ahead log and closes the database.
func (s *SQLiteStore) Close() error {
	var result error
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to checkpoint SQLite database: %w", err))
	}
	if err := s.db.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to close SQLite database: %w", err))
	}
	return result
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func timeOrZero(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
