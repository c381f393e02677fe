package session

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// recordKey is the fixed name the session record is stored under, the local
// analogue of a browser's "auth-storage" localStorage entry.
const recordKey = "auth-storage"

// SQLiteStorage persists the session record in a local key-value table.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the client database at dsn and runs
// the embedded migrations. The caller owns Close.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening client db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating client db: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

func (s *SQLiteStorage) Load(ctx context.Context) (*Record, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM storage WHERE key = ?`, recordKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(value, &rec); err != nil {
		// A record we cannot parse is the same as no session.
		return nil, nil
	}
	return &rec, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, rec *Record) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode session record: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, recordKey, value)
	if err != nil {
		return fmt.Errorf("failed to save session record: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM storage WHERE key = ?`, recordKey)
	if err != nil {
		return fmt.Errorf("failed to clear session record: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
