// internal/adapters/out/localkv/sqlite_store.go
package localkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	appsession "atelier/internal/application/session"
)

// SQLiteStore is the durable snapshot store: one sqlite file, one key/value
// table. It is the storefront's stand-in for browser local storage, so the
// schema stays deliberately dumb — opaque JSON documents keyed by slice name.
type SQLiteStore struct {
	db *sql.DB
}

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// Open opens (or creates) the snapshot database at path.
func Open(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("localkv: db path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localkv: open sqlite: %w", err)
	}

	// single writer; the session dispatches serially anyway
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(snapshotSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("localkv: init schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil || s.db == nil {
		return nil, false, errors.New("localkv: store is not open")
	}

	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM snapshots WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("localkv: get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	if s == nil || s.db == nil {
		return errors.New("localkv: store is not open")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("localkv: set %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return errors.New("localkv: store is not open")
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("localkv: remove %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ appsession.SnapshotStore = (*SQLiteStore)(nil)
