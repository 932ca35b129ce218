package platform

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	kartoerrors "github.com/karto-app/karto/pkg/errors"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore is a Store backed by a single sqlite file.
type SQLiteStore struct {
	conn *sql.DB
	path string
}

// OpenSQLiteStore opens (creating if needed) the cache at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, storageErr("platform.OpenSQLiteStore", fmt.Errorf("create cache dir: %w", err))
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageErr("platform.OpenSQLiteStore", fmt.Errorf("open database: %w", err))
	}
	// One writer; the UI goroutine is the only caller in practice.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, storageErr("platform.OpenSQLiteStore", fmt.Errorf("enable WAL mode: %w", err))
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, storageErr("platform.OpenSQLiteStore", fmt.Errorf("set busy timeout: %w", err))
	}
	if _, err := conn.Exec(kvSchema); err != nil {
		conn.Close()
		return nil, storageErr("platform.OpenSQLiteStore", fmt.Errorf("create schema: %w", err))
	}

	return &SQLiteStore{conn: conn, path: path}, nil
}

func storageErr(op string, err error) error {
	return kartoerrors.New(op, kartoerrors.KindStorage, err)
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", storageErr("platform.SQLiteStore.Get", err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return storageErr("platform.SQLiteStore.Set", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return storageErr("platform.SQLiteStore.Delete", err)
	}
	return nil
}

func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, storageErr("platform.SQLiteStore.Keys", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, storageErr("platform.SQLiteStore.Keys", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("platform.SQLiteStore.Keys", err)
	}
	return keys, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// OpenStore opens a SQLiteStore at path, or a MemoryStore when path is empty.
func OpenStore(path string) (Store, error) {
	if path == "" {
		return NewMemoryStore(), nil
	}
	s, err := OpenSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}
