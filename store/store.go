// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrStorage wraps any durable-store I/O failure. Callers match it with
// errors.Is and surface a generic save/load message; the failed operation
// leaves prior state intact so the user can retry.
var ErrStorage = errors.New("storage failure")

// Store is a durable string-keyed, string-valued map backed by database/sql.
// Individual operations are atomic; there is no cross-key transaction.
type Store struct {
	db *sql.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open connects to the configured backend. dbType selects the driver:
// "sqlite" (default, file-backed) or "postgres".
func Open(dbType, url string) (*Store, error) {
	driver := "sqlite"
	if dbType == "postgres" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorage, driver, err)
	}

	s := &Store{db: db, locks: make(map[string]*sync.Mutex)}
	if err := s.bootstrap(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// bootstrap creates the kv table. Safe to call multiple times - uses IF NOT EXISTS.
func (s *Store) bootstrap() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
		    key TEXT PRIMARY KEY,
		    value TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("%w: create schema: %v", ErrStorage, err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for key. The second return is false when the key
// has never been written.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %q: %v", ErrStorage, key, err)
	}
	return value, true, nil
}

// Set writes value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("%w: set %q: %v", ErrStorage, key, err)
	}
	return nil
}

// Update performs a serialized read-modify-write on a single key. fn
// receives the current value (ok=false when absent) and returns the
// replacement. Two concurrent updates to the same key never observe the
// same snapshot, so list appends and counter increments cannot lose
// writes. fn returning an error aborts with nothing written.
func (s *Store) Update(ctx context.Context, key string, fn func(old string, ok bool) (string, error)) error {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	old, ok, err := s.Get(ctx, key)
	if err != nil {
		return err
	}

	next, err := fn(old, ok)
	if err != nil {
		return err
	}

	return s.Set(ctx, key, next)
}

func (s *Store) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}
