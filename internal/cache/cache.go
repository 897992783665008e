// Package cache is the on-disk parking spot for fetched usage data.
// An external fetcher writes the latest rate-limit snapshot; cc-line
// reads the freshest unexpired copy on each invocation. SQLite keeps
// concurrent writers and readers safe without a lock file.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const createSnapshotTable = `
CREATE TABLE IF NOT EXISTS snapshots (
	key TEXT PRIMARY KEY,
	payload BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);
`

// UsageKey is the snapshot key for rate-limit data.
const UsageKey = "usage"

// Store is a small keyed snapshot store with per-read TTL checks.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens (creating if needed) the cache database at path. The TTL
// applies to reads: snapshots older than it are treated as absent.
func Open(path string, ttl time.Duration) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	if _, err := db.Exec(createSnapshotTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating cache db: %w", err)
	}
	return &Store{db: db, ttl: ttl}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the payload stored under key, or false when the key is
// absent or the snapshot has outlived the TTL.
func (s *Store) Get(key string, now time.Time) ([]byte, bool) {
	var payload []byte
	var fetchedAt int64
	err := s.db.QueryRow(
		`SELECT payload, fetched_at FROM snapshots WHERE key = ?`, key,
	).Scan(&payload, &fetchedAt)
	if err != nil {
		return nil, false
	}
	if now.Sub(time.Unix(fetchedAt, 0)) > s.ttl {
		return nil, false
	}
	return payload, true
}

// Put stores a payload under key, replacing any previous snapshot.
func (s *Store) Put(key string, payload []byte, now time.Time) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO snapshots (key, payload, fetched_at) VALUES (?, ?, ?)`,
		key, payload, now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}
