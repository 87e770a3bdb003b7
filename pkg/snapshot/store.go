// Package snapshot persists the last known-good content for each pair in a
// local SQLite database. It backs stage 2 of the fallback chain: when the
// content source is unreachable, the most recent snapshot stands in.
package snapshot

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/arnolddental/pagegen/internal/common"
)

const DefaultDBName = "pagegen-snapshots.db"

// Store wraps the snapshot database.
type Store struct {
	*sql.DB
	path string
}

// Open opens or creates the snapshot database at path. An empty path places
// the database next to the binary.
func Open(path string) (*Store, error) {
	if path == "" {
		execPath, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		path = filepath.Join(filepath.Dir(execPath), DefaultDBName)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	store := &Store{DB: sqlDB, path: path}
	if err := store.ensureSchemaExists(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize snapshot schema: %w", err)
	}
	return store, nil
}

func (s *Store) ensureSchemaExists() error {
	var tableName string
	err := s.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='snapshots'").Scan(&tableName)
	if err == sql.ErrNoRows {
		_, err := s.Exec(schema)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the stored payload for a pair key. The second return is false
// on a miss; lookup errors also read as misses so the fallback chain can
// keep moving.
func (s *Store) Get(pairKey string) ([]byte, bool) {
	var payload string
	err := s.QueryRow("SELECT payload FROM snapshots WHERE pair_key = ?", pairKey).Scan(&payload)
	if err != nil {
		return nil, false
	}
	return []byte(payload), true
}

// Put stores or replaces the payload for a pair. Unchanged payloads are
// skipped by hash to keep updated_at meaningful.
func (s *Store) Put(pair PairRef, payload []byte, runID string) error {
	hash := common.ContentHash(payload)

	var existing string
	err := s.QueryRow("SELECT payload_hash FROM snapshots WHERE pair_key = ?", pair.Key).Scan(&existing)
	if err == nil && existing == hash {
		return nil
	}
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to check existing snapshot: %w", err)
	}

	_, err = s.Exec(`
		INSERT INTO snapshots (pair_key, service_slug, location_slug, payload, payload_hash, run_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(pair_key) DO UPDATE SET
			payload = excluded.payload,
			payload_hash = excluded.payload_hash,
			run_id = excluded.run_id,
			updated_at = CURRENT_TIMESTAMP`,
		pair.Key, pair.Service, pair.Location, string(payload), hash, runID)
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// Count returns the number of stored snapshots.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return n, nil
}

// PairRef names the pair a snapshot belongs to.
type PairRef struct {
	Key      string
	Service  string
	Location string
}
