// Package cache provides SQLite-backed caching for expensive external
// lookups: news search results and LLM event extractions. Entries are
// keyed by content fingerprint, compressed, and expire after a TTL so a
// re-run against the same disclosure does not repeat paid API calls.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/greenlens/sdk/pkg/compress"
)

// Entry kinds.
const (
	KindSearch     = "search"
	KindExtraction = "extraction"
)

// DefaultTTL is how long cached entries stay valid.
const DefaultTTL = 24 * time.Hour

// Config configures the cache store.
type Config struct {
	// DatabasePath is the SQLite file location.
	DatabasePath string

	// TTL is the entry lifetime. Zero means DefaultTTL.
	TTL time.Duration

	// Codec compresses payloads. Nil means ZSTD.
	Codec *compress.Codec
}

// DefaultConfig returns a cache config under the user cache directory.
func DefaultConfig() *Config {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return &Config{
		DatabasePath: filepath.Join(dir, "greenlens", "cache.db"),
		TTL:          DefaultTTL,
	}
}

// Store is a SQLite-backed cache. Safe for concurrent use.
type Store struct {
	db    *sql.DB
	codec *compress.Codec
	ttl   time.Duration
	mu    sync.RWMutex
}

// NewStore opens or creates the cache database.
func NewStore(cfg *Config) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	dir := filepath.Dir(cfg.DatabasePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	s := &Store{
		db:    db,
		codec: cfg.Codec,
		ttl:   cfg.TTL,
	}
	if s.codec == nil {
		s.codec = compress.DefaultZSTD
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTTL
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		key TEXT NOT NULL,
		algorithm TEXT NOT NULL DEFAULT 'zstd',
		payload BLOB NOT NULL,
		created_at TIMESTAMP NOT NULL,
		expires_at TIMESTAMP NOT NULL,
		UNIQUE(kind, key)
	);

	CREATE INDEX IF NOT EXISTS idx_entries_expires_at ON entries(expires_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Put stores a payload under (kind, key), replacing any existing entry.
func (s *Store) Put(ctx context.Context, kind, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	compressed, err := s.codec.Compress(payload)
	if err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entries (id, kind, key, algorithm, payload, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, key) DO UPDATE SET
			algorithm = excluded.algorithm,
			payload = excluded.payload,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at
	`,
		uuid.New().String(), kind, key, string(s.codec.Algorithm()),
		compressed, now, now.Add(s.ttl),
	)
	return err
}

// Get returns the payload stored under (kind, key). The second return is
// false when the entry is absent or expired.
func (s *Store) Get(ctx context.Context, kind, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var compressed []byte
	var algorithm string
	var expiresAt time.Time

	err := s.db.QueryRowContext(ctx, `
		SELECT payload, algorithm, expires_at FROM entries
		WHERE kind = ? AND key = ?
	`, kind, key).Scan(&compressed, &algorithm, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if time.Now().UTC().After(expiresAt) {
		return nil, false, nil
	}

	payload, err := s.codecFor(compress.Algorithm(algorithm)).Decompress(compressed)
	if err != nil {
		return nil, false, fmt.Errorf("decompress payload: %w", err)
	}
	return payload, true, nil
}

// codecFor resolves the codec for a stored entry's algorithm, reusing the
// store's own codec or a shared one so decoder pools survive across reads.
func (s *Store) codecFor(algorithm compress.Algorithm) *compress.Codec {
	if s.codec.Algorithm() == algorithm {
		return s.codec
	}
	return compress.For(algorithm)
}

// Delete removes the entry under (kind, key).
func (s *Store) Delete(ctx context.Context, kind, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE kind = ? AND key = ?`, kind, key)
	return err
}

// Cleanup removes expired entries and returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM entries WHERE expires_at < ?
	`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Stats summarizes cache contents.
type Stats struct {
	TotalEntries      int   `json:"total_entries"`
	SearchEntries     int   `json:"search_entries"`
	ExtractionEntries int   `json:"extraction_entries"`
	TotalBytes        int64 `json:"total_bytes"`
}

// GetStats returns cache statistics.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats Stats

	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM entries GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			continue
		}
		switch kind {
		case KindSearch:
			stats.SearchEntries = count
		case KindExtraction:
			stats.ExtractionEntries = count
		}
		stats.TotalEntries += count
	}

	var totalBytes sql.NullInt64
	_ = s.db.QueryRowContext(ctx, `SELECT SUM(LENGTH(payload)) FROM entries`).Scan(&totalBytes)
	if totalBytes.Valid {
		stats.TotalBytes = totalBytes.Int64
	}

	return &stats, rows.Err()
}

// Close closes the cache database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
