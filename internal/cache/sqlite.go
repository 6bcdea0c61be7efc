package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteCache keeps entries in a single sqlite table
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSQLiteCache opens (or creates) the database at path. ":memory:" gives
// a private in-process database.
func NewSQLiteCache(path string, ttl time.Duration) (*SQLiteCache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows one writer; a single connection also keeps ":memory:" shared
	db.SetMaxOpenConns(1)

	c := &SQLiteCache{db: db, ttl: ttl}
	if err := c.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	_, err := c.db.Exec(`
	CREATE TABLE IF NOT EXISTS analysis_cache (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expires_at INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

// Get retrieves a value; expired rows are removed on read
func (c *SQLiteCache) Get(key string) ([]byte, bool) {
	var (
		data      []byte
		expiresAt int64
	)
	err := c.db.QueryRow(`SELECT data, expires_at FROM analysis_cache WHERE key = ?`, key).Scan(&data, &expiresAt)
	if err != nil {
		return nil, false
	}

	if expiresAt != 0 && time.Now().UnixNano() > expiresAt {
		_, _ = c.db.Exec(`DELETE FROM analysis_cache WHERE key = ?`, key)
		return nil, false
	}
	return data, true
}

// Set stores or replaces a value
func (c *SQLiteCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).UnixNano()
	}

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO analysis_cache (key, data, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		key, value, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Delete removes a value
func (c *SQLiteCache) Delete(key string) error {
	_, err := c.db.Exec(`DELETE FROM analysis_cache WHERE key = ?`, key)
	return err
}

// Clear removes every entry
func (c *SQLiteCache) Clear() error {
	_, err := c.db.Exec(`DELETE FROM analysis_cache`)
	return err
}

// Close releases the database
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
