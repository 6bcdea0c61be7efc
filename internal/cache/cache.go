// Package cache stores analysis results keyed by request fingerprint.
//
// Byte-level backends (memory, disk, sqlite, layered) implement Cache;
// AnalysisCache puts the fingerprint and JSON encoding on top of one.
package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/lqa/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Backend names accepted by New
const (
	BackendMemory  = "memory"
	BackendDisk    = "disk"
	BackendSQLite  = "sqlite"
	BackendLayered = "layered"
)

// New builds the backend selected by cfg. Paths must already be expanded.
func New(cfg model.CacheConfig) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendMemory, "":
		return NewMemoryCache(cfg.TTL, 10*time.Minute), nil
	case BackendDisk:
		return NewDiskCache(cfg.Dir, cfg.TTL), nil
	case BackendSQLite:
		return NewSQLiteCache(cfg.Path, cfg.TTL)
	case BackendLayered:
		return NewLayeredCache(NewMemoryCache(cfg.TTL, 10*time.Minute), NewDiskCache(cfg.Dir, cfg.TTL)), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, disk, sqlite, layered)", cfg.Backend)
	}
}
