package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/lqa/internal/model"
)

// AnalysisCache short-circuits repeated analyses. Lookup and Store are not
// atomic together: two identical concurrent requests may both miss and both
// store, which only costs a duplicate evaluation.
type AnalysisCache struct {
	backend Cache
	ttl     time.Duration
}

// NewAnalysisCache wraps a byte cache. ttl 0 defers to the backend default.
func NewAnalysisCache(backend Cache, ttl time.Duration) *AnalysisCache {
	return &AnalysisCache{backend: backend, ttl: ttl}
}

// Lookup returns the stored result for fp. Undecodable entries are misses.
func (c *AnalysisCache) Lookup(fp Fingerprint) (*model.AggregateResult, bool) {
	if c == nil || c.backend == nil {
		return nil, false
	}
	data, ok := c.backend.Get(fp.Key())
	if !ok {
		return nil, false
	}

	var result model.AggregateResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// Store records result under fp
func (c *AnalysisCache) Store(fp Fingerprint, result model.AggregateResult) error {
	if c == nil || c.backend == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := c.backend.Set(fp.Key(), data, c.ttl); err != nil {
		return fmt.Errorf("store result: %w", err)
	}
	return nil
}

// Clear drops every stored result
func (c *AnalysisCache) Clear() error {
	if c == nil || c.backend == nil {
		return nil
	}
	return c.backend.Clear()
}
