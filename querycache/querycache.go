package querycache

import "time"

// Cache is the interface for query response caching.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use; each method
//   is a single atomic step with respect to other callers.
// - Errors: no method errors; Get returns (nil, false) on miss or expiry.
// - Ownership: payloads are stored and returned without copying; callers must
//   not mutate a returned payload.
type Cache interface {
	// Get retrieves the cached payload for (query, projectID).
	// Returns (nil, false) on miss. An expired entry counts as a miss and is
	// removed. An empty projectID means the query is unscoped.
	Get(query, projectID string) (map[string]any, bool)

	// Set stores a payload for (query, projectID), evicting the
	// oldest-written entry first when the store is full and the key is new.
	Set(query string, payload map[string]any, projectID string)

	// Stats returns a point-in-time snapshot of cache effectiveness.
	Stats() Stats

	// Clear removes all entries and resets the hit/miss counters. Idempotent.
	Clear()
}

// Stats is a snapshot of cache state and effectiveness.
//
// Size is the physical entry count and may include entries that are logically
// expired but not yet lazily removed.
type Stats struct {
	Size           int     `json:"size"`
	MaxSize        int     `json:"max_size"`
	Hits           uint64  `json:"hits"`
	Misses         uint64  `json:"misses"`
	HitRatePercent float64 `json:"hit_rate_percent"`
	TTLSeconds     float64 `json:"ttl_seconds"`
}

// Config configures a Store.
type Config struct {
	// MaxSize is the maximum number of entries. Default: 1000.
	MaxSize int

	// TTL is how long an entry stays valid after insertion. Default: 5 minutes.
	TTL time.Duration
}

// DefaultConfig returns the default cache configuration.
// MaxSize: 1000 entries, TTL: 5 minutes.
func DefaultConfig() Config {
	return Config{
		MaxSize: 1000,
		TTL:     5 * time.Minute,
	}
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.MaxSize <= 0 {
		return ErrInvalidMaxSize
	}
	if c.TTL <= 0 {
		return ErrInvalidTTL
	}
	return nil
}
