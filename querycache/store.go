package querycache

import (
	"math"
	"sync"
	"time"
)

// Store is the in-memory Cache implementation.
//
// A single mutex guards the whole store: every operation is sub-microsecond
// and never does I/O, so serializing them keeps the size invariant and the
// counters consistent without finer-grained locking.
type Store struct {
	mu      sync.Mutex
	cfg     Config
	keyer   Keyer
	entries map[string]entry
	hits    uint64
	misses  uint64
	now     func() time.Time
}

type entry struct {
	payload    map[string]any
	insertedAt time.Time
}

// New creates a Store with the given configuration and the default keyer.
func New(cfg Config) (*Store, error) {
	return NewWithKeyer(cfg, NewDefaultKeyer())
}

// NewWithKeyer creates a Store with a custom key derivation scheme.
func NewWithKeyer(cfg Config, keyer Keyer) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		cfg:     cfg,
		keyer:   keyer,
		entries: make(map[string]entry),
		now:     time.Now,
	}, nil
}

// Get retrieves the cached payload for (query, projectID).
// Expired entries are removed on discovery and count as misses.
func (s *Store) Get(query, projectID string) (map[string]any, bool) {
	key := s.keyer.Key(query, projectID)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.misses++
		return nil, false
	}

	if s.now().Sub(e.insertedAt) >= s.cfg.TTL {
		delete(s.entries, key)
		s.misses++
		return nil, false
	}

	s.hits++
	return e.payload, true
}

// Set stores a payload for (query, projectID) with the current timestamp.
// When the store is full and the key is new, the entry with the oldest
// insertion time is evicted first. Re-inserting an existing key overwrites
// it in place and never evicts.
func (s *Store) Set(query string, payload map[string]any, projectID string) {
	key := s.keyer.Key(query, projectID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.cfg.MaxSize {
		if _, exists := s.entries[key]; !exists {
			s.evictOldest()
		}
	}

	s.entries[key] = entry{
		payload:    payload,
		insertedAt: s.now(),
	}
}

// evictOldest removes the entry with the minimum insertion time.
// Ties are broken by map iteration order. Caller must hold s.mu.
func (s *Store) evictOldest() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for k, e := range s.entries {
		if !found || e.insertedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.insertedAt
			found = true
		}
	}
	if found {
		delete(s.entries, oldestKey)
	}
}

// Stats returns a snapshot of cache state and effectiveness.
// The hit rate is 0 when no lookups have been recorded.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var hitRate float64
	if total := s.hits + s.misses; total > 0 {
		hitRate = float64(s.hits) / float64(total) * 100
		hitRate = math.Round(hitRate*100) / 100
	}

	return Stats{
		Size:           len(s.entries),
		MaxSize:        s.cfg.MaxSize,
		Hits:           s.hits,
		Misses:         s.misses,
		HitRatePercent: hitRate,
		TTLSeconds:     s.cfg.TTL.Seconds(),
	}
}

// Clear removes all entries and resets the counters.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]entry)
	s.hits = 0
	s.misses = 0
}

// Sweep removes all expired entries and returns how many were removed.
//
// Expiry is otherwise lazy; Sweep only reclaims memory early and does not
// change observable behavior or touch the counters.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.entries {
		if now.Sub(e.insertedAt) >= s.cfg.TTL {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Ensure Store implements Cache
var _ Cache = (*Store)(nil)
