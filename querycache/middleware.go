package querycache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// PipelineFunc is the function signature for the retrieval+generation
// pipeline the cache is shielding callers from.
type PipelineFunc func(ctx context.Context, query, projectID string) (map[string]any, error)

// SkipRule determines whether to bypass the cache for a given query.
// Returns true if caching should be skipped.
type SkipRule func(query, projectID string) bool

// Middleware wraps pipeline execution with caching.
//
// Concurrent misses for the same (query, projectID) are collapsed so the
// pipeline runs at most once per key at a time; followers receive the
// leader's result.
type Middleware struct {
	cache    Cache
	keyer    Keyer
	skipRule SkipRule
	group    singleflight.Group
}

// NewMiddleware creates a new cache middleware.
// If keyer is nil, the default keyer is used. skipRule may be nil.
func NewMiddleware(cache Cache, keyer Keyer, skipRule SkipRule) (*Middleware, error) {
	if cache == nil {
		return nil, ErrNilCache
	}
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	return &Middleware{
		cache:    cache,
		keyer:    keyer,
		skipRule: skipRule,
	}, nil
}

// Answer returns the cached payload for (query, projectID), or runs the
// pipeline and caches its result.
//
// On cache hit, the pipeline is not called. On miss, concurrent identical
// queries share a single pipeline execution. Errors are NOT cached.
func (m *Middleware) Answer(ctx context.Context, query, projectID string, pipeline PipelineFunc) (map[string]any, error) {
	if pipeline == nil {
		return nil, ErrNilPipeline
	}

	if m.skipRule != nil && m.skipRule(query, projectID) {
		return pipeline(ctx, query, projectID)
	}

	if payload, ok := m.cache.Get(query, projectID); ok {
		return payload, nil
	}

	key := m.keyer.Key(query, projectID)
	v, err, _ := m.group.Do(key, func() (any, error) {
		// A completed flight may have populated the cache after our miss.
		if payload, ok := m.cache.Get(query, projectID); ok {
			return payload, nil
		}

		payload, err := pipeline(ctx, query, projectID)
		if err != nil {
			return nil, err
		}

		m.cache.Set(query, payload, projectID)
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}
