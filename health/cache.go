package health

import (
	"context"
	"fmt"

	"github.com/RepoWise/backend-sub001/querycache"
)

// CacheCheckerConfig configures the query cache health checker.
type CacheCheckerConfig struct {
	// FullThreshold is the occupancy ratio at which the cache is reported
	// degraded: a full cache is still correct but evicts on every insert.
	// Value should be between 0 and 1. Default: 1.0 (only degraded when full).
	FullThreshold float64
}

// CacheChecker reports query cache occupancy and effectiveness.
type CacheChecker struct {
	cache  querycache.Cache
	config CacheCheckerConfig
}

// NewCacheChecker creates a health checker for the given query cache.
func NewCacheChecker(cache querycache.Cache, config CacheCheckerConfig) (*CacheChecker, error) {
	if cache == nil {
		return nil, ErrNilCache
	}
	if config.FullThreshold <= 0 || config.FullThreshold > 1 {
		config.FullThreshold = 1.0
	}

	return &CacheChecker{cache: cache, config: config}, nil
}

// Name returns the name of this checker.
func (c *CacheChecker) Name() string {
	return "querycache"
}

// Check reports the cache's current stats. The cache itself cannot fail,
// so the outcome is healthy or degraded, never unhealthy.
func (c *CacheChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	stats := c.cache.Stats()

	details := map[string]any{
		"size":             stats.Size,
		"max_size":         stats.MaxSize,
		"hits":             stats.Hits,
		"misses":           stats.Misses,
		"hit_rate_percent": stats.HitRatePercent,
		"ttl_seconds":      stats.TTLSeconds,
	}

	occupancy := float64(stats.Size) / float64(stats.MaxSize)
	if occupancy >= c.config.FullThreshold {
		return Degraded(
			fmt.Sprintf("cache at %.0f%% capacity, evicting on insert", occupancy*100),
		).WithDetails(details)
	}

	return Healthy(
		fmt.Sprintf("cache at %.0f%% capacity, %.2f%% hit rate", occupancy*100, stats.HitRatePercent),
	).WithDetails(details)
}

// Ensure CacheChecker implements Checker
var _ Checker = (*CacheChecker)(nil)
