package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records query execution metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordQuery records a query execution with duration and error status.
	RecordQuery(ctx context.Context, meta QueryMeta, duration time.Duration, err error)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"rag.query.total",
		metric.WithDescription("Total number of answered queries"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"rag.query.errors",
		metric.WithDescription("Total number of failed queries"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"rag.query.duration_ms",
		metric.WithDescription("Query answering duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

// RecordQuery records metrics for a query execution.
func (m *metricsImpl) RecordQuery(ctx context.Context, meta QueryMeta, duration time.Duration, err error) {
	attrs := make([]attribute.KeyValue, 0, 3)
	if meta.Project != "" {
		attrs = append(attrs, attribute.String("query.project", meta.Project))
	}
	if meta.Agent != "" {
		attrs = append(attrs, attribute.String("query.agent", meta.Agent))
	}

	opt := metric.WithAttributes(attrs...)

	m.totalCount.Add(ctx, 1, opt)

	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}

	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordQuery(ctx context.Context, meta QueryMeta, duration time.Duration, err error) {
}

// CacheMetrics records cache effectiveness counters.
//
// The query cache keeps its own hit/miss counters for its stats snapshot;
// these instruments feed the same signals into the metrics backend.
type CacheMetrics struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	evictions metric.Int64Counter
}

// NewCacheMetrics creates cache counters on the given meter.
func NewCacheMetrics(meter metric.Meter) (*CacheMetrics, error) {
	hits, err := meter.Int64Counter(
		"rag.cache.hits",
		metric.WithDescription("Query cache hits"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"rag.cache.misses",
		metric.WithDescription("Query cache misses"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	evictions, err := meter.Int64Counter(
		"rag.cache.evictions",
		metric.WithDescription("Query cache capacity evictions"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &CacheMetrics{
		hits:      hits,
		misses:    misses,
		evictions: evictions,
	}, nil
}

// RecordLookup records a cache lookup outcome.
func (c *CacheMetrics) RecordLookup(ctx context.Context, hit bool) {
	if hit {
		c.hits.Add(ctx, 1)
	} else {
		c.misses.Add(ctx, 1)
	}
}

// RecordEviction records n capacity evictions.
func (c *CacheMetrics) RecordEviction(ctx context.Context, n int64) {
	c.evictions.Add(ctx, n)
}

// RegisterCacheSizeGauge registers an observable gauge reporting current
// cache occupancy. sizeFn is called at collection time and must be safe for
// concurrent use.
func RegisterCacheSizeGauge(meter metric.Meter, sizeFn func() int64) error {
	gauge, err := meter.Int64ObservableGauge(
		"rag.cache.size",
		metric.WithDescription("Query cache entry count"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(gauge, sizeFn())
		return nil
	}, gauge)
	return err
}
