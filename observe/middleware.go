package observe

import (
	"context"
	"time"
)

// AnswerFunc is the signature for query answering functions.
// This is the standard function signature that Middleware wraps.
type AnswerFunc func(ctx context.Context, meta QueryMeta, query string) (map[string]any, error)

// Middleware wraps query answering with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe AnswerFunc.
//   - Context: propagates context through tracing spans.
//   - Errors: errors from the wrapped function are recorded and propagated unchanged.
//   - Ownership: payloads are passed through without modification.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps an AnswerFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn AnswerFunc) AnswerFunc {
	return func(ctx context.Context, meta QueryMeta, query string) (map[string]any, error) {
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		payload, err := fn(ctx, meta, query)
		duration := time.Since(start)

		m.tracer.EndSpan(span, err)
		m.metrics.RecordQuery(ctx, meta, duration, err)

		queryLogger := m.logger.WithQuery(meta)
		fields := []Field{
			{Key: "query", Value: TruncateQuery(query)},
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			queryLogger.Error(ctx, "query answering failed", fields...)
		} else {
			queryLogger.Info(ctx, "query answered", fields...)
		}

		return payload, err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	tracer := NewTracer(obs.Tracer())

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}
