package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// QueryMeta carries metadata about a query execution for telemetry purposes.
type QueryMeta struct {
	Project string // Project scope of the query (may be empty for unscoped)
	Agent   string // Agent that handled the query (governance, forecaster, ...)
	Intent  string // Routed intent (optional)
}

// SpanName returns the deterministic span name for this query.
// Format: rag.query.<agent> or rag.query when no agent is set.
func (m QueryMeta) SpanName() string {
	if m.Agent != "" {
		return "rag.query." + m.Agent
	}
	return "rag.query"
}

// Tracer wraps OpenTelemetry tracing with query-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a query execution.
	StartSpan(ctx context.Context, meta QueryMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with query metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta QueryMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.Bool("query.error", false), // Updated in EndSpan on error
	}
	if meta.Project != "" {
		attrs = append(attrs, attribute.String("query.project", meta.Project))
	}
	if meta.Agent != "" {
		attrs = append(attrs, attribute.String("query.agent", meta.Agent))
	}
	if meta.Intent != "" {
		attrs = append(attrs, attribute.String("query.intent", meta.Intent))
	}

	return t.tracer.Start(ctx, meta.SpanName(), trace.WithAttributes(attrs...))
}

// EndSpan ends the span, recording error status when err is non-nil.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("query.error", true))
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}

// Ensure tracerImpl implements Tracer
var _ Tracer = (*tracerImpl)(nil)
