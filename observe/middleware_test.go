package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// recordingTracer captures span lifecycle for assertions.
type recordingTracer struct {
	mu      sync.Mutex
	started []QueryMeta
	errs    []error
}

func (r *recordingTracer) StartSpan(ctx context.Context, meta QueryMeta) (context.Context, trace.Span) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, meta)
	return tracenoop.NewTracerProvider().Tracer("test").Start(ctx, meta.SpanName())
}

func (r *recordingTracer) EndSpan(span trace.Span, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// recordingMetrics captures recorded query executions.
type recordingMetrics struct {
	mu       sync.Mutex
	recorded []error
}

func (r *recordingMetrics) RecordQuery(ctx context.Context, meta QueryMeta, duration time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded = append(r.recorded, err)
}

func TestMiddleware_Wrap_Success(t *testing.T) {
	tracer := &recordingTracer{}
	metrics := &recordingMetrics{}
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	mw := NewMiddleware(tracer, metrics, logger)

	fn := mw.Wrap(func(ctx context.Context, meta QueryMeta, query string) (map[string]any, error) {
		return map[string]any{"answer": "ok"}, nil
	})

	meta := QueryMeta{Project: "keras", Agent: "governance"}
	payload, err := fn(context.Background(), meta, "who maintains this?")
	if err != nil {
		t.Fatalf("wrapped fn failed: %v", err)
	}
	if payload["answer"] != "ok" {
		t.Errorf("payload = %v, want pass-through", payload)
	}

	if len(tracer.started) != 1 || tracer.started[0].Agent != "governance" {
		t.Errorf("span not started with query meta: %+v", tracer.started)
	}
	if len(tracer.errs) != 1 || tracer.errs[0] != nil {
		t.Errorf("span should end without error: %+v", tracer.errs)
	}
	if len(metrics.recorded) != 1 || metrics.recorded[0] != nil {
		t.Errorf("metrics should record one success: %+v", metrics.recorded)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["msg"] != "query answered" {
		t.Errorf("msg = %v, want query answered", entry["msg"])
	}
	if entry["query.project"] != "keras" {
		t.Errorf("query.project = %v, want keras", entry["query.project"])
	}
}

func TestMiddleware_Wrap_Error(t *testing.T) {
	tracer := &recordingTracer{}
	metrics := &recordingMetrics{}
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	mw := NewMiddleware(tracer, metrics, logger)

	wantErr := errors.New("retrieval failed")
	fn := mw.Wrap(func(ctx context.Context, meta QueryMeta, query string) (map[string]any, error) {
		return nil, wantErr
	})

	_, err := fn(context.Background(), QueryMeta{}, "q")
	if !errors.Is(err, wantErr) {
		t.Fatalf("wrapped fn = %v, want %v (unchanged)", err, wantErr)
	}

	if len(tracer.errs) != 1 || !errors.Is(tracer.errs[0], wantErr) {
		t.Errorf("span should end with the error: %+v", tracer.errs)
	}
	if len(metrics.recorded) != 1 || !errors.Is(metrics.recorded[0], wantErr) {
		t.Errorf("metrics should record the error: %+v", metrics.recorded)
	}
	if !strings.Contains(buf.String(), "query answering failed") {
		t.Errorf("error log missing: %q", buf.String())
	}
}

func TestMiddleware_Wrap_TruncatesLoggedQuery(t *testing.T) {
	tracer := &recordingTracer{}
	metrics := &recordingMetrics{}
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	mw := NewMiddleware(tracer, metrics, logger)
	fn := mw.Wrap(func(ctx context.Context, meta QueryMeta, query string) (map[string]any, error) {
		return nil, nil
	})

	long := strings.Repeat("a", 500)
	_, _ = fn(context.Background(), QueryMeta{}, long)

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	logged, _ := entry["query"].(string)
	if len(logged) > MaxLoggedQueryLength+3 {
		t.Errorf("logged query length = %d, should be truncated", len(logged))
	}
}

func TestMiddlewareFromObserver(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "repowise"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	mw, err := MiddlewareFromObserver(obs)
	if err != nil {
		t.Fatalf("MiddlewareFromObserver failed: %v", err)
	}

	fn := mw.Wrap(func(ctx context.Context, meta QueryMeta, query string) (map[string]any, error) {
		return map[string]any{"ok": true}, nil
	})
	if _, err := fn(context.Background(), QueryMeta{Agent: "general"}, "q"); err != nil {
		t.Errorf("wrapped fn failed: %v", err)
	}
}

func TestMiddlewareFromObserver_NilObserver(t *testing.T) {
	if _, err := MiddlewareFromObserver(nil); !errors.Is(err, ErrNilObserver) {
		t.Errorf("MiddlewareFromObserver(nil) = %v, want %v", err, ErrNilObserver)
	}
}

func TestQueryMeta_SpanName(t *testing.T) {
	tests := []struct {
		meta QueryMeta
		want string
	}{
		{QueryMeta{Agent: "governance"}, "rag.query.governance"},
		{QueryMeta{}, "rag.query"},
		{QueryMeta{Project: "keras"}, "rag.query"},
	}

	for _, tt := range tests {
		if got := tt.meta.SpanName(); got != tt.want {
			t.Errorf("SpanName(%+v) = %q, want %q", tt.meta, got, tt.want)
		}
	}
}
