package observe

import (
	"context"
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			"minimal valid",
			Config{ServiceName: "repowise"},
			nil,
		},
		{
			"missing service name",
			Config{},
			ErrMissingServiceName,
		},
		{
			"valid tracing",
			Config{ServiceName: "repowise", Tracing: TracingConfig{Enabled: true, Exporter: "none", SamplePct: 0.5}},
			nil,
		},
		{
			"unknown tracing exporter",
			Config{ServiceName: "repowise", Tracing: TracingConfig{Enabled: true, Exporter: "zipkin"}},
			ErrInvalidTracingExporter,
		},
		{
			"sample pct too high",
			Config{ServiceName: "repowise", Tracing: TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.5}},
			ErrInvalidSamplePct,
		},
		{
			"sample pct negative",
			Config{ServiceName: "repowise", Tracing: TracingConfig{Enabled: true, Exporter: "none", SamplePct: -0.1}},
			ErrInvalidSamplePct,
		},
		{
			"unknown metrics exporter",
			Config{ServiceName: "repowise", Metrics: MetricsConfig{Enabled: true, Exporter: "statsd"}},
			ErrInvalidMetricsExporter,
		},
		{
			"unknown log level",
			Config{ServiceName: "repowise", Logging: LoggingConfig{Enabled: true, Level: "verbose"}},
			ErrInvalidLogLevel,
		},
		{
			"disabled subsystems skip validation",
			Config{ServiceName: "repowise", Tracing: TracingConfig{Enabled: false, Exporter: "bogus"}},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewObserver_AllDisabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "repowise"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	// Disabled subsystems fall back to noop implementations that still work.
	if obs.Tracer() == nil {
		t.Error("Tracer should not be nil")
	}
	if obs.Meter() == nil {
		t.Error("Meter should not be nil")
	}
	if obs.Logger() == nil {
		t.Error("Logger should not be nil")
	}

	obs.Logger().Info(context.Background(), "noop logger must not panic")

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
	// Idempotent.
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown failed: %v", err)
	}
}

func TestNewObserver_InvalidConfig(t *testing.T) {
	if _, err := NewObserver(context.Background(), Config{}); !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("NewObserver with empty config = %v, want %v", err, ErrMissingServiceName)
	}
}

func TestNewObserver_NoneExporters(t *testing.T) {
	cfg := Config{
		ServiceName: "repowise",
		Version:     "1.0.0",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.0},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "error"},
	}

	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	defer func() {
		_ = obs.Shutdown(context.Background())
	}()

	// Span creation through the real provider must work end to end.
	ctx, span := NewTracer(obs.Tracer()).StartSpan(context.Background(), QueryMeta{Agent: "governance"})
	if ctx == nil {
		t.Error("StartSpan returned nil context")
	}
	NewTracer(obs.Tracer()).EndSpan(span, nil)
}
