package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RepoWise/backend-sub001/observe"
	"github.com/RepoWise/backend-sub001/querycache"
)

// Sentinel errors for configuration loading.
var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrMissingEnv    = errors.New("config: missing required environment variables")
)

// Config is the root service configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Cache   CacheConfig   `yaml:"cache"`
	Observe ObserveConfig `yaml:"observe"`
	Auth    AuthConfig    `yaml:"auth"`
}

// ServiceConfig identifies the service instance.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Listen  string `yaml:"listen"`
}

// CacheConfig configures the query result cache.
type CacheConfig struct {
	MaxSize    int `yaml:"max_size"`
	TTLSeconds int `yaml:"ttl_seconds"`
}

// CacheSettings converts to the querycache configuration type.
func (c CacheConfig) CacheSettings() querycache.Config {
	return querycache.Config{
		MaxSize: c.MaxSize,
		TTL:     time.Duration(c.TTLSeconds) * time.Second,
	}
}

// ObserveConfig configures telemetry.
type ObserveConfig struct {
	Tracing TracingConfig `yaml:"tracing"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// TracingConfig configures the tracing subsystem.
type TracingConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Exporter  string  `yaml:"exporter"`
	SamplePct float64 `yaml:"sample_pct"`
}

// MetricsConfig configures the metrics subsystem.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
}

// LoggingConfig configures the logging subsystem.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
}

// ObserveSettings converts to the observe configuration type.
func (c Config) ObserveSettings() observe.Config {
	return observe.Config{
		ServiceName: c.Service.Name,
		Version:     c.Service.Version,
		Tracing: observe.TracingConfig{
			Enabled:   c.Observe.Tracing.Enabled,
			Exporter:  c.Observe.Tracing.Exporter,
			SamplePct: c.Observe.Tracing.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.Observe.Metrics.Enabled,
			Exporter: c.Observe.Metrics.Exporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: c.Observe.Logging.Enabled,
			Level:   c.Observe.Logging.Level,
		},
	}
}

// AuthConfig configures admin endpoint authentication.
type AuthConfig struct {
	// Secret is the HS256 signing secret. Usually "${JWT_SECRET_KEY}".
	Secret string `yaml:"secret"`

	// Issuer is the expected token issuer.
	Issuer string `yaml:"issuer"`

	// TokenTTLMinutes bounds issued token lifetime.
	TokenTTLMinutes int `yaml:"token_ttl_minutes"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Service: ServiceConfig{
			Name:   "repowise",
			Listen: ":8000",
		},
		Cache: CacheConfig{
			MaxSize:    1000,
			TTLSeconds: 300,
		},
		Observe: ObserveConfig{
			Logging: LoggingConfig{Enabled: true, Level: "info"},
		},
		Auth: AuthConfig{
			Issuer:          "repowise",
			TokenTTLMinutes: 60,
		},
	}
}

// Load reads and validates configuration from a YAML file.
// Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses configuration from YAML bytes.
func Parse(data []byte) (Config, error) {
	expanded, err := expandEnv(string(data))
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.Service.Name == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidConfig)
	}
	if err := c.Cache.CacheSettings().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	obs := c.ObserveSettings()
	if err := obs.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("%w: auth token ttl must be positive", ErrInvalidConfig)
	}
	return nil
}
