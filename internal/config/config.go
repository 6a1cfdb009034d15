// Package config defines process configuration and its loader.
//
// Conventions:
// - New returns defaults; Load layers a YAML file and environment on top.
// - Validation failures wrap ErrInvalidConfig, source failures ErrLoadConfig.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/okian/readability/internal/domain/scoring"
)

// ScoreAll selects every formula.
const ScoreAll = "all"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address for `serve`, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Workers bounds how many documents are analyzed concurrently.
	Workers int `koanf:"workers"`

	// MaxBodyBytes caps the size of a POST /analyze body.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// DefaultScore is the formula printed when none is requested:
	// ARI, FK, SMOG, CL or all. Empty means prompt.
	DefaultScore string `koanf:"default_score"`

	// MetricsEnabled toggles Prometheus collection.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		Workers:        runtime.NumCPU(),
		MaxBodyBytes:   1 << 20,
		DefaultScore:   "",
		MetricsEnabled: true,
	}
}

// Validate checks field values that cannot be defaulted silently.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	case c.MaxBodyBytes < 1:
		return fmt.Errorf("%w: max_body_bytes must be positive, got %d", ErrInvalidConfig, c.MaxBodyBytes)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}

	if s := strings.TrimSpace(c.DefaultScore); s != "" && !strings.EqualFold(s, ScoreAll) {
		if _, err := scoring.ParseKind(s); err != nil {
			return fmt.Errorf("%w: default_score: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
