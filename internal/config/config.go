// Package config provides configuration loading using koanf.
// Precedence: environment variables over compiled defaults.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/PetroleumCyberneticsGroup/opm-parser/pkg/schedule"
)

// ErrRequired signals a missing or invalid required configuration key.
var ErrRequired = errors.New("required configuration key missing or invalid")

// Config holds the schedinfo tool configuration.
type Config struct {
	// Environment identifier: "local", "dev", "prod"
	Environment string `koanf:"environment"`

	// Logging configuration
	Log LogConfig `koanf:"log"`

	// Periodic report selection
	Report ReportConfig `koanf:"report"`

	// OpenTelemetry configuration
	OTEL OTELConfig `koanf:"otel"`
}

// LogConfig holds structured logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`  // "debug", "info", "warn", "error"
	Format string `koanf:"format"` // "json" or "text"
}

// ReportConfig selects which boundary steps the report command flags.
type ReportConfig struct {
	// Granularity is "month" or "year".
	Granularity string `koanf:"granularity"`
	// Frequency flags every n-th boundary counted from the anchor.
	Frequency int `koanf:"frequency"`
	// Anchor is the step the periodic count is anchored at.
	Anchor int `koanf:"anchor"`
}

// OTELConfig holds OpenTelemetry configuration.
type OTELConfig struct {
	Endpoint string `koanf:"endpoint"` // Empty disables OTLP export
	Service  string `koanf:"service"`
}

// defaults returns a Config with compiled default values.
func defaults() *Config {
	return &Config{
		Environment: "local",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},

		Report: ReportConfig{
			Granularity: string(schedule.GranularityMonth),
			Frequency:   1,
			Anchor:      1,
		},

		OTEL: OTELConfig{
			Service: "schedinfo",
		},
	}
}

// Load loads configuration: environment variables (highest) over compiled
// defaults (lowest). Invalid required keys fail startup.
func Load(ctx context.Context) (*Config, error) {
	k := koanf.New(".")

	cfg := defaults()

	// Environment variables use full names like REPORT_GRANULARITY;
	// underscores map to nesting.
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validateRequired(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateRequired checks that required configuration is present and sane.
func validateRequired(cfg *Config) error {
	if !schedule.Granularity(cfg.Report.Granularity).IsValid() {
		return fmt.Errorf("%w: report.granularity must be %q or %q, got %q",
			ErrRequired, schedule.GranularityMonth, schedule.GranularityYear, cfg.Report.Granularity)
	}
	if cfg.Report.Frequency < 1 {
		return fmt.Errorf("%w: report.frequency must be >= 1, got %d", ErrRequired, cfg.Report.Frequency)
	}
	if cfg.Report.Anchor < 0 {
		return fmt.Errorf("%w: report.anchor must be >= 0, got %d", ErrRequired, cfg.Report.Anchor)
	}
	return nil
}

// Granularity returns the configured report granularity as a typed value.
func (c *Config) Granularity() schedule.Granularity {
	return schedule.Granularity(c.Report.Granularity)
}

// IsLocal returns true if running in local development environment.
func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}
