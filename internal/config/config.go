// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and environment variables over New().
// - External errors must be wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/internal/domain/window"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Timezone names the location whose calendar decides "today".
	// Empty or "Local" means the host zone.
	Timezone string `koanf:"timezone"`

	// DefaultRange is used when a report request names no range.
	DefaultRange string `koanf:"default_range"`

	// StorePath is the sqlite file holding offers. Empty keeps offers in memory.
	StorePath string `koanf:"store_path"`

	// SourceBaseURL is the root of the tabular records API.
	SourceBaseURL string `koanf:"source_base_url"`

	// SourceTimeoutMS bounds a single page request.
	SourceTimeoutMS int `koanf:"source_timeout_ms"`

	// SourceMaxPages caps how many pages one fetch may follow.
	SourceMaxPages int `koanf:"source_max_pages"`

	// ShortNameLength is the rune count at or below which a name is short.
	ShortNameLength int `koanf:"short_name_length"`

	// ShortNameMaxDistance and LongNameMaxDistance bound the edit distance
	// at which two names are the same person.
	ShortNameMaxDistance int `koanf:"short_name_max_distance"`
	LongNameMaxDistance  int `koanf:"long_name_max_distance"`

	// DemoSeed seeds the demo data generator.
	DemoSeed int64 `koanf:"demo_seed"`

	// FieldMap is the column mapping used when an offer or request carries none.
	FieldMap model.FieldMap `koanf:"field_map"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		Timezone:             "Local",
		DefaultRange:         string(window.AllTime),
		StorePath:            "",
		SourceBaseURL:        "https://api.airtable.com/v0",
		SourceTimeoutMS:      15_000,
		SourceMaxPages:       50,
		ShortNameLength:      4,
		ShortNameMaxDistance: 0,
		LongNameMaxDistance:  2,
		DemoSeed:             42,
		FieldMap:             model.DefaultFieldMap(),
	}
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", ErrInvalidConfig, tz, err)
	}
	return loc, nil
}

// SourceTimeout returns SourceTimeoutMS as a duration.
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.SourceTimeoutMS) * time.Millisecond
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := window.ParseRange(c.DefaultRange); err != nil {
		return fmt.Errorf("%w: default_range: %w", ErrInvalidConfig, err)
	}
	if c.SourceTimeoutMS <= 0 {
		return fmt.Errorf("%w: source_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.SourceMaxPages <= 0 {
		return fmt.Errorf("%w: source_max_pages must be positive", ErrInvalidConfig)
	}
	if c.ShortNameLength < 0 || c.ShortNameMaxDistance < 0 || c.LongNameMaxDistance < 0 {
		return fmt.Errorf("%w: name matching thresholds must not be negative", ErrInvalidConfig)
	}
	return nil
}
