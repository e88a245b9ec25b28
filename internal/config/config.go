// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns the defaults; Load layers file and environment on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
)

// DefaultPort is used when neither PINPOINT_ADDR nor PORT is set.
const DefaultPort = "3000"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// StoreBackend selects persistence: memory, file or sqlite.
	StoreBackend string `koanf:"store_backend"`

	// StorePath is the JSON document (file) or database (sqlite) location.
	StorePath string `koanf:"store_path"`

	// SeedFile optionally points at a YAML list of characters used to seed
	// an empty store. The built-in character set is used when empty.
	SeedFile string `koanf:"seed_file"`

	// LeaderboardLimit caps GET /api/scores.
	LeaderboardLimit int `koanf:"leaderboard_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":" + DefaultPort,
		StoreBackend:     "file",
		StorePath:        "db.json",
		LeaderboardLimit: 10,
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LeaderboardLimit < 1:
		return fmt.Errorf("%w: leaderboard_limit must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.StoreBackend) {
	case "memory":
	case "file", "sqlite":
		if strings.TrimSpace(c.StorePath) == "" {
			return fmt.Errorf("%w: store_path is required for %s backend", ErrInvalidConfig, c.StoreBackend)
		}
	default:
		return fmt.Errorf("%w: unknown store_backend %q", ErrInvalidConfig, c.StoreBackend)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
