// Package config defines process configuration and how it is loaded.
//
// Precedence (low to high): defaults from New, an optional YAML file named
// by NAC_CONFIG, then NAC_* environment variables.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// WorkerCount sets the number of scoring goroutines per selection.
	WorkerCount int `koanf:"worker_count" validate:"gte=1"`

	// DefaultMatchLimit is used when a selection gives no limit.
	DefaultMatchLimit int `koanf:"default_match_limit" validate:"gte=1,ltefield=MaxMatchLimit"`

	// MaxMatchLimit caps POST /v1/matches?limit.
	MaxMatchLimit int `koanf:"max_match_limit" validate:"gte=1,lte=1000"`

	// BingeTolerance is the episodes-per-sitting gap at which the binge
	// sub-score drops to 0.
	BingeTolerance float64 `koanf:"binge_tolerance" validate:"gt=0"`

	// ArchetypesFile optionally points at a YAML archetype weight table.
	ArchetypesFile string `koanf:"archetypes_file"`

	// RequestTimeoutMS bounds each HTTP request; 0 disables the timeout.
	RequestTimeoutMS int `koanf:"request_timeout_ms" validate:"gte=0"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"gte=1024"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		WorkerCount:       runtime.NumCPU(),
		DefaultMatchLimit: 10,
		MaxMatchLimit:     100,
		BingeTolerance:    10,
		RequestTimeoutMS:  5000,
		MaxBodyBytes:      8 << 20,
	}
}
