// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Classify ClassifyConfig
	Data     DataConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds the optional run-history database settings.
// An empty URL disables run history entirely; the pipeline never needs it.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (optional)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is how long a connection may sit idle (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// Enabled reports whether run history is configured.
func (d DatabaseConfig) Enabled() bool { return d.URL != "" }

// ClassifyConfig holds the classification tuning parameters.
type ClassifyConfig struct {
	// Threshold is the minimum acceptance score a detector must strictly
	// exceed before its label is assigned (default: 0.5)
	Threshold float64 `env:"CLASSIFY_THRESHOLD" default:"0.5"`

	// SampleSize bounds how many non-empty values are inspected per column
	// (default: 20)
	SampleSize int `env:"CLASSIFY_SAMPLE_SIZE" default:"20"`
}

// DataConfig holds data directory and reference data settings.
type DataConfig struct {
	// Dir is the directory the file-level operations read CSVs from
	// (default: data)
	Dir string `env:"DATA_DIR" default:"data"`

	// CountriesFile overrides the embedded country reference list
	CountriesFile string `env:"COUNTRIES_FILE"`

	// LegalFile overrides the embedded legal suffix reference list
	LegalFile string `env:"LEGAL_FILE"`

	// CallingCodesFile overrides the embedded calling code reference list
	CallingCodesFile string `env:"CALLING_CODES_FILE"`
}

// RateLimitConfig holds API rate limiting settings.
type RateLimitConfig struct {
	// Enabled toggles per-IP rate limiting (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the per-IP budget (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds authentication and proxy trust settings.
type SecurityConfig struct {
	// RequireAPIKey enables X-API-Key validation on /api routes (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is the comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS"`

	// TrustedProxies is the comma-separated list of CIDRs whose forwarded
	// headers are trusted for client IP extraction
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is one of: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is one of: text, json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
