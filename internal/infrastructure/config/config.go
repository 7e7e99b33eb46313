package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/polysolve/internal/format"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Solver    SolverConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	// Gzip compresses responses for clients that accept it.
	Gzip bool `envconfig:"SERVER_GZIP" default:"true"`
	// H2C serves HTTP/2 without TLS alongside HTTP/1.1.
	H2C bool `envconfig:"SERVER_H2C" default:"false"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	// Global shares one bucket across all clients instead of one per IP.
	Global bool `envconfig:"RATE_LIMIT_GLOBAL" default:"false"`
}

// SolverConfig holds solver and result formatting configuration.
type SolverConfig struct {
	// Format is the output style: ascii, unicode or latex.
	Format       string        `envconfig:"SOLVER_FORMAT" default:"ascii"`
	CacheEnabled bool          `envconfig:"SOLVER_CACHE_ENABLED" default:"true"`
	CacheTTL     time.Duration `envconfig:"SOLVER_CACHE_TTL" default:"10m"`
	CacheCleanup time.Duration `envconfig:"SOLVER_CACHE_CLEANUP" default:"30m"`
	// ConditionWarn is the condition number above which a solved linear
	// system is logged as ill-conditioned.
	ConditionWarn float64 `envconfig:"SOLVER_COND_WARN" default:"1e12"`
}

// Style returns the parsed output style.
func (s SolverConfig) Style() (format.Style, error) {
	return format.ParseStyle(s.Format)
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
			Gzip: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Solver: SolverConfig{
			Format:        "ascii",
			CacheEnabled:  true,
			CacheTTL:      10 * time.Minute,
			CacheCleanup:  30 * time.Minute,
			ConditionWarn: 1e12,
		},
	}
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if _, err := c.Solver.Style(); err != nil {
		return fmt.Errorf("invalid SOLVER_FORMAT: %w", err)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit requires positive RATE_LIMIT_RPS and RATE_LIMIT_BURST")
	}
	if c.Solver.CacheEnabled && c.Solver.CacheTTL <= 0 {
		return fmt.Errorf("SOLVER_CACHE_TTL must be positive when caching is enabled")
	}
	return nil
}
