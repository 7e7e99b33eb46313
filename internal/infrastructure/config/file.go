package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config for YAML and TOML files. Pointer fields tell an
// absent key from a zero value; durations are strings like "90s".
type fileConfig struct {
	Server struct {
		Port *string `yaml:"port" toml:"port"`
		Host *string `yaml:"host" toml:"host"`
		Gzip *bool   `yaml:"gzip" toml:"gzip"`
		H2C  *bool   `yaml:"h2c" toml:"h2c"`
	} `yaml:"server" toml:"server"`
	Logging struct {
		Level       *string `yaml:"level" toml:"level"`
		Development *bool   `yaml:"development" toml:"development"`
	} `yaml:"logging" toml:"logging"`
	RateLimit struct {
		RequestsPerSecond *int  `yaml:"rps" toml:"rps"`
		Burst             *int  `yaml:"burst" toml:"burst"`
		Enabled           *bool `yaml:"enabled" toml:"enabled"`
		Global            *bool `yaml:"global" toml:"global"`
	} `yaml:"rate_limit" toml:"rate_limit"`
	Solver struct {
		Format        *string  `yaml:"format" toml:"format"`
		CacheEnabled  *bool    `yaml:"cache_enabled" toml:"cache_enabled"`
		CacheTTL      *string  `yaml:"cache_ttl" toml:"cache_ttl"`
		CacheCleanup  *string  `yaml:"cache_cleanup" toml:"cache_cleanup"`
		ConditionWarn *float64 `yaml:"condition_warn" toml:"condition_warn"`
	} `yaml:"solver" toml:"solver"`
}

// LoadFile reads a YAML (.yaml, .yml) or TOML (.toml) file over Default().
// Keys missing from the file keep their defaults; the environment is not
// consulted.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := Default()
	if err := fc.apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *Config) error {
	set(&cfg.Server.Port, fc.Server.Port)
	set(&cfg.Server.Host, fc.Server.Host)
	set(&cfg.Server.Gzip, fc.Server.Gzip)
	set(&cfg.Server.H2C, fc.Server.H2C)

	set(&cfg.Logging.Level, fc.Logging.Level)
	set(&cfg.Logging.Development, fc.Logging.Development)

	set(&cfg.RateLimit.RequestsPerSecond, fc.RateLimit.RequestsPerSecond)
	set(&cfg.RateLimit.Burst, fc.RateLimit.Burst)
	set(&cfg.RateLimit.Enabled, fc.RateLimit.Enabled)
	set(&cfg.RateLimit.Global, fc.RateLimit.Global)

	set(&cfg.Solver.Format, fc.Solver.Format)
	set(&cfg.Solver.CacheEnabled, fc.Solver.CacheEnabled)
	set(&cfg.Solver.ConditionWarn, fc.Solver.ConditionWarn)
	if err := setDuration(&cfg.Solver.CacheTTL, fc.Solver.CacheTTL, "solver.cache_ttl"); err != nil {
		return err
	}
	return setDuration(&cfg.Solver.CacheCleanup, fc.Solver.CacheCleanup, "solver.cache_cleanup")
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *string, key string) error {
	if src == nil {
		return nil
	}
	d, err := time.ParseDuration(*src)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
