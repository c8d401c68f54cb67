// Package config loads the YAML configuration shared by the CLI and the HTTP
// server.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/evdnx/gotix/registry"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Suite  SuiteConfig  `yaml:"suite"`

	// Defaults overrides indicator parameter defaults: id → name → value.
	Defaults map[string]map[string]any `yaml:"defaults"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string  `yaml:"addr"`
	RateLimitRPS    float64 `yaml:"rate_limit_rps"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	MaxBars         int     `yaml:"max_bars"`
	ReadTimeoutSec  int     `yaml:"read_timeout_sec"`
	WriteTimeoutSec int     `yaml:"write_timeout_sec"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// SuiteConfig bounds batch evaluation.
type SuiteConfig struct {
	Workers     int `yaml:"workers"`
	MaxRequests int `yaml:"max_requests"`
}

// DefaultConfig returns a configuration that passes Validate.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			RateLimitRPS:    20,
			RateLimitBurst:  40,
			MaxBars:         100_000,
			ReadTimeoutSec:  10,
			WriteTimeoutSec: 30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Suite: SuiteConfig{
			Workers:     4,
			MaxRequests: 64,
		},
	}
}

// Load reads a YAML file. Environment variables are expanded before parsing
// and keys missing from the file keep their DefaultConfig values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses YAML bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, "server.addr is required")
	}
	if c.Server.RateLimitRPS <= 0 {
		errs = append(errs, "server.rate_limit_rps must be positive")
	}
	if c.Server.RateLimitBurst < 1 {
		errs = append(errs, "server.rate_limit_burst must be at least 1")
	}
	if c.Server.MaxBars < 1 {
		errs = append(errs, "server.max_bars must be at least 1")
	}
	if c.Server.ReadTimeoutSec < 0 || c.Server.WriteTimeoutSec < 0 {
		errs = append(errs, "server timeouts must not be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format %q must be text or json", c.Log.Format))
	}

	if c.Suite.Workers < 1 {
		errs = append(errs, "suite.workers must be at least 1")
	}
	if c.Suite.MaxRequests < 1 {
		errs = append(errs, "suite.max_requests must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

// ApplyDefaults installs the parameter overrides into reg. Overrides are
// checked against each indicator's schema, so an unknown indicator or a bad
// value fails here rather than at call time.
func (c *Config) ApplyDefaults(reg *registry.Registry) error {
	ids := make([]string, 0, len(c.Defaults))
	for id := range c.Defaults {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []string
	for _, id := range ids {
		if err := reg.SetDefaults(id, c.Defaults[id]); err != nil {
			errs = append(errs, fmt.Sprintf("defaults.%s: %v", id, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
