// Package config loads process configuration from the environment
package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/petbot/internal/errors"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the process configuration. Command flags override it.
type Config struct {
	Store      string `env:"PETBOT_STORE" envDefault:"memory"`
	RedisAddr  string `env:"PETBOT_REDIS_ADDR" envDefault:"localhost:6379"`
	SQLitePath string `env:"PETBOT_SQLITE_PATH" envDefault:"petbot.db"`

	// RulesPath is a YAML rule file laid over the canonical rules; empty uses them as is
	RulesPath string `env:"PETBOT_RULES"`
	LogLevel  string `env:"PETBOT_LOG_LEVEL" envDefault:"info"`
}

// Parse reads the environment without validating it, so callers can apply
// overrides first
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return cfg, nil
}

// Load reads and validates the configuration from the environment
func Load() (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the store selection and its settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("PETBOT_STORE", c.Store, []string{StoreMemory, StoreRedis, StoreSQLite}, vb)
	switch c.Store {
	case StoreRedis:
		errors.ValidateRequired("PETBOT_REDIS_ADDR", c.RedisAddr, vb)
	case StoreSQLite:
		errors.ValidateRequired("PETBOT_SQLITE_PATH", c.SQLitePath, vb)
	}
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		vb.Fieldf("PETBOT_LOG_LEVEL", "unknown level %q", c.LogLevel)
	}

	return vb.Build()
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel returns the configured log level, info when unknown
func (c *Config) SlogLevel() slog.Level {
	if level, ok := levels[strings.ToLower(c.LogLevel)]; ok {
		return level
	}
	return slog.LevelInfo
}
