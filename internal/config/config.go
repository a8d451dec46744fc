// Package config loads engine configuration from environment variables
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for loan-engine
type Config struct {
	Server      ServerConfig
	RuleBackend RuleBackendConfig
	Rules       RulesConfig
	Log         LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port           int           `env:"SERVER_PORT" envDefault:"8080" validate:"min=1,max=65535"`
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"30s"`
	AllowedOrigins []string      `env:"SERVER_ALLOWED_ORIGINS" envDefault:"*"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RuleBackendConfig holds the external rule backend configuration.
// An empty URL means no external backend: the engine runs fallback-only.
type RuleBackendConfig struct {
	URL           string        `env:"RULE_BACKEND_URL" validate:"omitempty,url"`
	QueryTimeout  time.Duration `env:"RULE_BACKEND_QUERY_TIMEOUT" envDefault:"10s"`
	ProbeInterval time.Duration `env:"RULE_BACKEND_PROBE_INTERVAL" envDefault:"1m"`
}

// RulesConfig holds the rulebase manifest configuration
type RulesConfig struct {
	ManifestPath string `env:"RULES_MANIFEST" envDefault:"rules.yaml"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

// SlogLevel maps the configured level to a slog level
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads configuration from the environment (and a local .env file
// when present) and validates it
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("env.Parse: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
