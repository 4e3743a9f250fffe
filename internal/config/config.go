// Package config provides application configuration management.
// It loads settings from environment variables (optionally seeded from a .env
// file) once at startup and hands an immutable *Config to every component.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// WhatsApp Cloud API
	WhatsApp WhatsAppConfig

	// Metrics Authentication
	MetricsAuthEnabled bool   `env:"METRICS_AUTH_ENABLED" envDefault:"false"`
	MetricsUsername    string `env:"METRICS_USERNAME" envDefault:"prometheus"`
	MetricsPassword    string `env:"METRICS_PASSWORD"`

	// Server Configuration
	Port            string        `env:"PORT" envDefault:"10000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Sentry (disabled when DSN is empty)
	SentryDSN         string  `env:"SENTRY_DSN"`
	SentryEnvironment string  `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	SentrySampleRate  float64 `env:"SENTRY_SAMPLE_RATE" envDefault:"1.0"`

	// Better Stack log shipping (disabled when token is empty)
	BetterStackToken    string `env:"BETTERSTACK_TOKEN"`
	BetterStackEndpoint string `env:"BETTERSTACK_ENDPOINT"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then parses the environment.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if err := c.WhatsApp.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("whatsapp config: %w", err))
	}
	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
	}
	if c.MetricsAuthEnabled {
		if c.MetricsUsername == "" {
			errs = append(errs, errors.New(EnvMetricsUsername+" is required when metrics auth is enabled"))
		}
		if c.MetricsPassword == "" {
			errs = append(errs, errors.New(EnvMetricsPassword+" is required when metrics auth is enabled"))
		}
	}
	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
		errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", EnvSentrySampleRate, c.SentrySampleRate))
	}
	if c.BetterStackEndpoint != "" {
		if _, err := url.ParseRequestURI(c.BetterStackEndpoint); err != nil {
			errs = append(errs, fmt.Errorf("%s is not a valid URL: %w", EnvBetterStackEndpoint, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SentryEnabled reports whether error reporting is configured.
func (c *Config) SentryEnabled() bool {
	return c.SentryDSN != ""
}
