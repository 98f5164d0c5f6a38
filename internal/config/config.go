// Package config loads the bridge process configuration from the environment.
package config

import (
	"fmt"

	"analyticsbridge/backend/internal/services/analyticsclient"
	"analyticsbridge/backend/internal/telemetry"

	"github.com/caarlos0/env/v11"
)

// Environment selects which Plugin variant the bridge serves.
type Environment string

const (
	EnvironmentWeb    Environment = "web"
	EnvironmentServer Environment = "server"
)

// Config is the process configuration.
type Config struct {
	LogLevel    string      `env:"ANALYTICSBRIDGE_LOG_LEVEL" envDefault:"info"`
	Environment Environment `env:"ANALYTICSBRIDGE_ENVIRONMENT" envDefault:"web"`
	// DeferReadiness makes calls wait for the first initialize instead of failing.
	DeferReadiness bool `env:"ANALYTICSBRIDGE_DEFER_READINESS"`

	PostHog analyticsclient.Config `envPrefix:"POSTHOG_"`
	OTel    telemetry.Config       `envPrefix:"ANALYTICSBRIDGE_OTEL_"`
}

// Load parses Config from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	switch c.Environment {
	case EnvironmentWeb, EnvironmentServer:
	default:
		return fmt.Errorf("unknown environment %q: want %q or %q", c.Environment, EnvironmentWeb, EnvironmentServer)
	}
	if c.PostHog.BatchSize <= 0 {
		return fmt.Errorf("POSTHOG_BATCH_SIZE must be positive, got %d", c.PostHog.BatchSize)
	}
	return nil
}
