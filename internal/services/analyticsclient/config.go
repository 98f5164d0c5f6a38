package analyticsclient

import "time"

// Config represents the PostHog client configuration.
type Config struct {
	ProjectKey    string        `env:"PROJECT_KEY"`
	Host          string        `env:"HOST" envDefault:"https://app.posthog.com"`
	FlushInterval time.Duration `env:"FLUSH_INTERVAL" envDefault:"5s"`
	BatchSize     int           `env:"BATCH_SIZE" envDefault:"250"`
	// Enabled is the initial collection state.
	Enabled bool `env:"COLLECTION_ENABLED" envDefault:"true"`
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:          "https://app.posthog.com",
		FlushInterval: 5 * time.Second,
		BatchSize:     250,
		Enabled:       true,
	}
}
