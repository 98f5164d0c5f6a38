package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, EnvironmentWeb, cfg.Environment)
	assert.False(t, cfg.DeferReadiness)
	assert.Empty(t, cfg.PostHog.ProjectKey)
	assert.Equal(t, "https://app.posthog.com", cfg.PostHog.Host)
	assert.Equal(t, 5*time.Second, cfg.PostHog.FlushInterval)
	assert.Equal(t, 250, cfg.PostHog.BatchSize)
	assert.True(t, cfg.PostHog.Enabled)
	assert.True(t, cfg.OTel.Enabled)
	assert.Empty(t, cfg.OTel.Endpoint)
	assert.False(t, cfg.OTel.Active())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ANALYTICSBRIDGE_LOG_LEVEL", "debug")
	t.Setenv("ANALYTICSBRIDGE_ENVIRONMENT", "server")
	t.Setenv("ANALYTICSBRIDGE_DEFER_READINESS", "true")
	t.Setenv("POSTHOG_PROJECT_KEY", "phc_test_key")
	t.Setenv("POSTHOG_HOST", "https://eu.posthog.com")
	t.Setenv("POSTHOG_FLUSH_INTERVAL", "250ms")
	t.Setenv("POSTHOG_BATCH_SIZE", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, EnvironmentServer, cfg.Environment)
	assert.True(t, cfg.DeferReadiness)
	assert.Equal(t, "phc_test_key", cfg.PostHog.ProjectKey)
	assert.Equal(t, "https://eu.posthog.com", cfg.PostHog.Host)
	assert.Equal(t, 250*time.Millisecond, cfg.PostHog.FlushInterval)
	assert.Equal(t, 10, cfg.PostHog.BatchSize)
}

func TestLoad_Tracing(t *testing.T) {
	t.Setenv("ANALYTICSBRIDGE_OTEL_ENDPOINT", "http://localhost:4318")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4318", cfg.OTel.Endpoint)
	assert.True(t, cfg.OTel.Active())

	t.Setenv("ANALYTICSBRIDGE_OTEL_ENABLED", "false")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.OTel.Active())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown environment", func(t *testing.T) {
		t.Setenv("ANALYTICSBRIDGE_ENVIRONMENT", "android")
		_, err := Load()
		assert.ErrorContains(t, err, "unknown environment")
	})

	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("POSTHOG_FLUSH_INTERVAL", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "parse env")
	})

	t.Run("non positive batch size", func(t *testing.T) {
		t.Setenv("POSTHOG_BATCH_SIZE", "0")
		_, err := Load()
		assert.ErrorContains(t, err, "POSTHOG_BATCH_SIZE")
	})
}
