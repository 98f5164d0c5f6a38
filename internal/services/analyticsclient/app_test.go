package analyticsclient

import (
	"context"
	"testing"

	"analyticsbridge/backend/internal/logger"
	"analyticsbridge/backend/internal/services/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_AnalyticsIsBuiltOnce(t *testing.T) {
	app := NewApp(DefaultConfig(), logger.Discard())

	first, err := app.Analytics()
	require.NoError(t, err)
	second, err := app.Analytics()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestFactory_OverlaysInitOptions(t *testing.T) {
	base := &Config{Host: "https://app.posthog.com", BatchSize: 10, Enabled: true}
	factory := Factory(base, logger.Discard())

	built, err := factory(&analytics.InitOptions{Host: "https://eu.posthog.com"})
	require.NoError(t, err)

	app, ok := built.(*App)
	require.True(t, ok)
	assert.Equal(t, "https://eu.posthog.com", app.config.Host)
	assert.Equal(t, 10, app.config.BatchSize)
	assert.Equal(t, "https://app.posthog.com", base.Host, "base config must not be mutated")
}

func TestFactory_WorksWithDelegate(t *testing.T) {
	d := analytics.NewServerDelegate(analytics.WithAppFactory(Factory(nil, logger.Discard())))

	handle, err := d.Initialize(context.Background(), &analytics.InitOptions{ProjectKey: "phc_test_key"})
	require.NoError(t, err)

	client, ok := handle.(*Client)
	require.True(t, ok)
	t.Cleanup(func() { _ = client.Close() })

	instance, err := d.GetAppInstanceID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, client.InstanceID(), instance.InstanceID)
}
