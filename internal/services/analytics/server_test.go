package analytics_test

import (
	"context"
	"errors"
	"testing"

	"analyticsbridge/backend/internal/services/analytics"
	"analyticsbridge/backend/internal/services/analytics/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerDelegate(t *testing.T) {
	ctx := context.Background()

	t.Run("enable and disable toggle collection", func(t *testing.T) {
		handle := &testutil.MockHandle{}
		handle.On("SetAnalyticsCollectionEnabled", true).Return(nil).Once()
		handle.On("SetAnalyticsCollectionEnabled", false).Return(nil).Once()

		s := analytics.NewServerDelegate()
		_, err := s.Initialize(ctx, &analytics.InitOptions{Handle: handle})
		require.NoError(t, err)

		require.NoError(t, s.Enable(ctx))
		require.NoError(t, s.Disable(ctx))
		handle.AssertExpectations(t)
	})

	t.Run("enable before initialize is not initialized", func(t *testing.T) {
		s := analytics.NewServerDelegate()
		assert.ErrorIs(t, s.Enable(ctx), analytics.ErrNotInitialized)
	})

	t.Run("instance id comes from the handle", func(t *testing.T) {
		handle := &testutil.MockServerHandle{}
		handle.On("InstanceID").Return("5f0c7a52-3f7e-4c1c-9d0a-2c2b1b1a9e11")

		s := analytics.NewServerDelegate()
		instance, err := s.GetAppInstanceID(ctx)
		require.NoError(t, err)
		assert.Empty(t, instance.InstanceID, "no handle yet")

		_, err = s.Initialize(ctx, &analytics.InitOptions{Handle: handle})
		require.NoError(t, err)

		instance, err = s.GetAppInstanceID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "5f0c7a52-3f7e-4c1c-9d0a-2c2b1b1a9e11", instance.InstanceID)
	})

	t.Run("reset delegates when supported", func(t *testing.T) {
		handle := &testutil.MockServerHandle{}
		handle.On("Reset").Return(nil).Once()

		s := analytics.NewServerDelegate()
		require.NoError(t, s.Reset(ctx), "reset without a handle is a no-op")

		_, err := s.Initialize(ctx, &analytics.InitOptions{Handle: handle})
		require.NoError(t, err)
		require.NoError(t, s.Reset(ctx))
		handle.AssertExpectations(t)
	})

	t.Run("reset failure is wrapped", func(t *testing.T) {
		cause := errors.New("closed")
		handle := &testutil.MockServerHandle{}
		handle.On("Reset").Return(cause)

		s := analytics.NewServerDelegate()
		_, err := s.Initialize(ctx, &analytics.InitOptions{Handle: handle})
		require.NoError(t, err)
		assert.ErrorIs(t, s.Reset(ctx), cause)
	})

	t.Run("session timeout stays unsupported", func(t *testing.T) {
		s := analytics.NewServerDelegate()
		assert.ErrorIs(t, s.SetSessionTimeoutDuration(ctx, analytics.SessionTimeoutOptions{Duration: 1}), analytics.ErrNotSupported)
	})
}

func TestDelegate_HandleAccessor(t *testing.T) {
	s := analytics.NewServerDelegate()
	assert.Nil(t, s.Handle())

	handle := &testutil.MockHandle{}
	_, err := s.Initialize(context.Background(), &analytics.InitOptions{Handle: handle})
	require.NoError(t, err)
	assert.Same(t, handle, s.Handle())
}
