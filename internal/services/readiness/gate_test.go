package readiness

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_Pending(t *testing.T) {
	g := New()
	assert.False(t, g.Resolved())

	select {
	case <-g.Done():
		t.Fatal("pending gate should not be done")
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := g.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGate_NewResolved(t *testing.T) {
	g := NewResolved()
	assert.True(t, g.Resolved())
	require.NoError(t, g.Wait(context.Background()))
	assert.False(t, g.Resolve(), "an already resolved gate must not resolve again")
}

func TestGate_ResolvedWinsOverCancelledContext(t *testing.T) {
	g := NewResolved()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, g.Wait(ctx))
}

func TestGate_ReleasesAllWaiters(t *testing.T) {
	g := New()

	const waiters = 16
	var released atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := g.Wait(context.Background()); err == nil {
				released.Add(1)
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), released.Load(), "no waiter may pass before resolution")

	assert.True(t, g.Resolve())
	wg.Wait()
	assert.Equal(t, int32(waiters), released.Load())

	// Late waiters observe completion permanently.
	require.NoError(t, g.Wait(context.Background()))
}

func TestGate_ResolveIsIdempotentUnderContention(t *testing.T) {
	g := New()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Resolve() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.True(t, g.Resolved())
}
