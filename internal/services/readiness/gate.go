// Package readiness provides a one-shot readiness gate. A gate starts pending,
// resolves at most once, and stays resolved for the rest of its life.
package readiness

import (
	"context"
	"sync/atomic"
)

// Gate is a single-resolution signal. The zero value is not usable; use New or NewResolved.
type Gate struct {
	resolved atomic.Bool
	done     chan struct{}
}

// New returns a pending gate.
func New() *Gate {
	return &Gate{done: make(chan struct{})}
}

// NewResolved returns a gate that is already resolved.
func NewResolved() *Gate {
	g := New()
	g.Resolve()
	return g
}

// Resolve releases every current and future waiter. It reports whether this call
// performed the resolution; later calls are no-ops and return false.
func (g *Gate) Resolve() bool {
	if !g.resolved.CompareAndSwap(false, true) {
		return false
	}
	close(g.done)
	return true
}

// Resolved reports whether the gate has been resolved.
func (g *Gate) Resolved() bool {
	return g.resolved.Load()
}

// Done returns a channel closed once the gate resolves.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Wait blocks until the gate resolves or ctx ends. A resolved gate always wins,
// even when ctx is already done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return nil
	default:
	}

	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
