package analytics

import (
	"context"
	"fmt"
)

// ServerDelegate is the server variant of Plugin. It shares Delegate's gating and
// validation and backs the collection toggles, Reset and GetAppInstanceID with the handle.
type ServerDelegate struct {
	*Delegate
}

// NewServerDelegate creates a ServerDelegate with the same options as NewDelegate.
func NewServerDelegate(opts ...Option) *ServerDelegate {
	return &ServerDelegate{Delegate: NewDelegate(opts...)}
}

var _ Plugin = (*ServerDelegate)(nil)

// Enable turns analytics collection on.
func (s *ServerDelegate) Enable(ctx context.Context) error {
	return s.SetCollectionEnabled(ctx, CollectionOptions{Enabled: true})
}

// Disable turns analytics collection off.
func (s *ServerDelegate) Disable(ctx context.Context) error {
	return s.SetCollectionEnabled(ctx, CollectionOptions{Enabled: false})
}

// GetAppInstanceID returns the handle's instance id when it has one. It never waits
// on the gate and never fails.
func (s *ServerDelegate) GetAppInstanceID(ctx context.Context) (AppInstance, error) {
	if ider, ok := s.current().(InstanceIdentifier); ok {
		return AppInstance{InstanceID: ider.InstanceID()}, nil
	}
	return AppInstance{}, nil
}

// Reset clears the handle's user and instance state when the handle supports it.
func (s *ServerDelegate) Reset(ctx context.Context) error {
	resetter, ok := s.current().(Resetter)
	if !ok {
		return nil
	}
	if err := resetter.Reset(); err != nil {
		return fmt.Errorf("failed to reset analytics: %w", err)
	}
	return nil
}
