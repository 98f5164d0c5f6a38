package analytics

import (
	"context"
	"fmt"
	"io"
	"sync"

	"analyticsbridge/backend/internal/logger"
	"analyticsbridge/backend/internal/services/readiness"
)

// Delegate is the restricted web variant of Plugin. Handle-dependent operations wait on
// the readiness gate, fail with ErrNotInitialized while no handle exists, validate their
// options and forward to the handle.
type Delegate struct {
	mu      sync.RWMutex
	handle  Handle
	ready   *readiness.Gate
	factory AppFactory
	log     *logger.Logger
}

// Option configures a Delegate.
type Option func(*Delegate)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(log *logger.Logger) Option {
	return func(d *Delegate) {
		if log != nil {
			d.log = log
		}
	}
}

// WithAppFactory sets the factory used when InitOptions carries neither a Handle nor an App.
func WithAppFactory(factory AppFactory) Option {
	return func(d *Delegate) {
		d.factory = factory
	}
}

// WithDeferredReadiness starts the gate pending, so handle-dependent calls queue
// behind the first Initialize instead of failing immediately.
func WithDeferredReadiness() Option {
	return func(d *Delegate) {
		d.ready = readiness.New()
	}
}

// NewDelegate creates a Delegate. Unless WithDeferredReadiness is given the gate is
// resolved at construction.
func NewDelegate(opts ...Option) *Delegate {
	d := &Delegate{
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.ready == nil {
		d.ready = readiness.NewResolved()
	}
	return d
}

var _ Plugin = (*Delegate)(nil)

// Ready exposes the readiness gate.
func (d *Delegate) Ready() *readiness.Gate {
	return d.ready
}

// Initialize derives the analytics handle from opts and stores it, replacing any earlier
// handle. A replaced handle that implements io.Closer is closed. Every attempt,
// successful or not, resolves the gate.
func (d *Delegate) Initialize(ctx context.Context, opts *InitOptions) (Handle, error) {
	defer d.ready.Resolve()

	if opts == nil || (opts.Handle == nil && opts.App == nil && opts.ProjectKey == "") {
		return nil, ErrConfigurationMissing
	}

	handle, err := d.resolveHandle(opts)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	previous := d.handle
	d.handle = handle
	d.mu.Unlock()

	d.log.Debug("analytics handle ready", map[string]interface{}{
		"replaced": previous != nil,
	})
	if previous != nil && previous != handle {
		d.release(previous)
	}
	return handle, nil
}

// release closes a handle that is no longer reachable through the delegate.
func (d *Delegate) release(handle Handle) {
	closer, ok := handle.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		d.log.Warnf("failed to close replaced analytics handle: %v", err)
	}
}

func (d *Delegate) resolveHandle(opts *InitOptions) (Handle, error) {
	if opts.Handle != nil {
		return opts.Handle, nil
	}

	app := opts.App
	if app == nil && d.factory != nil && opts.ProjectKey != "" {
		built, err := d.factory(opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotInitialized, err)
		}
		app = built
	}
	if app == nil {
		return nil, ErrNotInitialized
	}

	handle, err := app.Analytics()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotInitialized, err)
	}
	if handle == nil {
		return nil, ErrNotInitialized
	}
	return handle, nil
}

// Handle returns the current analytics handle, or nil before a successful Initialize.
func (d *Delegate) Handle() Handle {
	return d.current()
}

func (d *Delegate) current() Handle {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.handle
}

// gated waits for readiness and returns the handle or ErrNotInitialized.
func (d *Delegate) gated(ctx context.Context) (Handle, error) {
	if err := d.ready.Wait(ctx); err != nil {
		return nil, err
	}
	handle := d.current()
	if handle == nil {
		return nil, ErrNotInitialized
	}
	return handle, nil
}

// SetUserID sets the user id on the handle.
func (d *Delegate) SetUserID(ctx context.Context, opts UserIDOptions) error {
	handle, err := d.gated(ctx)
	if err != nil {
		return err
	}
	if err := checkRequired(opts); err != nil {
		return err
	}

	if err := handle.SetUserID(opts.UserID); err != nil {
		return fmt.Errorf("failed to set user id: %w", err)
	}
	return nil
}

// SetUserProperty sets a single user property as a one-entry mapping {name: value}.
func (d *Delegate) SetUserProperty(ctx context.Context, opts UserPropertyOptions) error {
	handle, err := d.gated(ctx)
	if err != nil {
		return err
	}
	if err := checkRequired(opts); err != nil {
		return err
	}

	props := NewUserProperties()
	props.Set(opts.Name, opts.Value)
	if err := handle.SetUserProperties(props); err != nil {
		return fmt.Errorf("failed to set user property: %w", err)
	}
	return nil
}

// LogEvent forwards the event name and params to the handle.
func (d *Delegate) LogEvent(ctx context.Context, opts LogEventOptions) error {
	handle, err := d.gated(ctx)
	if err != nil {
		return err
	}
	if err := checkRequired(opts); err != nil {
		return err
	}

	if err := handle.LogEvent(opts.Name, opts.Params); err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}

// SetCollectionEnabled forwards the collection flag to the handle.
func (d *Delegate) SetCollectionEnabled(ctx context.Context, opts CollectionOptions) error {
	handle, err := d.gated(ctx)
	if err != nil {
		return err
	}

	if err := handle.SetAnalyticsCollectionEnabled(opts.Enabled); err != nil {
		return fmt.Errorf("failed to set collection enabled: %w", err)
	}
	return nil
}

// GetAppInstanceID has no instance concept on the web and returns an empty AppInstance.
func (d *Delegate) GetAppInstanceID(ctx context.Context) (AppInstance, error) {
	return AppInstance{}, nil
}

// SetScreenName is a no-op on the web.
func (d *Delegate) SetScreenName(ctx context.Context, opts ScreenNameOptions) error {
	return nil
}

// Reset is a no-op on the web.
func (d *Delegate) Reset(ctx context.Context) error {
	return nil
}

// SetSessionTimeoutDuration always fails with ErrNotSupported.
func (d *Delegate) SetSessionTimeoutDuration(ctx context.Context, opts SessionTimeoutOptions) error {
	return ErrNotSupported
}

// Enable fails with ErrNotSupported on the web.
func (d *Delegate) Enable(ctx context.Context) error {
	return ErrNotSupported
}

// Disable fails with ErrNotSupported on the web.
func (d *Delegate) Disable(ctx context.Context) error {
	return ErrNotSupported
}
