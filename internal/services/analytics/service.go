package analytics

import (
	"context"
)

// Handle is the analytics client a Plugin forwards to. Implementations are treated as
// synchronous: a call returns once the client has accepted it.
type Handle interface {
	SetUserID(id string) error
	SetUserProperties(props *UserProperties) error
	LogEvent(name string, params map[string]interface{}) error
	SetAnalyticsCollectionEnabled(enabled bool) error
}

// App is an application reference that can hand out its analytics Handle.
type App interface {
	Analytics() (Handle, error)
}

// AppFactory builds an App from the serializable fields of InitOptions.
type AppFactory func(opts *InitOptions) (App, error)

// InstanceIdentifier is implemented by handles that expose an app instance id.
type InstanceIdentifier interface {
	InstanceID() string
}

// Resetter is implemented by handles that can forget the current user and instance.
type Resetter interface {
	Reset() error
}

// Plugin defines the analytics operations routed to a platform implementation.
// Every failure is a *PluginError local to the call.
type Plugin interface {
	// Initialize stores the analytics handle derived from opts and returns it.
	Initialize(ctx context.Context, opts *InitOptions) (Handle, error)

	// User analytics methods
	SetUserID(ctx context.Context, opts UserIDOptions) error
	SetUserProperty(ctx context.Context, opts UserPropertyOptions) error

	// Instance and screen methods
	GetAppInstanceID(ctx context.Context) (AppInstance, error)
	SetScreenName(ctx context.Context, opts ScreenNameOptions) error
	Reset(ctx context.Context) error

	// Event methods
	LogEvent(ctx context.Context, opts LogEventOptions) error

	// Collection methods
	SetCollectionEnabled(ctx context.Context, opts CollectionOptions) error
	SetSessionTimeoutDuration(ctx context.Context, opts SessionTimeoutOptions) error
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
}
