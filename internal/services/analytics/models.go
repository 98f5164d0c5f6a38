// Package analytics provides the gated analytics delegate: every handle-dependent
// operation waits on a one-shot readiness gate, validates its options and forwards
// them to a single analytics Handle.
//
// Two variants satisfy Plugin:
//   - Delegate, the restricted web variant, where platform-only calls are stubs or
//     fail with ErrNotSupported
//   - ServerDelegate, which backs Enable, Disable, Reset and GetAppInstanceID with the handle
package analytics

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// UserProperties is an insertion-ordered set of user property assignments.
type UserProperties = orderedmap.OrderedMap[string, string]

// NewUserProperties returns an empty UserProperties.
func NewUserProperties() *UserProperties {
	return orderedmap.New[string, string]()
}

// InitOptions configures Initialize. Handle and App are in-process references and are
// never serialized; ProjectKey and Host let an AppFactory construct an App.
type InitOptions struct {
	Handle     Handle `json:"-"`
	App        App    `json:"-"`
	ProjectKey string `json:"projectKey,omitempty" jsonschema:"description=Analytics project API key"`
	Host       string `json:"host,omitempty" jsonschema:"description=Analytics ingestion host"`
}

// UserIDOptions carries the user id to associate with subsequent events.
type UserIDOptions struct {
	UserID string `json:"userId" validate:"required" jsonschema:"required"`
}

// UserPropertyOptions sets a single user property.
type UserPropertyOptions struct {
	Name  string `json:"name" validate:"required" jsonschema:"required"`
	Value string `json:"value" validate:"required" jsonschema:"required"`
}

// LogEventOptions describes an app event. Params are forwarded unchanged.
type LogEventOptions struct {
	Name   string                 `json:"name" validate:"required" jsonschema:"required"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// CollectionOptions toggles analytics collection. An omitted Enabled means false.
type CollectionOptions struct {
	Enabled bool `json:"enabled"`
}

// ScreenNameOptions names the current screen.
type ScreenNameOptions struct {
	ScreenName   string `json:"screenName"`
	NameOverride string `json:"nameOverride,omitempty"`
}

// SessionTimeoutOptions sets the inactivity duration, in milliseconds, that ends a session.
type SessionTimeoutOptions struct {
	Duration int64 `json:"duration"`
}

// AppInstance is the result of GetAppInstanceID. InstanceID is empty when the
// environment has no instance concept.
type AppInstance struct {
	InstanceID string `json:"instanceId"`
}
