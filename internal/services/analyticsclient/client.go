// Package analyticsclient provides a PostHog-backed analytics.Handle and analytics.App.
//
// The client keeps a current distinct id: the identified user when SetUserID has been
// called, otherwise an anonymous per-instance UUID. Without a project key the client
// accepts every call and sends nothing.
package analyticsclient

import (
	"fmt"
	"sync"

	"analyticsbridge/backend/internal/logger"
	"analyticsbridge/backend/internal/services/analytics"

	"github.com/google/uuid"
	"github.com/posthog/posthog-go"
)

// queue is the part of posthog.Client the handle uses.
type queue interface {
	Enqueue(posthog.Message) error
	Close() error
}

// Client implements analytics.Handle on top of PostHog.
type Client struct {
	mu          sync.Mutex
	queue       queue
	userID      string
	anonymousID string
	enabled     bool
	log         *logger.Logger
}

var (
	_ analytics.Handle             = (*Client)(nil)
	_ analytics.InstanceIdentifier = (*Client)(nil)
	_ analytics.Resetter           = (*Client)(nil)
)

// New creates a PostHog-backed client. A nil config uses DefaultConfig.
func New(config *Config, log *logger.Logger) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = logger.Discard()
	}

	if config.ProjectKey == "" {
		log.Warn("No PostHog project key, so analytics won't track")
		return newClient(nil, config.Enabled, log), nil
	}

	ph, err := posthog.NewWithConfig(
		config.ProjectKey,
		posthog.Config{
			Endpoint:  config.Host,
			Interval:  config.FlushInterval,
			BatchSize: config.BatchSize,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostHog client: %w", err)
	}

	return newClient(ph, config.Enabled, log), nil
}

func newClient(q queue, enabled bool, log *logger.Logger) *Client {
	return &Client{
		queue:       q,
		anonymousID: uuid.NewString(),
		enabled:     enabled,
		log:         log,
	}
}

func (c *Client) distinctID() string {
	if c.userID != "" {
		return c.userID
	}
	return c.anonymousID
}

// enqueue sends msg unless there is no queue or collection is off. Callers hold c.mu.
func (c *Client) enqueue(msg posthog.Message) error {
	if c.queue == nil || !c.enabled {
		return nil
	}
	return c.queue.Enqueue(msg)
}

// SetUserID identifies the current user and links the anonymous instance id to it.
func (c *Client) SetUserID(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.userID = id
	err := c.enqueue(posthog.Identify{
		DistinctId: id,
		Properties: posthog.NewProperties().
			Set("$anon_distinct_id", c.anonymousID),
	})
	if err != nil {
		return fmt.Errorf("failed to identify user: %w", err)
	}
	return nil
}

// SetUserProperties sets person properties on the current distinct id.
func (c *Client) SetUserProperties(props *analytics.UserProperties) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	properties := posthog.NewProperties()
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		properties.Set(pair.Key, pair.Value)
	}

	err := c.enqueue(posthog.Identify{
		DistinctId: c.distinctID(),
		Properties: properties,
	})
	if err != nil {
		return fmt.Errorf("failed to set user properties: %w", err)
	}
	return nil
}

// LogEvent captures an event for the current distinct id.
func (c *Client) LogEvent(name string, params map[string]interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	properties := posthog.NewProperties()
	for k, v := range params {
		properties.Set(k, v)
	}

	err := c.enqueue(posthog.Capture{
		DistinctId: c.distinctID(),
		Event:      name,
		Properties: properties,
	})
	if err != nil {
		return fmt.Errorf("failed to capture event: %w", err)
	}
	return nil
}

// SetAnalyticsCollectionEnabled toggles sending. While disabled every call is accepted
// and dropped.
func (c *Client) SetAnalyticsCollectionEnabled(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled != enabled {
		c.log.Infof("analytics collection enabled=%t", enabled)
	}
	c.enabled = enabled
	return nil
}

// InstanceID returns the anonymous instance id.
func (c *Client) InstanceID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anonymousID
}

// Reset forgets the identified user and rotates the anonymous instance id.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.userID = ""
	c.anonymousID = uuid.NewString()
	return nil
}

// Close flushes pending events and releases the PostHog client.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.queue == nil {
		return nil
	}
	return c.queue.Close()
}
