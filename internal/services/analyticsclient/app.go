package analyticsclient

import (
	"sync"

	"analyticsbridge/backend/internal/logger"
	"analyticsbridge/backend/internal/services/analytics"
)

// App lazily builds a single Client and hands it out through Analytics.
type App struct {
	config *Config
	log    *logger.Logger

	once   sync.Once
	client *Client
	err    error
}

var _ analytics.App = (*App)(nil)

// NewApp returns an App for config. The PostHog client is built on first use.
func NewApp(config *Config, log *logger.Logger) *App {
	return &App{config: config, log: log}
}

// Analytics returns the app's client, creating it on the first call.
func (a *App) Analytics() (analytics.Handle, error) {
	a.once.Do(func() {
		a.client, a.err = New(a.config, a.log)
	})
	if a.err != nil {
		return nil, a.err
	}
	return a.client, nil
}

// Factory returns an analytics.AppFactory that overlays InitOptions on base.
func Factory(base *Config, log *logger.Logger) analytics.AppFactory {
	return func(opts *analytics.InitOptions) (analytics.App, error) {
		config := DefaultConfig()
		if base != nil {
			*config = *base
		}
		if opts.ProjectKey != "" {
			config.ProjectKey = opts.ProjectKey
		}
		if opts.Host != "" {
			config.Host = opts.Host
		}
		return NewApp(config, log), nil
	}
}
