// Command analytics-bridge serves the analytics plugin over stdin/stdout.
//
// Each input line is a JSON request such as
//
//	{"id":"1","method":"logEvent","options":{"name":"purchase","params":{"amount":10}}}
//
// and produces one JSON response line. Configuration comes from the environment;
// see internal/config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"analyticsbridge/backend/internal/config"
	"analyticsbridge/backend/internal/logger"
	"analyticsbridge/backend/internal/services/analytics"
	"analyticsbridge/backend/internal/services/analyticsclient"
	"analyticsbridge/backend/internal/services/bridge"
	"analyticsbridge/backend/internal/telemetry"
)

const serviceName = "analytics-bridge"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "analytics-bridge: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	schema := flag.String("schema", "", "print the options JSON schema of a method and exit")
	methods := flag.Bool("methods", false, "list the supported methods and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Responses own stdout; logs go to stderr.
	log := logger.NewWithLevel(serviceName, cfg.LogLevel, os.Stderr)

	plugin := newPlugin(cfg, log)
	b := bridge.New(plugin, log.Named("bridge"))

	switch {
	case *methods:
		for _, name := range b.Methods() {
			fmt.Println(name)
		}
		return nil
	case *schema != "":
		data, err := b.Schema(*schema)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTel, serviceName)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Errorf("failed to flush traces: %v", err)
		}
	}()

	log.Infof("serving %s analytics plugin on stdio", cfg.Environment)
	serveErr := b.Serve(ctx, os.Stdin, os.Stdout)

	if err := closeHandle(plugin); err != nil {
		log.Errorf("failed to flush analytics: %v", err)
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		return serveErr
	}
	return nil
}

type pluginWithHandle interface {
	analytics.Plugin
	Handle() analytics.Handle
}

func newPlugin(cfg *config.Config, log *logger.Logger) pluginWithHandle {
	opts := []analytics.Option{
		analytics.WithLogger(log.Named("delegate")),
		analytics.WithAppFactory(analyticsclient.Factory(&cfg.PostHog, log.Named("posthog"))),
	}
	if cfg.DeferReadiness {
		opts = append(opts, analytics.WithDeferredReadiness())
	}

	if cfg.Environment == config.EnvironmentServer {
		return analytics.NewServerDelegate(opts...)
	}
	return analytics.NewDelegate(opts...)
}

// closeHandle flushes the current handle when it buffers events.
func closeHandle(plugin pluginWithHandle) error {
	closer, ok := plugin.Handle().(io.Closer)
	if !ok {
		return nil
	}
	return closer.Close()
}
