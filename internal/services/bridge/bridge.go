package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"analyticsbridge/backend/internal/logger"
	"analyticsbridge/backend/internal/services/analytics"
	"analyticsbridge/backend/internal/services/callid"

	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "analyticsbridge/backend/internal/services/bridge"

// handlerFunc decodes raw options and invokes the plugin.
type handlerFunc func(ctx context.Context, raw json.RawMessage) (interface{}, error)

type method struct {
	handler handlerFunc
	options interface{}
}

// Bridge dispatches named calls to a Plugin.
type Bridge struct {
	plugin  analytics.Plugin
	methods map[string]method
	ids     *callid.Generator
	log     *logger.Logger
	tracer  trace.Tracer
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithTracerProvider makes the Bridge trace calls through tp instead of the global
// provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(b *Bridge) {
		if tp != nil {
			b.tracer = tp.Tracer(tracerName)
		}
	}
}

// New creates a Bridge serving plugin. A nil log discards output.
func New(plugin analytics.Plugin, log *logger.Logger, opts ...Option) *Bridge {
	if log == nil {
		log = logger.Discard()
	}
	b := &Bridge{
		plugin: plugin,
		ids:    callid.New(),
		log:    log,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.methods = b.register()
	return b
}

func (b *Bridge) register() map[string]method {
	p := b.plugin
	return map[string]method{
		MethodInitialize: {options: analytics.InitOptions{}, handler: func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
			var opts *analytics.InitOptions
			if err := decodeOptional(raw, &opts); err != nil {
				return nil, err
			}
			handle, err := p.Initialize(ctx, opts)
			if err != nil {
				return nil, err
			}
			result := InitializeResult{Initialized: true}
			if ider, ok := handle.(analytics.InstanceIdentifier); ok {
				result.InstanceID = ider.InstanceID()
			}
			return result, nil
		}},
		MethodSetUserID: {options: analytics.UserIDOptions{}, handler: withOptions(p.SetUserID)},
		MethodSetUserProperty: {options: analytics.UserPropertyOptions{}, handler: withOptions(p.SetUserProperty)},
		MethodGetAppInstanceID: {options: noOptions{}, handler: func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
			return p.GetAppInstanceID(ctx)
		}},
		MethodSetScreenName:             {options: analytics.ScreenNameOptions{}, handler: withOptions(p.SetScreenName)},
		MethodReset:                     {options: noOptions{}, handler: withoutOptions(p.Reset)},
		MethodLogEvent:                  {options: analytics.LogEventOptions{}, handler: withOptions(p.LogEvent)},
		MethodSetCollectionEnabled:      {options: analytics.CollectionOptions{}, handler: withOptions(p.SetCollectionEnabled)},
		MethodSetSessionTimeoutDuration: {options: analytics.SessionTimeoutOptions{}, handler: withOptions(p.SetSessionTimeoutDuration)},
		MethodEnable:                    {options: noOptions{}, handler: withoutOptions(p.Enable)},
		MethodDisable:                   {options: noOptions{}, handler: withoutOptions(p.Disable)},
	}
}

// withOptions adapts a plugin operation taking typed options. Absent options decode to
// the zero value, which the plugin then rejects field by field.
func withOptions[T any](op func(context.Context, T) error) handlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var opts T
		if err := decodeOptional(raw, &opts); err != nil {
			return nil, err
		}
		return nil, op(ctx, opts)
	}
}

func withoutOptions(op func(context.Context) error) handlerFunc {
	return func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
		return nil, op(ctx)
	}
}

// decodeOptional leaves target untouched when raw is empty or null.
func decodeOptional(raw json.RawMessage, target interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, target); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// Methods returns the registered method names in sorted order.
func (b *Bridge) Methods() []string {
	names := make([]string, 0, len(b.methods))
	for name := range b.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema returns the JSON schema of a method's options.
func (b *Bridge) Schema(name string) ([]byte, error) {
	m, ok := b.methods[name]
	if !ok {
		return nil, fmt.Errorf("method %q not found", name)
	}

	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(m.options)

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema for %s: %w", name, err)
	}
	return data, nil
}

// Call dispatches req and reports its outcome. Failures never escape as Go errors:
// they become Response.Error.
func (b *Bridge) Call(ctx context.Context, req Request) Response {
	if req.ID == "" {
		req.ID = b.ids.Next()
	}
	resp := Response{ID: req.ID, Method: req.Method}

	ctx, span := b.tracer.Start(ctx, "bridge."+req.Method, trace.WithAttributes(
		attribute.String("bridge.call_id", req.ID),
		attribute.String("bridge.method", req.Method),
	))
	defer span.End()

	m, ok := b.methods[req.Method]
	if !ok {
		resp.Error = fmt.Sprintf("method %q not found", req.Method)
		span.SetStatus(codes.Error, resp.Error)
		b.log.Debug("dispatch", map[string]interface{}{"id": req.ID, "method": req.Method, "ok": false})
		return resp
	}

	result, err := m.handler(ctx, req.Options)
	if err != nil {
		resp.Error = err.Error()
		var pluginErr *analytics.PluginError
		if errors.As(err, &pluginErr) {
			span.SetAttributes(attribute.String("bridge.error_code", string(pluginErr.Code)))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, resp.Error)
	} else {
		resp.Result = result
	}

	b.log.Debug("dispatch", map[string]interface{}{"id": req.ID, "method": req.Method, "ok": resp.OK()})
	return resp
}

// Serve reads newline-delimited JSON requests from r and writes one response line per
// request to w, until r is exhausted or ctx ends. Lines that are not valid requests get
// an error response.
//
// Each request runs on its own goroutine, so a call parked on the readiness gate does
// not stop Serve from reading the initialize call that releases it. Responses are
// written in completion order; callers match them by id. Serve returns once every
// in-flight call has answered.
func (b *Bridge) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		enc      = json.NewEncoder(w)
		writeErr error
	)
	write := func(resp Response) {
		mu.Lock()
		defer mu.Unlock()
		if writeErr != nil {
			return
		}
		if err := enc.Encode(resp); err != nil {
			writeErr = fmt.Errorf("bridge: failed to encode response: %w", err)
		}
	}
	failed := func() error {
		mu.Lock()
		defer mu.Unlock()
		return writeErr
	}

	var loopErr error
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			loopErr = err
			break
		}
		if err := failed(); err != nil {
			break
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			write(Response{ID: b.ids.Next(), Error: fmt.Sprintf("invalid request: %v", err)})
			continue
		}

		wg.Add(1)
		go func(req Request) {
			defer wg.Done()
			write(b.Call(ctx, req))
		}(req)
	}
	if loopErr == nil {
		if err := scanner.Err(); err != nil {
			loopErr = fmt.Errorf("bridge: failed to read request: %w", err)
		}
	}

	wg.Wait()
	if loopErr != nil {
		return loopErr
	}
	return failed()
}
