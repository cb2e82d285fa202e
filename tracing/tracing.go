// Package tracing provides an OpenTelemetry observer for composed handlers.
// It is entirely optional: tracing is only active when [TracingConfig] is
// wired in via the WithOpenTelemetry option.
package tracing

import (
	"context"
	"net/http"
	"strings"

	"github.com/Keksclan/goRawrLambda/composer"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Keksclan/goRawrLambda/tracing"

// TracingConfig holds the OpenTelemetry configuration used by the observer.
type TracingConfig struct {
	// TracerProvider supplies the Tracer used to create spans. When nil the
	// global otel.GetTracerProvider() is used.
	TracerProvider trace.TracerProvider

	// Propagators extracts trace context from request headers. When nil the
	// global otel.GetTextMapPropagator() is used.
	Propagators propagation.TextMapPropagator
}

func (c *TracingConfig) tracer() trace.Tracer {
	tp := c.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(instrumentationName)
}

func (c *TracingConfig) propagators() propagation.TextMapPropagator {
	if c.Propagators != nil {
		return c.Propagators
	}
	return otel.GetTextMapPropagator()
}

// Observer starts one server span per invocation, adds an event for every
// state transition, and ends the span with the outcome. The span is carried
// in the context handed to hooks and the handler.
type Observer struct {
	tracer trace.Tracer
	props  propagation.TextMapPropagator
}

var _ composer.Observer = (*Observer)(nil)

// NewObserver builds an Observer. A nil cfg uses the global provider and
// propagator.
func NewObserver(cfg *TracingConfig) *Observer {
	if cfg == nil {
		cfg = &TracingConfig{}
	}
	return &Observer{tracer: cfg.tracer(), props: cfg.propagators()}
}

// Begin extracts the remote parent from the request headers and starts the
// invocation span.
func (o *Observer) Begin(ctx context.Context, req *composer.Request, inv *composer.Invocation) context.Context {
	ctx = o.props.Extract(ctx, headerCarrier{req})

	method := strings.ToUpper(req.HTTPMethod)
	route := req.Resource
	if route == "" {
		route = req.Path
	}
	attrs := []attribute.KeyValue{
		attribute.String("faas.trigger", "http"),
		attribute.String("http.request.method", method),
		attribute.String("url.path", req.Path),
		attribute.String("http.route", route),
	}
	if inv.RequestID != "" {
		attrs = append(attrs, attribute.String("faas.invocation_id", inv.RequestID))
	}

	ctx, _ = o.tracer.Start(ctx, spanName(method, route),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)
	return ctx
}

// Transition records the new state as a span event.
func (o *Observer) Transition(ctx context.Context, _ *composer.Invocation, to composer.State) {
	trace.SpanFromContext(ctx).AddEvent("state", trace.WithAttributes(attribute.String("rawr.state", to.String())))
}

// End sets the outcome attributes and status, then ends the span.
func (o *Observer) End(ctx context.Context, inv *composer.Invocation, path composer.Path, resp *composer.Response, err error) {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetAttributes(
		attribute.String("rawr.path", path.String()),
		attribute.String("rawr.request_id", inv.RequestID),
	)
	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case inv.Failed() && inv.Err() != nil:
		// Handled failure: the caller got a response but the cause is kept.
		span.RecordError(inv.Err())
		span.SetStatus(codes.Error, inv.Err().Error())
	case resp != nil && resp.StatusCode >= http.StatusInternalServerError:
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	default:
		span.SetStatus(codes.Ok, "")
	}
}

func spanName(method, route string) string {
	if method == "" {
		return route
	}
	return method + " " + route
}

// headerCarrier adapts request headers to [propagation.TextMapCarrier].
// Lookups are case-insensitive.
type headerCarrier struct {
	req *composer.Request
}

func (c headerCarrier) Get(key string) string { return c.req.Header(key) }

// Set is a no-op; the observer only extracts.
func (c headerCarrier) Set(string, string) {}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.req.Headers)+len(c.req.MultiValueHeaders))
	for k := range c.req.Headers {
		keys = append(keys, k)
	}
	for k := range c.req.MultiValueHeaders {
		keys = append(keys, k)
	}
	return keys
}
