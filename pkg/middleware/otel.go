package middleware

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "flashbar"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "flashbar").
	TracerName string

	// Filter determines which events to trace. Return true to trace.
	// If nil, all events are traced.
	Filter func(ctx *EventContext) bool

	// AttributeExtractor extracts custom attributes, called for each
	// traced event.
	AttributeExtractor func(ctx *EventContext) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) { c.TracerName = name }
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(ctx *EventContext) bool) OTelOption {
	return func(c *OTelConfig) { c.Filter = filter }
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx *EventContext) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) { c.AttributeExtractor = extractor }
}

// OpenTelemetry creates middleware that traces every processed event.
//
// Each event gets a span named after its kind, carrying the session id,
// target node id and resulting patch count. Errors are recorded and set
// the span status. The tracer comes from the global tracer provider;
// configure that in main before serving.
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(next Handler) Handler {
		return func(ctx *EventContext) error {
			if config.Filter != nil && !config.Filter(ctx) {
				return next(ctx)
			}

			attrs := []attribute.KeyValue{
				attribute.String("flashbar.event_kind", ctx.Event.Kind.String()),
				attribute.String("flashbar.event_target", ctx.Event.Target),
				attribute.String("flashbar.session_id", ctx.SessionID),
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(ctx)...)
			}

			spanCtx, span := config.tracer.Start(
				ctx.Context,
				"flashbar."+ctx.Event.Kind.String(),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			ctx.Context = spanCtx
			err := next(ctx)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			span.SetAttributes(attribute.Int("flashbar.patch_count", ctx.PatchCount))
			return err
		}
	}
}
