package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/regform/pkg/regform"
	"github.com/vango-dev/regform/pkg/submit"
)

// Default tracer name for regform.
const defaultTracerName = "regform"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "regform").
	TracerName string

	// TracerProvider overrides the global tracer provider.
	TracerProvider trace.TracerProvider

	// IncludeEmail includes the submitted email in traces.
	// Personal data - disabled by default.
	IncludeEmail bool

	// AttributeExtractor extracts custom attributes from the record.
	AttributeExtractor func(rec regform.Record) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeEmail enables including the email in traces.
func WithIncludeEmail(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeEmail = include
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(rec regform.Record) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func resolveOTelConfig(opts []OTelOption) OTelConfig {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerName == "" {
		config.TracerName = defaultTracerName
	}
	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}
	return config
}

// OpenTelemetry creates submit middleware that traces every submission.
// The span carries the organization presence, optionally the email, and
// records the submitter's error.
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main() before starting the
// server:
//
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) submit.Middleware {
	config := resolveOTelConfig(opts)

	return func(next regform.Submitter) regform.Submitter {
		return regform.SubmitterFunc(func(ctx context.Context, rec regform.Record) error {
			attrs := []attribute.KeyValue{
				attribute.Bool("regform.has_organization", rec.Organization != ""),
				attribute.Bool("regform.has_full_name", rec.FullName != ""),
			}
			if config.IncludeEmail {
				attrs = append(attrs, attribute.String("regform.email", rec.Email))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(rec)...)
			}

			spanCtx, span := config.tracer.Start(ctx, "regform.submit",
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
				trace.WithTimestamp(time.Now()),
			)
			defer span.End()

			err := next.Submit(spanCtx, rec)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			return err
		})
	}
}

// EventTracer starts spans for browser events handled by a page session.
type EventTracer struct {
	tracer trace.Tracer
}

// NewEventTracer returns an EventTracer using the same options as
// OpenTelemetry.
func NewEventTracer(opts ...OTelOption) *EventTracer {
	config := resolveOTelConfig(opts)
	return &EventTracer{tracer: config.tracer}
}

// Start opens a span for one event. The caller ends it with End.
func (t *EventTracer) Start(ctx context.Context, sessionID string, ev regform.Event) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "regform."+ev.Type,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("regform.session_id", sessionID),
			attribute.String("regform.event_type", ev.Type),
			attribute.String("regform.role", string(ev.Role)),
		),
	)
}

// End records the event result on the span and ends it.
func End(span trace.Span, out *regform.Outcome, err error) {
	if out != nil {
		span.SetAttributes(
			attribute.String("regform.state", out.State.String()),
			attribute.Int("regform.failures", len(out.Failures)),
		)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// SpanFromContext returns the span OpenTelemetry started for the current
// submission, or a no-op span.
//
//	func (c *client) Submit(ctx context.Context, rec regform.Record) error {
//	    middleware.SpanFromContext(ctx).SetAttributes(attribute.Int("crm.attempt", 1))
//	    ...
//	}
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}
