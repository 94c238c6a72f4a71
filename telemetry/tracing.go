package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StartNavigation opens the root span for one navigation transition. tracer
// may be nil, in which case the returned span is a no-op and ctx is
// returned unchanged — every call site can stay unconditional.
func StartNavigation(ctx context.Context, tracer trace.Tracer, navigationID uint64, url, correlationID string) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, "navigation.transition",
		trace.WithAttributes(
			attribute.Int64("vangoroute.navigation_id", int64(navigationID)),
			attribute.String("vangoroute.url", url),
			attribute.String("vangoroute.correlation_id", correlationID),
		),
	)
}

// StartPhase opens a child span for one pipeline phase (the scheduler opens
// redirects, recognize, guards, resolvers). tracer nil behaves like
// StartNavigation.
func StartPhase(ctx context.Context, tracer trace.Tracer, phase string) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, "navigation."+phase)
}

// EndWithError records err on span (if non-nil) and ends it. Safe to call
// with a no-op span from a nil tracer.
func EndWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}
