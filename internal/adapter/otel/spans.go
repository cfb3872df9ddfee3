package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "pricedesk"

// StartCommitSpan starts a span for a review commit.
func StartCommitSpan(ctx context.Context, entryID, decision string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "commit",
		trace.WithAttributes(
			attribute.String("entry.id", entryID),
			attribute.String("commit.decision", decision),
		),
	)
}

// StartMatchSpan starts a span for a matcher pass.
func StartMatchSpan(ctx context.Context) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "match")
}
