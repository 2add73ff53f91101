package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	usecaseTracer   = otel.Tracer("gotlocks/internal/usecase")
	usecaseNoopSpan = trace.SpanFromContext(context.Background())
)

// startUsecaseSpan only opens a span under an existing trace.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func groupAttr(groupID string) attribute.KeyValue { return attribute.String("gotlocks.group_id", groupID) }
func slipAttr(slipID string) attribute.KeyValue   { return attribute.String("gotlocks.slip_id", slipID) }
func modeAttr(mode string) attribute.KeyValue     { return attribute.String("gotlocks.scoring_mode", mode) }
