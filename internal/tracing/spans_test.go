package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func setupTestTracer(t *testing.T) (trace.Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	return provider.Tracer("test-tracer"), exporter
}

func TestRun_Success(t *testing.T) {
	tracer, exporter := setupTestTracer(t)

	err := Run(context.Background(), tracer, SpanPopulate, func(ctx context.Context, span trace.Span) error {
		require.True(t, trace.SpanFromContext(ctx).SpanContext().IsValid(), "ctx carries the span")
		span.SetAttributes(attribute.Int(AttrAdded, 2))
		return nil
	}, attribute.String(AttrNode, "/"))
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, SpanPopulate, spans[0].Name)
	require.Equal(t, codes.Ok, spans[0].Status.Code)
	require.Contains(t, spans[0].Attributes, attribute.String(AttrNode, "/"))
	require.Contains(t, spans[0].Attributes, attribute.Int(AttrAdded, 2))
}

func TestRun_RecordsError(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	boom := errors.New("boom")

	err := Run(context.Background(), tracer, SpanSave, func(context.Context, trace.Span) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status.Code)
	require.Equal(t, "boom", spans[0].Status.Description)
	require.Contains(t, spans[0].Attributes, attribute.String(AttrErrorMessage, "boom"))
	require.Len(t, spans[0].Events, 1, "error is recorded as an event")
}

func TestRun_NilTracer(t *testing.T) {
	called := false
	err := Run(context.Background(), nil, SpanSave, func(context.Context, trace.Span) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, called)
}
