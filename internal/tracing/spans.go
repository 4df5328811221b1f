package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrNode     = "tree.node"
	AttrRoot     = "tree.root"
	AttrPath     = "file.path"
	AttrLines    = "input.lines"
	AttrAdded    = "populate.added"
	AttrSkipped  = "populate.skipped"
	AttrNodes    = "tree.nodes"
	AttrSnapshot = "snapshot.id"

	AttrErrorMessage = "error.message"
)

// Span names.
const (
	SpanSessionOpen   = "session.open"
	SpanSessionReload = "session.reload"
	SpanLoadList      = "tree.load_list"
	SpanLoadTree      = "tree.load_tree"
	SpanPopulate      = "tree.populate"
	SpanSave          = "tree.save"
	SpanSnapshotSave  = "snapshot.save"
)

// Event names.
const (
	EventInputMissing = "input.missing"
	EventTreeReset    = "tree.reset"
)

// Run executes fn inside a span named name. An error returned by fn is
// recorded on the span and returned unchanged. tracer may be nil.
func Run(ctx context.Context, tracer trace.Tracer, name string, fn func(context.Context, trace.Span) error, attrs ...attribute.KeyValue) error {
	if tracer == nil {
		return fn(ctx, trace.SpanFromContext(ctx))
	}

	ctx, span := tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}
