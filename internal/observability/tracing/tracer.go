package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of clip-summarize spans.
const TracerName = "clip-summarize"

// SpanSummarizeFile is the span covering one summarize run.
const SpanSummarizeFile = "summarize.file"

// Attribute keys set on summarize spans.
const (
	AttrFilePath     = attribute.Key("file.path")
	AttrProvider     = attribute.Key("summarizer.provider")
	AttrModel        = attribute.Key("summarizer.model")
	AttrErrorCode    = attribute.Key("error.code")
	AttrSummaryRunes = attribute.Key("summary.runes")
)

// GetTracer returns a tracer from the global provider.
// It is resolved on every call so a provider installed after package init is used.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSummarize starts the summarize.file span for path.
func StartSummarize(ctx context.Context, tracer trace.Tracer, path string) (context.Context, trace.Span) {
	if tracer == nil {
		tracer = GetTracer()
	}
	return tracer.Start(ctx, SpanSummarizeFile,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(AttrFilePath.String(path)),
	)
}

// RecordFailure marks span as failed with the given error code.
func RecordFailure(span trace.Span, code string, err error) {
	span.SetAttributes(AttrErrorCode.String(code))
	span.RecordError(err)
	span.SetStatus(codes.Error, code)
}
