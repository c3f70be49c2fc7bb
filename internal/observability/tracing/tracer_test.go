package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter, tp
}

func attrValue(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestStartSummarize(t *testing.T) {
	exporter, tp := newTestTracer(t)

	_, span := StartSummarize(context.Background(), tp.Tracer(TracerName), "notes/a.md")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, SpanSummarizeFile, spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)

	v, ok := attrValue(spans[0].Attributes, AttrFilePath)
	require.True(t, ok)
	assert.Equal(t, "notes/a.md", v.AsString())
}

func TestRecordFailure(t *testing.T) {
	exporter, tp := newTestTracer(t)

	_, span := StartSummarize(context.Background(), tp.Tracer(TracerName), "notes/a.md")
	RecordFailure(span, "E203", errors.New("rate limited"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "E203", spans[0].Status.Description)

	v, ok := attrValue(spans[0].Attributes, AttrErrorCode)
	require.True(t, ok)
	assert.Equal(t, "E203", v.AsString())

	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestStartSummarize_NilTracerUsesGlobal(t *testing.T) {
	ctx, span := StartSummarize(context.Background(), nil, "notes/a.md")
	defer span.End()
	assert.NotNil(t, ctx)
}

func TestInitProvider_Disabled(t *testing.T) {
	shutdown, err := InitProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")

	cfg := ConfigFromEnv("1.2.3")
	assert.True(t, cfg.Enabled)
	assert.Equal(t, TracerName, cfg.ServiceName)
	assert.Equal(t, "1.2.3", cfg.ServiceVersion)
	assert.Equal(t, "http://collector:4318", cfg.OTLPEndpoint)
}
