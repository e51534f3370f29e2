package telemetry_test

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
	"go.trai.ch/crossbow/internal/adapters/telemetry"
	"go.trai.ch/crossbow/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
	var _ sdktrace.SpanProcessor = (*telemetry.Bridge)(nil)
}

func newRecordingTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return telemetry.NewOTelTracerFrom(tp, "test"), rec
}

func TestOTelTracer_RecordsAttributesAndLogs(t *testing.T) {
	t.Parallel()

	tracer, rec := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "build:js", ports.WithAttribute("item.id", 3))
	span.SetAttribute("label", "build:js")
	span.SetAttribute("skipped", false)
	span.SetAttribute("paths", []string{"src"})
	span.SetAttribute("other", struct{ A int }{A: 1})
	n, err := span.Write([]byte("compiled"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	got := ended[0]
	assert.Equal(t, "build:js", got.Name())

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range got.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(3), attrs["item.id"].AsInt64())
	assert.Equal(t, "build:js", attrs["label"].AsString())
	assert.False(t, attrs["skipped"].AsBool())
	assert.Equal(t, []string{"src"}, attrs["paths"].AsStringSlice())
	assert.Equal(t, "{1}", attrs["other"].AsString())

	require.Len(t, got.Events(), 1)
	assert.Equal(t, "log", got.Events()[0].Name)
}

func TestOTelTracer_RecordError(t *testing.T) {
	t.Parallel()

	tracer, rec := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "lint")
	span.RecordError(errors.New("exit status 2"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "exit status 2", ended[0].Status().Description)
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	t.Parallel()

	tracer, rec := newRecordingTracer(t)

	ctx, root := tracer.Start(context.Background(), "run")
	tracer.EmitPlan(ctx, []string{"a", "b"})
	root.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "plan_emitted", ended[0].Events()[0].Name)
}

func TestNoOpTracer_Start(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()
	got, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, got)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	span.End()
	tracer.EmitPlan(ctx, []string{"a"})
}
