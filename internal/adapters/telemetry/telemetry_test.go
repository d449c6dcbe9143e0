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
	"go.trai.ch/depsub/internal/adapters/telemetry"
	"go.trai.ch/depsub/internal/core/ports"
	"go.trai.ch/depsub/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRecordingTracer() (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return telemetry.NewOTelTracer(tp), recorder
}

func attrMap(kvs []attribute.KeyValue) map[string]attribute.Value {
	out := make(map[string]attribute.Value, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value
	}
	return out
}

func TestOTelTracer_Start(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	ctx, parent := tracer.Start(context.Background(), "detect",
		ports.WithAttributes(map[string]any{"manifests": 2}))
	_, child := tracer.Start(ctx, "parse")
	child.SetAttribute("manifest", "go.mod")
	child.SetAttribute("roots", int64(3))
	child.SetAttribute("ratio", 0.5)
	child.SetAttribute("build_target", true)
	child.SetAttribute("command", []string{"go", "mod", "graph"})
	child.SetAttribute("other", struct{ A int }{A: 1})
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	parse, detect := spans[0], spans[1]
	assert.Equal(t, "parse", parse.Name())
	assert.Equal(t, detect.SpanContext().SpanID(), parse.Parent().SpanID())

	attrs := attrMap(parse.Attributes())
	assert.Equal(t, "go.mod", attrs["manifest"].AsString())
	assert.Equal(t, int64(3), attrs["roots"].AsInt64())
	assert.InDelta(t, 0.5, attrs["ratio"].AsFloat64(), 0)
	assert.True(t, attrs["build_target"].AsBool())
	assert.Equal(t, []string{"go", "mod", "graph"}, attrs["command"].AsStringSlice())
	assert.Equal(t, "{1}", attrs["other"].AsString())

	assert.Equal(t, int64(2), attrMap(detect.Attributes())["manifests"].AsInt64())
}

func TestOTelSpan_RecordError(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.Start(context.Background(), "submit")
	span.RecordError(errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
}

func TestBridge_ReportsPhases(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockMetrics(ctrl)
	m.EXPECT().ObservePhase("detect", gomock.Any()).Times(1)

	tracer := telemetry.NewOTelTracer(telemetry.NewProvider(m))
	_, span := tracer.Start(context.Background(), "detect")
	span.End()
}

func TestBridge_NilMetrics(t *testing.T) {
	tracer := telemetry.NewOTelTracer(telemetry.NewProvider(nil))
	_, span := tracer.Start(context.Background(), "detect")
	span.End()
}
