package telemetry

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/depsub/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to report span durations as
// phase metrics.
type Bridge struct {
	metrics ports.Metrics
}

// NewBridge returns a new Bridge.
func NewBridge(metrics ports.Metrics) *Bridge {
	return &Bridge{metrics: metrics}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.metrics == nil || !s.SpanContext().IsValid() {
		return
	}
	b.metrics.ObservePhase(s.Name(), s.EndTime().Sub(s.StartTime()))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
