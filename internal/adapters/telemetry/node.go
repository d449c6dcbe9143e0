package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depsub/internal/adapters/metrics"
	"go.trai.ch/depsub/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{metrics.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracer(NewProvider(m)), nil
		},
	})
}
