package actions

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depsub/internal/core/ports"
)

// NodeID is the unique identifier for the environment provider Graft node.
const NodeID graft.ID = "adapter.actions"

func init() {
	graft.Register(graft.Node[ports.EnvironmentProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EnvironmentProvider, error) {
			return New(), nil
		},
	})
}
