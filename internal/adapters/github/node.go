package github

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depsub/internal/core/ports"
)

// NodeID is the unique identifier for the submitter Graft node.
const NodeID graft.ID = "adapter.github"

func init() {
	graft.Register(graft.Node[ports.Submitter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Submitter, error) {
			return New(), nil
		},
	})
}
