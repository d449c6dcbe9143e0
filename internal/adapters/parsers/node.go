package parsers

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depsub/internal/core/ports"
)

// NodeID is the unique identifier for the listing parser Graft node.
const NodeID graft.ID = "adapter.parsers"

func init() {
	graft.Register(graft.Node[ports.ListingParser]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ListingParser, error) {
			return NewRegistry(), nil
		},
	})
}
