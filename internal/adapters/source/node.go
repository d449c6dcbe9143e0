package source

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depsub/internal/adapters/logger"
	"go.trai.ch/depsub/internal/core/ports"
)

// NodeID is the unique identifier for the listing source Graft node.
const NodeID graft.ID = "adapter.source"

func init() {
	graft.Register(graft.Node[ports.ListingSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ListingSource, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
