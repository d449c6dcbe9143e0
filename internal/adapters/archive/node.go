package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depsub/internal/core/ports"
)

// NodeID is the unique identifier for the snapshot archive Graft node.
const NodeID graft.ID = "adapter.snapshot_store"

func init() {
	graft.Register(graft.Node[ports.SnapshotStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SnapshotStore, error) {
			return NewStore(), nil
		},
	})
}
