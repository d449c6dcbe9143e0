package ports

import "go.trai.ch/depsub/internal/core/domain"

// SnapshotStore keeps a local archive of produced snapshots under a
// configuration root.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SnapshotStore interface {
	// Put writes the snapshot and returns its content digest.
	Put(root string, snapshot *domain.Snapshot) (string, error)

	// Get returns the archived document for a digest.
	// Returns nil, nil if not found.
	Get(root, digest string) ([]byte, error)
}
