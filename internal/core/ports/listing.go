package ports

import (
	"context"

	"go.trai.ch/depsub/internal/core/domain"
)

// ListingSource acquires the raw dependency listing of a manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=listing.go -destination=mocks/mock_listing.go -package=mocks
type ListingSource interface {
	// Acquire returns the listing text, either read from spec.Path or captured
	// from the stdout of spec.Command, both resolved against root.
	Acquire(ctx context.Context, root string, spec domain.ManifestSpec) ([]byte, error)
}

// ListingParser turns raw listing text into dependency trees.
type ListingParser interface {
	// Parse decodes data in the named format. The ecosystem is the package
	// URL type for formats that do not carry one.
	Parse(format, ecosystem string, data []byte) ([]*domain.TreeNode, error)
}
