package ports

import (
	"context"

	"go.trai.ch/depsub/internal/core/domain"
)

// Submitter uploads a snapshot to the dependency graph endpoint.
//
//go:generate go run go.uber.org/mock/mockgen -source=submitter.go -destination=mocks/mock_submitter.go -package=mocks
type Submitter interface {
	// Submit posts the snapshot. A response that rejects the snapshot is
	// reported in the result, not as an error; errors are reserved for
	// requests that could not be completed.
	Submit(ctx context.Context, target domain.SubmissionTarget, snapshot *domain.Snapshot) (domain.SubmissionResult, error)
}
