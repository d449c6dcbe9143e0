package ports

import (
	"time"

	"go.trai.ch/depsub/internal/core/domain"
)

// Metrics records run statistics for export to a Prometheus textfile.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveManifest records the dependency counts of one manifest.
	ObserveManifest(name string, direct, indirect int)

	// ObservePhase records how long a pipeline phase took.
	ObservePhase(phase string, elapsed time.Duration)

	// ObserveSubmission records the endpoint's answer.
	ObserveSubmission(result domain.SubmissionResult)

	// WriteTextfile writes every recorded metric to path.
	WriteTextfile(path string) error
}
