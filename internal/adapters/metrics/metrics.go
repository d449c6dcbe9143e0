// Package metrics records run statistics with Prometheus collectors and
// exports them in the node_exporter textfile format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/zerr"
)

// Recorder implements ports.Metrics on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	manifestDependencies *prometheus.GaugeVec
	phaseDuration        *prometheus.HistogramVec
	submissions          *prometheus.CounterVec
}

// New creates a Recorder with its collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		manifestDependencies: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "depsub_manifest_dependencies",
				Help: "Number of dependencies recorded per manifest.",
			},
			[]string{"manifest", "relationship"},
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "depsub_phase_duration_seconds",
				Help:    "Time taken by each detection phase.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depsub_submissions_total",
				Help: "Number of snapshot submissions by response status and result.",
			},
			[]string{"status", "result"},
		),
	}
	r.registry.MustRegister(r.manifestDependencies, r.phaseDuration, r.submissions)
	return r
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveManifest records the dependency counts of one manifest.
func (r *Recorder) ObserveManifest(name string, direct, indirect int) {
	r.manifestDependencies.WithLabelValues(name, string(domain.RelationshipDirect)).Set(float64(direct))
	r.manifestDependencies.WithLabelValues(name, string(domain.RelationshipIndirect)).Set(float64(indirect))
}

// ObservePhase records how long a phase took.
func (r *Recorder) ObservePhase(phase string, elapsed time.Duration) {
	r.phaseDuration.WithLabelValues(phase).Observe(elapsed.Seconds())
}

// ObserveSubmission counts one endpoint response.
func (r *Recorder) ObserveSubmission(result domain.SubmissionResult) {
	label := result.Result
	if label == "" {
		label = "none"
	}
	r.submissions.WithLabelValues(strconv.Itoa(result.StatusCode), label).Inc()
}

// WriteTextfile writes every collected metric to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metrics"), "path", path)
	}
	return nil
}
