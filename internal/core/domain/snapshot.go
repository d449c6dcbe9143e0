package domain

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"time"
)

// SnapshotVersion is the version of the snapshot wire format.
const SnapshotVersion = 0

// ScannedLayout formats the scan timestamp as ISO-8601 with millisecond precision.
const ScannedLayout = "2006-01-02T15:04:05.000Z07:00"

// Detector identifies the tool that produced a snapshot.
type Detector struct {
	Name    string `json:"name" yaml:"name"`
	URL     string `json:"url" yaml:"url"`
	Version string `json:"version" yaml:"version"`
}

// IsComplete reports whether every detector field is set.
func (d Detector) IsComplete() bool {
	return d.Name != "" && d.URL != "" && d.Version != ""
}

// Job correlates snapshots produced by the same workflow job.
type Job struct {
	Correlator string `json:"correlator"`
	ID         string `json:"id"`
	HTMLURL    string `json:"html_url,omitempty"`
}

// Snapshot is the document submitted to the dependency graph: one or more
// manifests plus metadata describing the run that produced them.
type Snapshot struct {
	version   int
	detector  Detector
	job       Job
	sha       string
	ref       string
	scanned   time.Time
	metadata  Metadata
	manifests map[string]*Manifest
}

// SnapshotOption configures a Snapshot. Options are applied in order, so a
// later option overrides fields set by an earlier one.
type SnapshotOption func(*Snapshot)

// WithContext derives job, sha and ref from an invocation context.
func WithContext(ic InvocationContext) SnapshotOption {
	return func(s *Snapshot) {
		s.job = ResolveJob(ic)
		s.sha = ResolveCommitSha(ic)
		s.ref = ic.Ref
	}
}

// WithJob overrides the job.
func WithJob(job Job) SnapshotOption {
	return func(s *Snapshot) { s.job = job }
}

// WithCommit overrides the commit sha and ref.
func WithCommit(sha, ref string) SnapshotOption {
	return func(s *Snapshot) {
		s.sha = sha
		s.ref = ref
	}
}

// WithScanned sets the scan timestamp.
func WithScanned(t time.Time) SnapshotOption {
	return func(s *Snapshot) { s.scanned = t }
}

// WithSnapshotMetadata attaches metadata to the snapshot.
func WithSnapshotMetadata(md Metadata) SnapshotOption {
	return func(s *Snapshot) { s.metadata = md }
}

// NewSnapshot creates an empty snapshot for the given detector. The scan
// timestamp defaults to the current time.
func NewSnapshot(detector Detector, opts ...SnapshotOption) *Snapshot {
	s := &Snapshot{
		version:   SnapshotVersion,
		detector:  detector,
		scanned:   time.Now(),
		manifests: make(map[string]*Manifest),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Version returns the wire format version.
func (s *Snapshot) Version() int { return s.version }

// Detector returns the detector identity.
func (s *Snapshot) Detector() Detector { return s.detector }

// Job returns the job correlation.
func (s *Snapshot) Job() Job { return s.job }

// SHA returns the commit sha the snapshot describes.
func (s *Snapshot) SHA() string { return s.sha }

// Ref returns the git ref the snapshot describes.
func (s *Snapshot) Ref() string { return s.ref }

// Scanned returns the scan timestamp.
func (s *Snapshot) Scanned() time.Time { return s.scanned }

// Metadata returns the snapshot metadata.
func (s *Snapshot) Metadata() Metadata { return s.metadata }

// AddManifest adds m, replacing any manifest with the same name.
func (s *Snapshot) AddManifest(m *Manifest) {
	s.manifests[m.Name()] = m
}

// AddBuildTarget adds the manifest behind bt.
func (s *Snapshot) AddBuildTarget(bt *BuildTarget) {
	s.AddManifest(bt.Manifest)
}

// Manifest returns the manifest with the given name.
func (s *Snapshot) Manifest(name string) (*Manifest, bool) {
	m, ok := s.manifests[name]
	return m, ok
}

// Manifests returns all manifests ordered by name.
func (s *Snapshot) Manifests() []*Manifest {
	out := make([]*Manifest, 0, len(s.manifests))
	for _, name := range slices.Sorted(maps.Keys(s.manifests)) {
		out = append(out, s.manifests[name])
	}
	return out
}

type snapshotJSON struct {
	Version   int                  `json:"version"`
	Detector  Detector             `json:"detector"`
	Job       Job                  `json:"job"`
	SHA       string               `json:"sha"`
	Ref       string               `json:"ref"`
	Scanned   string               `json:"scanned"`
	Metadata  Metadata             `json:"metadata,omitzero"`
	Manifests map[string]*Manifest `json:"manifests"`
}

// MarshalJSON encodes the snapshot in the dependency submission format.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	manifests := s.manifests
	if manifests == nil {
		manifests = map[string]*Manifest{}
	}
	return marshalJSON(snapshotJSON{
		Version:   s.version,
		Detector:  s.detector,
		Job:       s.job,
		SHA:       s.sha,
		Ref:       s.ref,
		Scanned:   s.scanned.UTC().Format(ScannedLayout),
		Metadata:  s.metadata,
		Manifests: manifests,
	})
}

// PrettyJSON returns the snapshot indented with two spaces, without a
// trailing newline. This is the exact body submitted to the endpoint.
func (s *Snapshot) PrettyJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// marshalJSON is json.Marshal without HTML escaping, so that package URLs
// containing '&' are emitted verbatim.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
