package domain

import "go.trai.ch/zerr"

// DefaultParser is the listing format used when a manifest names none.
const DefaultParser = "plain"

// Config is the detector configuration: who is reporting, which listings to
// read and how to interpret them.
type Config struct {
	// Root is the directory the configuration was loaded from. Relative
	// manifest paths and commands are resolved against it.
	Root      string
	Detector  Detector
	Metadata  Metadata
	Manifests []ManifestSpec
}

// ManifestSpec declares one manifest of the snapshot and where its
// dependency listing comes from.
type ManifestSpec struct {
	Name string
	// Path is a file containing the listing, relative to Config.Root.
	Path string
	// Command produces the listing on stdout. Its first field is the program.
	Command []string
	// Parser names the listing format, e.g. "npm", "gomod" or "plain".
	Parser string
	// Ecosystem is the package URL type used by parsers that cannot infer it.
	Ecosystem string
	// SourceLocation is reported as the manifest file. Defaults to Path.
	SourceLocation string
	Scope          Scope
	// BuildTarget reports the listing as a build target: every root is a
	// direct runtime dependency and everything beneath it indirect runtime.
	BuildTarget bool
	Metadata    Metadata
}

// Validate checks the fields every manifest needs before any listing work
// starts.
func (s ManifestSpec) Validate() error {
	if s.Name == "" {
		return ErrMissingManifestName
	}
	if s.Path == "" && len(s.Command) == 0 {
		return zerr.With(ErrMissingManifestSource, "manifest", s.Name)
	}
	return nil
}

// Validate checks the detector identity and every manifest. Manifest names
// must be unique.
func (c *Config) Validate() error {
	if !c.Detector.IsComplete() {
		return ErrMissingDetector
	}
	names := make(map[string]bool, len(c.Manifests))
	for _, spec := range c.Manifests {
		if err := spec.Validate(); err != nil {
			return err
		}
		if names[spec.Name] {
			return zerr.With(ErrDuplicateManifestName, "manifest", spec.Name)
		}
		names[spec.Name] = true
	}
	return nil
}
