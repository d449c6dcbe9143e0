package domain

import (
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// Relationship records whether a dependency is requested directly by a
// manifest or only reached through another dependency.
type Relationship string

const (
	// RelationshipDirect marks a dependency declared by the manifest itself.
	RelationshipDirect Relationship = "direct"
	// RelationshipIndirect marks a dependency reached transitively.
	RelationshipIndirect Relationship = "indirect"
)

// ParseRelationship converts a string to a Relationship.
func ParseRelationship(s string) (Relationship, error) {
	switch Relationship(s) {
	case RelationshipDirect, RelationshipIndirect:
		return Relationship(s), nil
	default:
		return "", zerr.With(ErrInvalidRelationship, "relationship", s)
	}
}

// Scope records whether a dependency is needed at runtime or only during
// development. The empty Scope means "not specified" and is omitted on the wire.
type Scope string

const (
	// ScopeUnspecified leaves the scope out of the snapshot.
	ScopeUnspecified Scope = ""
	// ScopeRuntime marks a dependency required by the primary build artifact.
	ScopeRuntime Scope = "runtime"
	// ScopeDevelopment marks a dependency only used for development.
	ScopeDevelopment Scope = "development"
)

// ParseScope converts a string to a Scope. The empty string is accepted and
// yields ScopeUnspecified.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeUnspecified, ScopeRuntime, ScopeDevelopment:
		return Scope(s), nil
	default:
		return "", zerr.With(ErrInvalidScope, "scope", s)
	}
}

// Dependency is the resolved classification of one package within a manifest.
type Dependency struct {
	Package      *Package
	Relationship Relationship
	Scope        Scope
}

type dependencyJSON struct {
	PackageURL   string       `json:"package_url"`
	Relationship Relationship `json:"relationship"`
	Scope        Scope        `json:"scope,omitempty"`
	Dependencies []string     `json:"dependencies"`
}

// MarshalJSON encodes the dependency in the snapshot format. The dependency
// list is read from the package at serialization time and is always an array.
func (d *Dependency) MarshalJSON() ([]byte, error) {
	return marshalJSON(dependencyJSON{
		PackageURL:   d.Package.PackageID(),
		Relationship: d.Relationship,
		Scope:        d.Scope,
		Dependencies: d.Package.DependencyIDs(),
	})
}

// Manifest records, for one named artifact such as a lockfile, how each
// package it depends on is related to it.
type Manifest struct {
	name           string
	sourceLocation string
	metadata       Metadata
	resolved       map[string]*Dependency
}

// ManifestOption configures a Manifest.
type ManifestOption func(*Manifest)

// WithSourceLocation sets the repository path of the file defining the manifest.
func WithSourceLocation(path string) ManifestOption {
	return func(m *Manifest) { m.sourceLocation = path }
}

// WithManifestMetadata attaches metadata to the manifest.
func WithManifestMetadata(md Metadata) ManifestOption {
	return func(m *Manifest) { m.metadata = md }
}

// NewManifest creates an empty manifest.
func NewManifest(name string, opts ...ManifestOption) *Manifest {
	m := &Manifest{
		name:     name,
		resolved: make(map[string]*Dependency),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the manifest name, which is unique within a snapshot.
func (m *Manifest) Name() string {
	return m.name
}

// SourceLocation returns the manifest file path, or "" if unset.
func (m *Manifest) SourceLocation() string {
	return m.sourceLocation
}

// Metadata returns the manifest metadata.
func (m *Manifest) Metadata() Metadata {
	return m.metadata
}

// AddDirectDependency records pkg as a direct dependency, overwriting any
// previous entry for the same package.
func (m *Manifest) AddDirectDependency(pkg *Package, scope Scope) {
	m.resolved[pkg.PackageID()] = &Dependency{
		Package:      pkg,
		Relationship: RelationshipDirect,
		Scope:        scope,
	}
}

// AddIndirectDependency records pkg as an indirect dependency unless the
// package is already present. A direct entry is never downgraded.
func (m *Manifest) AddIndirectDependency(pkg *Package, scope Scope) {
	if _, exists := m.resolved[pkg.PackageID()]; exists {
		return
	}
	m.resolved[pkg.PackageID()] = &Dependency{
		Package:      pkg,
		Relationship: RelationshipIndirect,
		Scope:        scope,
	}
}

// HasDependency reports whether pkg has been recorded.
func (m *Manifest) HasDependency(pkg *Package) bool {
	_, ok := m.LookupDependency(pkg)
	return ok
}

// LookupDependency returns the recorded entry for pkg.
func (m *Manifest) LookupDependency(pkg *Package) (*Dependency, bool) {
	dep, ok := m.resolved[pkg.PackageID()]
	return dep, ok
}

// CountDependencies returns the number of recorded packages.
func (m *Manifest) CountDependencies() int {
	return len(m.resolved)
}

// FilterDependencies returns the packages whose entry satisfies pred,
// ordered by package id.
func (m *Manifest) FilterDependencies(pred func(*Dependency) bool) []*Package {
	var pkgs []*Package
	for _, id := range slices.Sorted(maps.Keys(m.resolved)) {
		if dep := m.resolved[id]; pred(dep) {
			pkgs = append(pkgs, dep.Package)
		}
	}
	return pkgs
}

// DirectDependencies returns the packages recorded as direct.
func (m *Manifest) DirectDependencies() []*Package {
	return m.FilterDependencies(func(d *Dependency) bool {
		return d.Relationship == RelationshipDirect
	})
}

// IndirectDependencies returns the packages recorded as indirect.
func (m *Manifest) IndirectDependencies() []*Package {
	return m.FilterDependencies(func(d *Dependency) bool {
		return d.Relationship == RelationshipIndirect
	})
}

type fileInfoJSON struct {
	SourceLocation string `json:"source_location"`
}

type manifestJSON struct {
	Name     string                 `json:"name"`
	File     *fileInfoJSON          `json:"file,omitempty"`
	Metadata Metadata               `json:"metadata,omitzero"`
	Resolved map[string]*Dependency `json:"resolved"`
}

// MarshalJSON encodes the manifest in the snapshot format.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	wire := manifestJSON{
		Name:     m.name,
		Metadata: m.metadata,
		Resolved: m.resolved,
	}
	if m.sourceLocation != "" {
		wire.File = &fileInfoJSON{SourceLocation: m.sourceLocation}
	}
	if wire.Resolved == nil {
		wire.Resolved = map[string]*Dependency{}
	}
	return marshalJSON(wire)
}
