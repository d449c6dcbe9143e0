package domain

// Package is a node in the dependency graph: something that can be downloaded
// from a registry and depended upon by a manifest or build target.
//
// Packages are created through PackageCache so that a single instance exists
// per canonical identity; dependency edges point at those shared instances.
type Package struct {
	identity     PackageIdentity
	dependencies []*Package
}

func newPackage(id PackageIdentity) *Package {
	return &Package{identity: id}
}

// Identity returns the canonical identity of the package.
func (p *Package) Identity() PackageIdentity {
	return p.identity
}

// PackageID returns the unique package id (the canonical Package URL).
func (p *Package) PackageID() string {
	return p.identity.String()
}

// Namespace returns the namespace of the package, or "" if it has none.
func (p *Package) Namespace() string {
	return p.identity.Namespace()
}

// Name returns the name of the package.
func (p *Package) Name() string {
	return p.identity.Name()
}

// Version returns the version of the package, or "" if it has none.
func (p *Package) Version() string {
	return p.identity.Version()
}

// DependsOn records other as a dependency of p and returns p.
// Neither duplicates nor cycles are checked.
func (p *Package) DependsOn(other *Package) *Package {
	p.dependencies = append(p.dependencies, other)
	return p
}

// DependsOnPackages records each package in order as a dependency of p.
func (p *Package) DependsOnPackages(others []*Package) *Package {
	for _, other := range others {
		p.DependsOn(other)
	}
	return p
}

// Dependencies returns the recorded dependencies in insertion order.
// The returned slice must not be modified.
func (p *Package) Dependencies() []*Package {
	return p.dependencies
}

// DependencyIDs returns the package ids of the recorded dependencies in
// insertion order. It never returns nil.
func (p *Package) DependencyIDs() []string {
	ids := make([]string, 0, len(p.dependencies))
	for _, dep := range p.dependencies {
		ids = append(ids, dep.PackageID())
	}
	return ids
}

// Matching reports whether every field set on m equals the same field of the
// package identity.
func (p *Package) Matching(m Matcher) bool {
	return m.matches(p.identity)
}

// Matcher selects packages by partial identity. Nil fields match anything.
type Matcher struct {
	Namespace *string
	Name      *string
	Version   *string
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// NewMatcher builds a Matcher from the given options.
func NewMatcher(opts ...MatcherOption) Matcher {
	var m Matcher
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// MatchNamespace restricts a Matcher to the given namespace.
func MatchNamespace(namespace string) MatcherOption {
	return func(m *Matcher) { m.Namespace = &namespace }
}

// MatchName restricts a Matcher to the given name.
func MatchName(name string) MatcherOption {
	return func(m *Matcher) { m.Name = &name }
}

// MatchVersion restricts a Matcher to the given version.
func MatchVersion(version string) MatcherOption {
	return func(m *Matcher) { m.Version = &version }
}

func (m Matcher) matches(id PackageIdentity) bool {
	return (m.Namespace == nil || *m.Namespace == id.Namespace()) &&
		(m.Name == nil || *m.Name == id.Name()) &&
		(m.Version == nil || *m.Version == id.Version())
}
