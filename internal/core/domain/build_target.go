package domain

// BuildTarget is a Manifest whose dependencies come from a build process
// rather than from static files.
type BuildTarget struct {
	*Manifest
}

// NewBuildTarget creates an empty build target.
func NewBuildTarget(name string, opts ...ManifestOption) *BuildTarget {
	return &BuildTarget{Manifest: NewManifest(name, opts...)}
}

// ResolvedEntry is one classification produced by DeriveBuildTargetEntries.
type ResolvedEntry struct {
	Package      *Package
	Relationship Relationship
	Scope        Scope
}

// DeriveBuildTargetEntries returns the entries a build dependency contributes:
// pkg itself as direct/runtime followed by every package currently in
// pkg.Dependencies() as indirect/runtime.
//
// Only the adjacency recorded on pkg is used. Callers that want deeper
// packages reported must link them into pkg beforehand, for example with
// ExpandClosure.
func DeriveBuildTargetEntries(pkg *Package) []ResolvedEntry {
	entries := make([]ResolvedEntry, 0, len(pkg.Dependencies())+1)
	entries = append(entries, ResolvedEntry{
		Package:      pkg,
		Relationship: RelationshipDirect,
		Scope:        ScopeRuntime,
	})
	for _, dep := range pkg.Dependencies() {
		entries = append(entries, ResolvedEntry{
			Package:      dep,
			Relationship: RelationshipIndirect,
			Scope:        ScopeRuntime,
		})
	}
	return entries
}

// AddBuildDependency adds pkg as a direct runtime dependency and each of its
// recorded dependencies as indirect runtime dependencies.
func (bt *BuildTarget) AddBuildDependency(pkg *Package) {
	for _, entry := range DeriveBuildTargetEntries(pkg) {
		bt.apply(entry)
	}
}

func (bt *BuildTarget) apply(entry ResolvedEntry) {
	switch entry.Relationship {
	case RelationshipDirect:
		bt.AddDirectDependency(entry.Package, entry.Scope)
	case RelationshipIndirect:
		bt.AddIndirectDependency(entry.Package, entry.Scope)
	}
}

// DeriveBuildTargetClosure is like DeriveBuildTargetEntries but reports every
// package reachable from pkg as indirect, not only its recorded dependencies.
func DeriveBuildTargetClosure(pkg *Package) []ResolvedEntry {
	closure := ExpandClosure(pkg)
	entries := make([]ResolvedEntry, 0, len(closure)+1)
	entries = append(entries, ResolvedEntry{
		Package:      pkg,
		Relationship: RelationshipDirect,
		Scope:        ScopeRuntime,
	})
	for _, dep := range closure {
		entries = append(entries, ResolvedEntry{
			Package:      dep,
			Relationship: RelationshipIndirect,
			Scope:        ScopeRuntime,
		})
	}
	return entries
}

// AddBuildDependencyClosure adds pkg as a direct runtime dependency and every
// package reachable from it as an indirect runtime dependency.
func (bt *BuildTarget) AddBuildDependencyClosure(pkg *Package) {
	for _, entry := range DeriveBuildTargetClosure(pkg) {
		bt.apply(entry)
	}
}
