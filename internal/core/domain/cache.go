package domain

import (
	"iter"
	"maps"
	"slices"
)

// PackageCache is the universe of packages known during one detection run.
// It guarantees at most one *Package per canonical identity, so edges built
// through it share instances. PackageCache is never serialized.
//
// PackageCache is not safe for concurrent writers.
type PackageCache struct {
	packages map[string]*Package
}

// NewPackageCache creates an empty PackageCache.
func NewPackageCache() *PackageCache {
	return &PackageCache{
		packages: make(map[string]*Package),
	}
}

// Package returns the package with the given identity, creating and adding it
// if it does not exist yet. Use HasPackage or LookupPackage to test for
// presence without mutating the cache.
func (c *PackageCache) Package(id PackageIdentity) *Package {
	if existing, ok := c.packages[id.String()]; ok {
		return existing
	}
	pkg := newPackage(id)
	c.packages[id.String()] = pkg
	return pkg
}

// PackageFromString parses a Package URL and returns the matching package,
// creating it if needed.
func (c *PackageCache) PackageFromString(purl string) (*Package, error) {
	id, err := ParsePackageIdentity(purl)
	if err != nil {
		return nil, err
	}
	return c.Package(id), nil
}

// AddPackage stores pkg, replacing any package with the same identity.
func (c *PackageCache) AddPackage(pkg *Package) {
	c.packages[pkg.PackageID()] = pkg
}

// RemovePackage removes the package with pkg's identity.
func (c *PackageCache) RemovePackage(pkg *Package) {
	delete(c.packages, pkg.PackageID())
}

// LookupPackage returns the package with the given identity, if present.
func (c *PackageCache) LookupPackage(id PackageIdentity) (*Package, bool) {
	pkg, ok := c.packages[id.String()]
	return pkg, ok
}

// LookupPackageString parses a Package URL and looks it up.
func (c *PackageCache) LookupPackageString(purl string) (*Package, bool, error) {
	id, err := ParsePackageIdentity(purl)
	if err != nil {
		return nil, false, err
	}
	pkg, ok := c.LookupPackage(id)
	return pkg, ok, nil
}

// HasPackage reports whether a package with the given identity exists.
func (c *PackageCache) HasPackage(id PackageIdentity) bool {
	_, ok := c.LookupPackage(id)
	return ok
}

// PackagesMatching returns every cached package matching m, ordered by
// package id.
func (c *PackageCache) PackagesMatching(m Matcher) []*Package {
	var matched []*Package
	for pkg := range c.Packages() {
		if pkg.Matching(m) {
			matched = append(matched, pkg)
		}
	}
	return matched
}

// CountPackages returns the number of cached packages.
func (c *PackageCache) CountPackages() int {
	return len(c.packages)
}

// Packages yields all cached packages ordered by package id.
func (c *PackageCache) Packages() iter.Seq[*Package] {
	return func(yield func(*Package) bool) {
		for _, id := range slices.Sorted(maps.Keys(c.packages)) {
			if !yield(c.packages[id]) {
				return
			}
		}
	}
}
