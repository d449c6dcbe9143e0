package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depsub/internal/core/domain"
)

func TestPackage_DependsOn(t *testing.T) {
	cache := domain.NewPackageCache()
	a := cache.Package(domain.MustParsePackageIdentity("pkg:npm/a@1.0.0"))
	b := cache.Package(domain.MustParsePackageIdentity("pkg:npm/b@1.0.0"))
	c := cache.Package(domain.MustParsePackageIdentity("pkg:npm/c@1.0.0"))

	assert.Same(t, a, a.DependsOn(b))
	a.DependsOnPackages([]*domain.Package{c})

	assert.Equal(t, []*domain.Package{b, c}, a.Dependencies())
	assert.Equal(t, []string{"pkg:npm/b@1.0.0", "pkg:npm/c@1.0.0"}, a.DependencyIDs())
}

func TestPackage_DependencyIDsNeverNil(t *testing.T) {
	cache := domain.NewPackageCache()
	leaf := cache.Package(domain.MustParsePackageIdentity("pkg:npm/leaf@1.0.0"))

	ids := leaf.DependencyIDs()
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestPackage_Accessors(t *testing.T) {
	cache := domain.NewPackageCache()
	pkg := cache.Package(domain.MustParsePackageIdentity("pkg:npm/%40actions/core@1.6.0"))

	assert.Equal(t, "pkg:npm/%40actions/core@1.6.0", pkg.PackageID())
	assert.Equal(t, "@actions", pkg.Namespace())
	assert.Equal(t, "core", pkg.Name())
	assert.Equal(t, "1.6.0", pkg.Version())
}

func TestPackage_Matching(t *testing.T) {
	cache := domain.NewPackageCache()
	pkg := cache.Package(domain.MustParsePackageIdentity("pkg:npm/%40actions/core@1.6.0"))

	tests := []struct {
		name    string
		matcher domain.Matcher
		want    bool
	}{
		{"Empty matcher", domain.NewMatcher(), true},
		{"Namespace", domain.NewMatcher(domain.MatchNamespace("@actions")), true},
		{"Name and version", domain.NewMatcher(domain.MatchName("core"), domain.MatchVersion("1.6.0")), true},
		{"Wrong version", domain.NewMatcher(domain.MatchName("core"), domain.MatchVersion("2.0.0")), false},
		{"Wrong namespace", domain.NewMatcher(domain.MatchNamespace("@github")), false},
		{"Empty namespace is not a wildcard", domain.NewMatcher(domain.MatchNamespace("")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pkg.Matching(tt.matcher))
		})
	}
}
