// Package domain contains the dependency graph, manifest and snapshot models.
package domain

import (
	"net/url"
	"strings"

	"github.com/package-url/packageurl-go"
	"go.trai.ch/zerr"
)

// PackageIdentity is the canonical identity of a package: an ecosystem type,
// an optional namespace, a name and an optional version.
//
// The zero value is not a valid identity; use NewPackageIdentity or
// ParsePackageIdentity.
type PackageIdentity struct {
	purl      packageurl.PackageURL
	canonical string
}

// NewPackageIdentity builds an identity from its components.
// Namespace and name are given decoded (e.g. "@github", not "%40github").
func NewPackageIdentity(purlType, namespace, name, version string) (PackageIdentity, error) {
	if purlType == "" || name == "" {
		err := zerr.With(ErrInvalidPackageURL, "type", purlType)
		return PackageIdentity{}, zerr.With(err, "name", name)
	}

	p := packageurl.PackageURL{Type: purlType, Namespace: namespace, Name: name, Version: version}
	// Re-parse so that type specific normalization is applied exactly once,
	// which keeps String and ParsePackageIdentity in agreement.
	return ParsePackageIdentity(render(p))
}

// ParsePackageIdentity parses a Package URL string such as
// "pkg:npm/%40github/dependency-submission-toolkit@0.1.2".
func ParsePackageIdentity(s string) (PackageIdentity, error) {
	p, err := packageurl.FromString(s)
	if err != nil {
		return PackageIdentity{}, zerr.With(zerr.Wrap(err, ErrInvalidPackageURL.Error()), "purl", s)
	}
	if p.Name == "" {
		return PackageIdentity{}, zerr.With(ErrInvalidPackageURL, "purl", s)
	}
	return PackageIdentity{purl: p, canonical: render(p)}, nil
}

// render produces the canonical string. Every namespace segment, the name and
// the version are percent-encoded with spaces as %20, so "@" becomes "%40".
func render(p packageurl.PackageURL) string {
	var b strings.Builder
	b.WriteString("pkg:")
	b.WriteString(p.Type)
	for _, segment := range strings.Split(p.Namespace, "/") {
		if segment == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(escape(segment))
	}
	b.WriteByte('/')
	b.WriteString(escape(p.Name))
	if p.Version != "" {
		b.WriteByte('@')
		b.WriteString(escape(p.Version))
	}
	if len(p.Qualifiers) > 0 {
		b.WriteByte('?')
		b.WriteString(p.Qualifiers.String())
	}
	if p.Subpath != "" {
		b.WriteByte('#')
		b.WriteString(p.Subpath)
	}
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// MustParsePackageIdentity is like ParsePackageIdentity but panics on error.
// It is intended for fixed identities in tests and examples.
func MustParsePackageIdentity(s string) PackageIdentity {
	id, err := ParsePackageIdentity(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical Package URL. It is the key used by PackageCache
// and Manifest.
func (id PackageIdentity) String() string {
	return id.canonical
}

// Type returns the ecosystem type, e.g. "npm" or "golang".
func (id PackageIdentity) Type() string {
	return id.purl.Type
}

// Namespace returns the decoded namespace, or "" if there is none.
func (id PackageIdentity) Namespace() string {
	return id.purl.Namespace
}

// Name returns the decoded package name.
func (id PackageIdentity) Name() string {
	return id.purl.Name
}

// Version returns the package version, or "" if there is none.
func (id PackageIdentity) Version() string {
	return id.purl.Version
}

// Equal reports whether two identities have the same canonical form.
func (id PackageIdentity) Equal(other PackageIdentity) bool {
	return id.canonical == other.canonical
}

// IsZero reports whether the identity was never initialized.
func (id PackageIdentity) IsZero() bool {
	return id.canonical == ""
}

// MarshalText implements encoding.TextMarshaler.
func (id PackageIdentity) MarshalText() ([]byte, error) {
	return []byte(id.canonical), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *PackageIdentity) UnmarshalText(text []byte) error {
	parsed, err := ParsePackageIdentity(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
