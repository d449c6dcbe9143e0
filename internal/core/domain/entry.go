package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Entry is a raw "name@version" item taken from a dependency listing.
type Entry struct {
	Name    string
	Version string
}

// ParseEntry splits a listing item at the first '@' that is not the leading
// character, so scoped names such as "@actions/core@1.6.0" are kept whole.
// Anything from a closing ']' onwards is dropped from the version.
func ParseEntry(text string) (Entry, error) {
	text = strings.TrimSpace(text)
	if len(text) < 2 {
		return Entry{}, zerr.With(ErrUnresolvableEntry, "entry", text)
	}

	at := strings.IndexByte(text[1:], '@')
	if at < 0 {
		return Entry{}, zerr.With(ErrUnresolvableEntry, "entry", text)
	}
	at++

	name := text[:at]
	version := text[at+1:]
	if end := strings.IndexByte(version, ']'); end >= 0 {
		version = version[:end]
	}
	if version == "" {
		return Entry{}, zerr.With(ErrUnresolvableEntry, "entry", text)
	}
	return Entry{Name: name, Version: version}, nil
}

// ParseNamespacedName splits "namespace/name" into its parts. A name without
// a slash has an empty namespace; more than one slash is rejected.
func ParseNamespacedName(raw string) (namespace, name string, err error) {
	parts := strings.Split(raw, "/")
	switch len(parts) {
	case 1:
		return "", parts[0], nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", zerr.With(ErrMalformedPackageName, "package", raw)
	}
}

// SplitModulePath splits a path-like module name at its last slash, e.g.
// "github.com/spf13/cobra" into "github.com/spf13" and "cobra".
func SplitModulePath(path string) (namespace, name string) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}
