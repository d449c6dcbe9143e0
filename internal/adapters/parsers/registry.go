// Package parsers turns dependency listings into dependency trees.
package parsers

import (
	"maps"
	"slices"

	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/zerr"
)

// Formats understood by the registry.
const (
	FormatNPM   = "npm"
	FormatGoMod = "gomod"
	FormatPlain = "plain"
)

// ParseFunc decodes one listing format.
type ParseFunc func(ecosystem string, data []byte) ([]*domain.TreeNode, error)

// Registry implements ports.ListingParser by dispatching on the format name.
type Registry struct {
	parsers map[string]ParseFunc
}

// NewRegistry creates a registry with the built-in formats.
func NewRegistry() *Registry {
	return &Registry{
		parsers: map[string]ParseFunc{
			FormatNPM:   ParseNPM,
			FormatGoMod: ParseGoModGraph,
			FormatPlain: ParsePlain,
		},
	}
}

// Register adds or replaces a format.
func (r *Registry) Register(format string, fn ParseFunc) {
	r.parsers[format] = fn
}

// Formats returns the registered format names in sorted order.
func (r *Registry) Formats() []string {
	return slices.Sorted(maps.Keys(r.parsers))
}

// Parse decodes data with the named format.
func (r *Registry) Parse(format, ecosystem string, data []byte) ([]*domain.TreeNode, error) {
	fn, ok := r.parsers[format]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownParser, "parser", format)
	}
	roots, err := fn(ecosystem, data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrListingParseFailed.Error()), "parser", format)
	}
	return roots, nil
}

// nodeSet hands out one TreeNode per identity so that repeated occurrences
// in a listing share their children.
type nodeSet struct {
	nodes map[string]*domain.TreeNode
	edges map[string]map[string]bool
}

func newNodeSet() *nodeSet {
	return &nodeSet{
		nodes: make(map[string]*domain.TreeNode),
		edges: make(map[string]map[string]bool),
	}
}

func (s *nodeSet) node(id domain.PackageIdentity) *domain.TreeNode {
	key := id.String()
	if n, ok := s.nodes[key]; ok {
		return n
	}
	n := domain.NewTreeNode(id)
	s.nodes[key] = n
	return n
}

// link adds child below parent once.
func (s *nodeSet) link(parent, child *domain.TreeNode) {
	key := parent.ID.String()
	if s.edges[key] == nil {
		s.edges[key] = make(map[string]bool)
	}
	if s.edges[key][child.ID.String()] {
		return
	}
	s.edges[key][child.ID.String()] = true
	parent.Children = append(parent.Children, child)
}
