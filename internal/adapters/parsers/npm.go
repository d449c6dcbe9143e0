package parsers

import (
	"encoding/json"
	"maps"
	"slices"

	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/zerr"
)

// npmTree is the shape of `npm ls --all --json`.
type npmTree struct {
	Name         string             `json:"name"`
	Version      string             `json:"version"`
	Dependencies map[string]npmNode `json:"dependencies"`
}

type npmNode struct {
	Version      string             `json:"version"`
	Missing      bool               `json:"missing"`
	Dependencies map[string]npmNode `json:"dependencies"`
}

type npmFrame struct {
	parent *domain.TreeNode
	name   string
	node   npmNode
}

// ParseNPM decodes `npm ls --all --json` output. The project's own
// dependencies are the roots. Entries without a version (missing packages)
// are skipped. The ecosystem argument is ignored; packages are always npm.
func ParseNPM(_ string, data []byte) ([]*domain.TreeNode, error) {
	var tree npmTree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}

	set := newNodeSet()
	var roots []*domain.TreeNode
	var stack []npmFrame

	// Children are pushed in reverse name order so they are visited sorted.
	push := func(parent *domain.TreeNode, deps map[string]npmNode) {
		names := slices.Sorted(maps.Keys(deps))
		for i := len(names) - 1; i >= 0; i-- {
			stack = append(stack, npmFrame{parent: parent, name: names[i], node: deps[names[i]]})
		}
	}
	push(nil, tree.Dependencies)

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if frame.node.Missing || frame.node.Version == "" {
			continue
		}
		id, err := npmIdentity(frame.name, frame.node.Version)
		if err != nil {
			return nil, err
		}

		n := set.node(id)
		if frame.parent == nil {
			roots = append(roots, n)
		} else {
			set.link(frame.parent, n)
		}
		push(n, frame.node.Dependencies)
	}
	return roots, nil
}

func npmIdentity(name, version string) (domain.PackageIdentity, error) {
	namespace, pkgName, err := domain.ParseNamespacedName(name)
	if err != nil {
		return domain.PackageIdentity{}, err
	}
	id, err := domain.NewPackageIdentity("npm", namespace, pkgName, version)
	if err != nil {
		return domain.PackageIdentity{}, zerr.With(err, "package", name)
	}
	return id, nil
}
