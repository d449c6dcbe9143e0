package parsers

import (
	"bufio"
	"bytes"
	"strings"

	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/zerr"
)

// goPseudoModules appear in `go mod graph` for the language and toolchain
// requirements and are not packages.
var goPseudoModules = map[string]bool{"go": true, "toolchain": true}

// ParseGoModGraph decodes `go mod graph` output: one "from to" edge per line,
// where the main module has no version. Requirements of the main module are
// the roots. The ecosystem argument is ignored; packages are always golang.
func ParseGoModGraph(_ string, data []byte) ([]*domain.TreeNode, error) {
	set := newNodeSet()
	var roots []*domain.TreeNode
	rootSeen := map[string]bool{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, zerr.With(zerr.New("expected two modules per line"), "line", lineNo)
		}

		to, ok, err := goModuleNode(set, fields[1])
		if err != nil {
			return nil, zerr.With(err, "line", lineNo)
		}
		if !ok {
			continue
		}

		if !strings.Contains(fields[0], "@") {
			if !rootSeen[to.ID.String()] {
				rootSeen[to.ID.String()] = true
				roots = append(roots, to)
			}
			continue
		}

		from, ok, err := goModuleNode(set, fields[0])
		if err != nil {
			return nil, zerr.With(err, "line", lineNo)
		}
		if ok {
			set.link(from, to)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return roots, nil
}

// goModuleNode returns the node for "path@version". ok is false for the go
// and toolchain pseudo modules.
func goModuleNode(set *nodeSet, module string) (*domain.TreeNode, bool, error) {
	path, version, found := strings.Cut(module, "@")
	if !found || path == "" || version == "" {
		return nil, false, zerr.With(domain.ErrUnresolvableEntry, "entry", module)
	}
	if goPseudoModules[path] {
		return nil, false, nil
	}
	namespace, name := domain.SplitModulePath(path)
	id, err := domain.NewPackageIdentity("golang", namespace, name, version)
	if err != nil {
		return nil, false, err
	}
	return set.node(id), true, nil
}
