package parsers

import (
	"bufio"
	"bytes"
	"strings"

	"go.trai.ch/depsub/internal/core/domain"
	"go.trai.ch/zerr"
)

// ErrEcosystemRequired is returned by ParsePlain when no package URL type is
// configured for the manifest.
var ErrEcosystemRequired = zerr.New("plain listings require an ecosystem")

// ParsePlain decodes one "name@version" entry per line. Blank lines and lines
// starting with '#' are skipped. Every entry is a root without children.
func ParsePlain(ecosystem string, data []byte) ([]*domain.TreeNode, error) {
	if ecosystem == "" {
		return nil, ErrEcosystemRequired
	}

	set := newNodeSet()
	var roots []*domain.TreeNode
	seen := map[string]bool{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := domain.ParseEntry(line)
		if err != nil {
			return nil, err
		}
		namespace, name, err := domain.ParseNamespacedName(entry.Name)
		if err != nil {
			return nil, err
		}
		id, err := domain.NewPackageIdentity(ecosystem, namespace, name, entry.Version)
		if err != nil {
			return nil, err
		}
		if seen[id.String()] {
			continue
		}
		seen[id.String()] = true
		roots = append(roots, set.node(id))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return roots, nil
}
