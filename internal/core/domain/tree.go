package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// TreeNode is one package in a parsed dependency listing. Nodes may be shared
// between parents, turning the tree into a DAG; cycles are rejected by
// BuildTree.
type TreeNode struct {
	ID       PackageIdentity
	Children []*TreeNode
}

// NewTreeNode creates a node with the given children.
func NewTreeNode(id PackageIdentity, children ...*TreeNode) *TreeNode {
	return &TreeNode{ID: id, Children: children}
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	visited
)

type treeFrame struct {
	node *TreeNode
	next int
}

// BuildTree adds every node reachable from roots to cache and links each
// package to its children, returning the package of each root in order.
//
// The walk is post-order and uses an explicit stack, so depth is bounded only
// by memory. An identity is linked the first time it completes; later
// occurrences reuse the cached package without adding edges again. Edges a
// cached package already has, for example from an earlier listing, are not
// added twice. A node whose identity is already on the current path yields
// ErrCycleDetected.
func BuildTree(cache *PackageCache, roots []*TreeNode) ([]*Package, error) {
	state := make(map[string]visitState)
	tops := make([]*Package, 0, len(roots))

	for _, root := range roots {
		if state[root.ID.String()] == unvisited {
			if err := walkTree(cache, root, state); err != nil {
				return nil, err
			}
		}
		tops = append(tops, cache.Package(root.ID))
	}
	return tops, nil
}

func walkTree(cache *PackageCache, root *TreeNode, state map[string]visitState) error {
	stack := []treeFrame{{node: root}}
	state[root.ID.String()] = visiting

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next < len(top.node.Children) {
			child := top.node.Children[top.next]
			top.next++

			switch state[child.ID.String()] {
			case visiting:
				return buildCycleError(stack, child.ID)
			case visited:
				continue
			case unvisited:
				state[child.ID.String()] = visiting
				stack = append(stack, treeFrame{node: child})
			}
			continue
		}

		pkg := cache.Package(top.node.ID)
		linked := make(map[string]bool, len(pkg.Dependencies()))
		for _, dep := range pkg.Dependencies() {
			linked[dep.PackageID()] = true
		}
		for _, child := range top.node.Children {
			if linked[child.ID.String()] {
				continue
			}
			linked[child.ID.String()] = true
			pkg.DependsOn(cache.Package(child.ID))
		}
		state[top.node.ID.String()] = visited
		stack = stack[:len(stack)-1]
	}
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(stack []treeFrame, dep PackageIdentity) error {
	start := 0
	for i, frame := range stack {
		if frame.node.ID.Equal(dep) {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, frame := range stack[start:] {
		path = append(path, frame.node.ID.String())
	}
	path = append(path, dep.String())
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(path, " -> "))
}

// ExpandClosure returns every package reachable from pkg through recorded
// dependencies, excluding pkg itself unless it is reachable through a cycle.
// Packages are returned in breadth-first order without duplicates.
func ExpandClosure(pkg *Package) []*Package {
	seen := map[string]bool{}
	var out []*Package
	queue := append([]*Package(nil), pkg.Dependencies()...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next.PackageID()] {
			continue
		}
		seen[next.PackageID()] = true
		out = append(out, next)
		queue = append(queue, next.Dependencies()...)
	}
	return out
}

// RecordTree classifies a parsed listing in m: each top-level package is
// direct, every other package reachable from them is indirect, all with the
// given scope.
func RecordTree(m *Manifest, tops []*Package, scope Scope) {
	for _, pkg := range tops {
		m.AddDirectDependency(pkg, scope)
	}
	for _, pkg := range tops {
		for _, dep := range ExpandClosure(pkg) {
			m.AddIndirectDependency(dep, scope)
		}
	}
}
