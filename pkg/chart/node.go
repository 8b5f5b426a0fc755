package chart

import "iter"

// Node is one resolved chart in the dependency tree. Name, Version,
// Repository and Condition come from the declaration that produced the
// node; only the root carries its own manifest's values. Condition is
// empty for the root and for unconditional dependencies.
type Node struct {
	Name       string
	Version    string
	Repository string
	Condition  string
	Children   []*Node
}

// Edge is one parent/child relation in the tree. The condition gating
// the relation lives on the child node.
type Edge struct {
	Parent *Node
	Child  *Node
}

// Flatten yields every node in pre-order together with the names of its
// ancestors from the root. The yielded path slice must not be mutated.
func (n *Node) Flatten() iter.Seq2[[]string, *Node] {
	return func(yield func([]string, *Node) bool) {
		n.flatten(nil, yield)
	}
}

func (n *Node) flatten(path []string, yield func([]string, *Node) bool) bool {
	if !yield(path, n) {
		return false
	}
	childPath := append(path[:len(path):len(path)], n.Name)
	for _, child := range n.Children {
		if !child.flatten(childPath, yield) {
			return false
		}
	}
	return true
}

// FlattenUnique returns the tree's nodes deduplicated by name in
// pre-order of first occurrence. The first occurrence's version and
// repository win. Merged entries carry no condition: the same chart
// may be gated differently on different edges, so conditions stay on
// edges (see Edges).
func (n *Node) FlattenUnique() []*Node {
	seen := map[string]bool{}
	var nodes []*Node
	for _, node := range n.Flatten() {
		if seen[node.Name] {
			continue
		}
		seen[node.Name] = true
		merged := *node
		merged.Condition = ""
		nodes = append(nodes, &merged)
	}
	return nodes
}

// Edges returns every parent/child relation in pre-order.
func (n *Node) Edges() []Edge {
	var edges []Edge
	for _, child := range n.Children {
		edges = append(edges, Edge{Parent: n, Child: child})
		edges = append(edges, child.Edges()...)
	}
	return edges
}
