// Package render turns a resolved dependency tree into output
// documents: DOT graph text in two variants, and nested JSON.
package render

import (
	"io"
	"strings"

	"github.com/emicklei/dot"

	"github.com/pirakansa/helmdeps/pkg/chart"
)

const conditionalFill = "#eeeeee"

// Graph writes a DOT digraph with one node per tree path, so a chart
// pulled in by several parents appears once under each. Nodes gated by
// a condition are shaded and their incoming edge carries the condition
// as its label.
func Graph(root *chart.Node, w io.Writer) error {
	g := newGraph("dependencies")

	for path, node := range root.Flatten() {
		n := g.Node(pathID(path, node.Name)).Attr("label", nodeLabel(node))
		if node.Condition != "" {
			n.Attr("style", "filled").Attr("fillcolor", conditionalFill)
		}
		if len(path) > 0 {
			parent := g.Node(pathID(path[:len(path)-1], path[len(path)-1]))
			edge := g.Edge(parent, n)
			if node.Condition != "" {
				edge.Attr("label", node.Condition)
			}
		}
	}

	_, err := io.WriteString(w, g.String())
	return err
}

// CombinedGraph writes a DOT digraph with one node per unique chart
// name. Conditions only ever appear as edge labels here: the same chart
// may be gated differently on different edges.
func CombinedGraph(root *chart.Node, w io.Writer) error {
	g := newGraph("dependencies_combined")

	for _, node := range root.FlattenUnique() {
		g.Node(node.Name).Attr("label", nodeLabel(node))
	}
	seen := map[string]bool{}
	for _, e := range root.Edges() {
		key := e.Parent.Name + "\x00" + e.Child.Name + "\x00" + e.Child.Condition
		if seen[key] {
			continue
		}
		seen[key] = true
		edge := g.Edge(g.Node(e.Parent.Name), g.Node(e.Child.Name))
		if e.Child.Condition != "" {
			edge.Attr("label", e.Child.Condition)
		}
	}

	_, err := io.WriteString(w, g.String())
	return err
}

func newGraph(id string) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.ID(id)
	g.Attr("rankdir", "TB")
	g.Attr("nodesep", "0.1")
	g.Attr("ranksep", "2")
	return g
}

func nodeLabel(n *chart.Node) string {
	return n.Name + "@" + n.Version
}

func pathID(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, "__") + "__" + name
}
