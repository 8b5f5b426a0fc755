package render

import "fmt"

// Output filenames follow the chart name so several charts can render
// into the same directory.

func GraphFileName(rootName string) string {
	return fmt.Sprintf("%s_dependencies_graph.dot", rootName)
}

func CombinedGraphFileName(rootName string) string {
	return fmt.Sprintf("%s_dependencies_graph_combined.dot", rootName)
}

func JSONFileName(rootName string) string {
	return fmt.Sprintf("%s_dependency.json", rootName)
}
