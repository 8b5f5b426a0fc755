package render

import (
	"encoding/json"
	"io"

	"github.com/pirakansa/helmdeps/pkg/chart"
)

// JSON writes the tree as an indented nested-JSON document.
func JSON(root *chart.Node, w io.Writer) error {
	encoded, err := json.MarshalIndent(root, "", "    ")
	if err != nil {
		return err
	}
	encoded = append(encoded, '\n')
	_, err = w.Write(encoded)
	return err
}
