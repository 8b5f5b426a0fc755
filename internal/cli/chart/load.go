package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	pkgchart "github.com/pirakansa/helmdeps/pkg/chart"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the fixed manifest filename inside a chart directory.
const ManifestFileName = "Chart.yaml"

var (
	ErrManifestNotFound = errors.New("chart manifest not found")
	ErrManifestParse    = errors.New("chart manifest is not valid yaml")
	ErrManifestInvalid  = errors.New("chart manifest is invalid")
)

// ReadManifest loads and validates the Chart.yaml directly inside dir.
// It does not touch anything else in the directory.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrManifestNotFound, path)
		}
		return nil, err
	}
	return parseManifest(content, path)
}

func parseManifest(content []byte, origin string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestParse, origin, err)
	}
	if err := pkgchart.ValidateManifest(&m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestInvalid, origin, err)
	}
	return &m, nil
}
