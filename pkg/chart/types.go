package chart

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LocalRepositoryPrefix marks a dependency vendored next to the parent
// chart instead of under its charts/ directory.
const LocalRepositoryPrefix = "file://"

// Manifest is the subset of a Chart.yaml file this tool consumes.
type Manifest struct {
	Name         string       `yaml:"name"`
	Version      string       `yaml:"version"`
	Repository   string       `yaml:"repository"`
	Dependencies []Dependency `yaml:"dependencies"`
}

// Dependency is one entry in a manifest's dependency list.
type Dependency struct {
	Name       string `yaml:"name"`
	Version    string `yaml:"version"`
	Repository string `yaml:"repository"`
	Condition  string `yaml:"condition"`
	Alias      string `yaml:"alias"`
}

// EffectiveName returns the name the parent chart references this
// dependency by. The alias wins when set; the vendored directory on
// disk is still named after Name.
func (d Dependency) EffectiveName() string {
	if d.Alias != "" {
		return d.Alias
	}
	return d.Name
}

// IsLocal reports whether the declared repository points at a path
// relative to the parent chart rather than a remote chart repository.
func (d Dependency) IsLocal() bool {
	return strings.HasPrefix(d.Repository, LocalRepositoryPrefix)
}

// LocalPath resolves a file:// repository reference against the
// directory of the chart that declares it.
func (d Dependency) LocalPath(chartDir string) string {
	p := strings.TrimPrefix(d.Repository, LocalRepositoryPrefix)
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(chartDir, p)
}

func ValidateManifest(m *Manifest) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("chart name is required")
	}
	for i, dep := range m.Dependencies {
		if strings.TrimSpace(dep.Name) == "" {
			return fmt.Errorf("dependencies[%d].name is required", i)
		}
	}
	return nil
}
