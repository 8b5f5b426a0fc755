package chart

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// VendorDirName is the subdirectory a chart vendors its
	// dependencies under.
	VendorDirName = "charts"

	// ArchiveSuffix is the packaged-chart extension found in VendorDirName.
	ArchiveSuffix = ".tgz"

	// maxDepth bounds the recursion against pathological directory
	// structures such as symlink loops.
	maxDepth = 64
)

var ErrDepthExceeded = errors.New("dependency recursion depth exceeded")

// Resolver builds the dependency tree of a chart directory by walking
// its vendored subcharts. A Resolver memoizes packaged subcharts by
// content digest, so the same archive vendored at several levels is
// unpacked once.
type Resolver struct {
	log      *slog.Logger
	archives map[string][]*Node
}

func NewResolver(log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		log:      log,
		archives: map[string][]*Node{},
	}
}

// Resolve reads the manifest at rootDir and recursively resolves its
// declared dependencies against the vendored charts on disk. A
// declaration without a matching vendored chart becomes a leaf node; a
// vendored chart that exists but has no valid manifest fails the whole
// resolution.
func (r *Resolver) Resolve(rootDir string) (*Node, error) {
	m, err := ReadManifest(rootDir)
	if err != nil {
		return nil, err
	}
	root := &Node{
		Name:       m.Name,
		Version:    m.Version,
		Repository: m.Repository,
	}
	root.Children, err = r.resolveDependencies(rootDir, m.Dependencies, 1)
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (r *Resolver) resolveDependencies(dir string, deps []Dependency, depth int) ([]*Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w (limit %d) under %s", ErrDepthExceeded, maxDepth, dir)
	}
	var children []*Node
	for _, dep := range deps {
		child, err := r.resolveDependency(dir, dep, depth)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (r *Resolver) resolveDependency(dir string, dep Dependency, depth int) (*Node, error) {
	node := &Node{
		Name:       dep.EffectiveName(),
		Version:    dep.Version,
		Repository: dep.Repository,
		Condition:  dep.Condition,
	}

	ref := r.locateVendored(dir, dep)
	switch {
	case ref.dir != "":
		r.log.Debug("resolving vendored chart", "name", dep.Name, "dir", ref.dir)
		m, err := readVendoredManifest(ref.dir)
		if err != nil {
			return nil, err
		}
		node.Children, err = r.resolveDependencies(ref.dir, m.Dependencies, depth+1)
		if err != nil {
			return nil, err
		}
	case ref.archive != "":
		r.log.Debug("resolving packaged chart", "name", dep.Name, "archive", ref.archive)
		children, err := r.resolveArchive(ref.archive, depth)
		if err != nil {
			return nil, err
		}
		node.Children = children
	default:
		r.log.Warn("no vendored chart for dependency", "name", dep.Name, "chart", dir)
	}
	return node, nil
}

// readVendoredManifest reads the manifest of a matched vendored
// directory. A match without a manifest is a structural problem with
// the vendored tree, not a leaf.
func readVendoredManifest(dir string) (*Manifest, error) {
	m, err := ReadManifest(dir)
	if errors.Is(err, ErrManifestNotFound) {
		return nil, fmt.Errorf("%w: vendored chart at %s has no %s", ErrManifestInvalid, dir, ManifestFileName)
	}
	return m, err
}

type vendoredRef struct {
	dir     string
	archive string
}

// locateVendored finds the on-disk chart a declaration points at.
// file:// repositories resolve relative to the declaring chart first;
// everything else is searched under charts/. Lookup uses the literal
// dependency name, never the alias: the vendored entry is named after
// the real chart. Directory precedence is an exact name match, then
// the lexicographically first <name>-* directory; archives are
// considered only when no directory matches.
func (r *Resolver) locateVendored(chartDir string, dep Dependency) vendoredRef {
	if dep.IsLocal() {
		local := dep.LocalPath(chartDir)
		if info, err := os.Stat(local); err == nil && info.IsDir() {
			return vendoredRef{dir: local}
		}
	}

	vendorDir := filepath.Join(chartDir, VendorDirName)
	entries, err := os.ReadDir(vendorDir)
	if err != nil {
		return vendoredRef{}
	}

	var suffixed, archive string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if name == dep.Name {
				return vendoredRef{dir: filepath.Join(vendorDir, name)}
			}
			if suffixed == "" && strings.HasPrefix(name, dep.Name+"-") {
				suffixed = filepath.Join(vendorDir, name)
			}
			continue
		}
		if archive != "" || !strings.HasSuffix(name, ArchiveSuffix) {
			continue
		}
		base := strings.TrimSuffix(name, ArchiveSuffix)
		if base == dep.Name || strings.HasPrefix(base, dep.Name+"-") {
			archive = filepath.Join(vendorDir, name)
		}
	}
	if suffixed != "" {
		return vendoredRef{dir: suffixed}
	}
	return vendoredRef{archive: archive}
}
