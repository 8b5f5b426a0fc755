package chart

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/pirakansa/helmdeps/internal/cli/shared"
)

var errArchiveEscape = errors.New("archive entry escapes extraction directory")

// resolveArchive unpacks a packaged chart to a temporary directory and
// resolves the chart found at the archive's single top-level directory.
// Results are memoized by the archive's content digest.
func (r *Resolver) resolveArchive(path string, depth int) ([]*Node, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	digest := shared.BLAKE3Hex(content)
	if children, ok := r.archives[digest]; ok {
		r.log.Debug("packaged chart already resolved", "archive", path)
		return children, nil
	}

	tmp, err := os.MkdirTemp("", "helmdeps-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	if err := extractArchive(content, tmp); err != nil {
		return nil, fmt.Errorf("unpack %s: %w", path, err)
	}
	chartDir, err := archiveChartDir(tmp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", path, err)
	}

	m, err := readVendoredManifest(chartDir)
	if err != nil {
		return nil, err
	}
	children, err := r.resolveDependencies(chartDir, m.Dependencies, depth+1)
	if err != nil {
		return nil, err
	}
	r.archives[digest] = children
	return children, nil
}

// archiveChartDir returns the single top-level directory a packaged
// chart nests its files under.
func archiveChartDir(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			return filepath.Join(root, entry.Name()), nil
		}
	}
	return "", errors.New("no chart directory in archive")
}

func extractArchive(content []byte, dest string) error {
	gz, err := gzip.NewReader(bytes.NewReader(content))
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr); err != nil {
				return err
			}
		}
	}
}

func writeEntry(target string, body io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// safeJoin joins name under dest and rejects entries that would land
// outside it, such as ../../etc/passwd.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if target != dest && !strings.HasPrefix(target, dest+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", errArchiveEscape, name)
	}
	return target, nil
}
