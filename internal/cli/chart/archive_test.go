package chart

import (
	"archive/tar"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func buildTgz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		hdr := &tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(body)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("WriteHeader failed: %v", err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatalf("tar write failed: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar close failed: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close failed: %v", err)
	}
	return buf.Bytes()
}

func writeArchive(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestResolvePackagedSubchart(t *testing.T) {
	dir := t.TempDir()
	writeChart(t, dir, `name: parent
version: 1.0.0
dependencies:
  - name: redis
    version: 4.0.0
    condition: redis.enabled
`)
	archive := buildTgz(t, map[string]string{
		"redis/Chart.yaml": `name: redis
version: 4.0.0
dependencies:
  - name: common
    version: 0.1.0
`,
	})
	writeArchive(t, filepath.Join(dir, "charts"), "redis-4.0.0.tgz", archive)

	root := resolveDir(t, dir)
	redis := root.Children[0]
	if redis.Name != "redis" || redis.Condition != "redis.enabled" {
		t.Fatalf("unexpected packaged child: %+v", redis)
	}
	if len(redis.Children) != 1 || redis.Children[0].Name != "common" {
		t.Fatalf("archive contents were not resolved: %+v", redis)
	}
}

func TestResolvePackagedSubchartVendoredTwice(t *testing.T) {
	dir := t.TempDir()
	writeChart(t, dir, `name: parent
version: 1.0.0
dependencies:
  - name: left
    version: 1.0.0
  - name: right
    version: 1.0.0
`)
	for _, name := range []string{"left", "right"} {
		archive := buildTgz(t, map[string]string{
			name + "/Chart.yaml": "name: " + name + `
version: 1.0.0
dependencies:
  - name: shared
    version: 0.1.0
`,
		})
		writeArchive(t, filepath.Join(dir, "charts"), name+"-1.0.0.tgz", archive)
	}

	root := resolveDir(t, dir)
	for _, child := range root.Children {
		if len(child.Children) != 1 || child.Children[0].Name != "shared" {
			t.Fatalf("archive %s was not resolved: %+v", child.Name, child)
		}
	}
}

func TestResolvePackagedSubchartWithoutManifestFails(t *testing.T) {
	dir := t.TempDir()
	writeChart(t, dir, `name: parent
version: 1.0.0
dependencies:
  - name: redis
    version: 4.0.0
`)
	archive := buildTgz(t, map[string]string{
		"redis/values.yaml": "enabled: true\n",
	})
	writeArchive(t, filepath.Join(dir, "charts"), "redis-4.0.0.tgz", archive)

	_, err := NewResolver(nil).Resolve(dir)
	if !errors.Is(err, ErrManifestInvalid) {
		t.Fatalf("expected ErrManifestInvalid, got %v", err)
	}
}

func TestExtractArchiveRejectsPathTraversal(t *testing.T) {
	archive := buildTgz(t, map[string]string{
		"../evil.yaml": "name: evil\n",
	})
	err := extractArchive(archive, t.TempDir())
	if !errors.Is(err, errArchiveEscape) {
		t.Fatalf("expected errArchiveEscape, got %v", err)
	}
}
