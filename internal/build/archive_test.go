package build

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, contents := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestCreateZip(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, map[string]string{
		"app/bin":        "binary-bytes",
		"app/assets/a":   "asset-a",
		"README.md":      "readme",
		"unrelated/file": "skip me",
	})

	dest := filepath.Join(tmp, "out.zip")
	sources := []string{filepath.Join(tmp, "app"), filepath.Join(tmp, "README.md")}
	if err := CreateZip(sources, dest); err != nil {
		t.Fatalf("CreateZip: %v", err)
	}

	zr, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer zr.Close()

	found := map[string]bool{}
	for _, f := range zr.File {
		found[f.Name] = true
	}

	for _, want := range []string{"app/bin", "app/assets/a", "README.md"} {
		if !found[want] {
			t.Errorf("zip missing entry %q, got %v", want, found)
		}
	}
	if found["unrelated/file"] {
		t.Error("zip should not contain files outside the sources")
	}
}

func TestCreateTarGz(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, map[string]string{
		"app/bin": "binary-bytes",
		"LICENSE": "license text",
	})

	dest := filepath.Join(tmp, "out.tar.gz")
	sources := []string{filepath.Join(tmp, "app"), filepath.Join(tmp, "LICENSE")}
	if err := CreateTarGz(sources, dest); err != nil {
		t.Fatalf("CreateTarGz: %v", err)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatalf("open tarball: %v", err)
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	tr := tar.NewReader(gzr)

	contents := map[string]string{}
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read tar: %v", err)
		}
		if header.Typeflag == tar.TypeDir {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("read entry: %v", err)
		}
		contents[header.Name] = string(data)
	}

	if contents["app/bin"] != "binary-bytes" {
		t.Errorf("unexpected app/bin contents: %q", contents["app/bin"])
	}
	if contents["LICENSE"] != "license text" {
		t.Errorf("unexpected LICENSE contents: %q", contents["LICENSE"])
	}
}

func TestArtifactExtension(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"darwin", "dmg"},
		{"windows", "zip"},
		{"linux", "tar.gz"},
		{"freebsd", "tar.gz"},
	}

	for _, tt := range tests {
		if got := ArtifactExtension(tt.goos); got != tt.want {
			t.Errorf("ArtifactExtension(%s) = %q, want %q", tt.goos, got, tt.want)
		}
	}
}
