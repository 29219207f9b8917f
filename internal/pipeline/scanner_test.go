package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.png"))
	touch(t, filepath.Join(dir, "sub", "b.JPG"))
	touch(t, filepath.Join(dir, "sub", "notes.txt"))
	touch(t, filepath.Join(dir, ".cache", "c.png"))

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatalf("ScanImages: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("found %d sources, want 2: %+v", len(sources), sources)
	}

	byKey := map[string]Source{}
	for _, s := range sources {
		byKey[s.Key] = s
	}
	if _, ok := byKey["a"]; !ok {
		t.Error("missing key a")
	}
	b, ok := byKey["sub/b"]
	if !ok {
		t.Fatal("missing key sub/b")
	}
	if b.Format != "jpeg" {
		t.Errorf("format = %q, want jpeg", b.Format)
	}
	if b.RelPath != "sub/b.JPG" {
		t.Errorf("relpath = %q, want sub/b.JPG", b.RelPath)
	}
	if b.Size != 1 {
		t.Errorf("size = %d, want 1", b.Size)
	}
}

func TestScanImages_EmptyDir(t *testing.T) {
	sources, err := ScanImages(t.TempDir())
	if err != nil {
		t.Fatalf("ScanImages: %v", err)
	}
	if len(sources) != 0 {
		t.Fatalf("found %d sources in empty dir", len(sources))
	}
}
