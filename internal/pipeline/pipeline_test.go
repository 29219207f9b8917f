package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imagemint/pngkit/internal/hasher"
	"github.com/imagemint/pngkit/internal/manifest"
	"github.com/imagemint/pngkit/internal/profile"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// photo is an opaque gradient with far more than 256 colors.
func photo(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x ^ y) & 0xff),
				A: 255,
			})
		}
	}
	return img
}

// flat is a two-color checkerboard.
func flat(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 220, G: 40, B: 40, A: 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestRun_ConvertsTree(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "photo.png"), photo(40, 30))
	writePNG(t, filepath.Join(in, "icons", "dot.png"), flat(8, 8))

	m, err := New(Config{
		InputDir:  in,
		OutputDir: out,
		Profile:   profile.Get("web"),
		Workers:   2,
	}).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if m.Stats.TotalAssets != 2 {
		t.Fatalf("total assets = %d, want 2", m.Stats.TotalAssets)
	}
	if m.Stats.IndexedAssets != 1 {
		t.Errorf("indexed assets = %d, want 1", m.Stats.IndexedAssets)
	}
	if m.ConvertInfo == nil || m.ConvertInfo.Workers != 2 {
		t.Errorf("convert info = %+v", m.ConvertInfo)
	}

	ph, ok := m.Assets["photo"]
	if !ok {
		t.Fatalf("missing asset photo, have %v", keys(m.Assets))
	}
	if ph.Output.Mode != "rgba" {
		t.Errorf("photo mode = %q, want rgba", ph.Output.Mode)
	}
	if ph.Output.Width != 40 || ph.Output.Height != 30 {
		t.Errorf("photo output = %dx%d, want 40x30", ph.Output.Width, ph.Output.Height)
	}
	if ph.Preview == "" || !strings.HasPrefix(ph.Preview, "data:image/png;base64,") {
		t.Errorf("photo preview = %.40q", ph.Preview)
	}

	dot, ok := m.Assets["icons/dot"]
	if !ok {
		t.Fatalf("missing asset icons/dot, have %v", keys(m.Assets))
	}
	if dot.Output.Mode != "indexed" {
		t.Errorf("dot mode = %q, want indexed", dot.Output.Mode)
	}
	if dot.Output.PaletteSize != 2 {
		t.Errorf("dot palette size = %d, want 2", dot.Output.PaletteSize)
	}

	// Every manifest path points at a real file whose hash matches.
	for key, a := range m.Assets {
		path := filepath.Join(out, filepath.FromSlash(a.Output.Path))
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("%s: output missing: %v", key, err)
		}
		sum, err := hasher.SumReader(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if sum != a.Output.Hash {
			t.Errorf("%s: hash %s, manifest says %s", key, sum, a.Output.Hash)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		decoded, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("%s: stdlib decode: %v", key, err)
		}
		b := decoded.Bounds()
		if b.Dx() != a.Output.Width || b.Dy() != a.Output.Height {
			t.Errorf("%s: decoded %dx%d, manifest says %dx%d",
				key, b.Dx(), b.Dy(), a.Output.Width, a.Output.Height)
		}
	}
}

func TestRun_ResizesToProfile(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "wide.png"), photo(64, 16))

	p := profile.Get("web")
	p.MaxWidth = 32
	p.PreviewSize = 0

	m, err := New(Config{InputDir: in, OutputDir: out, Profile: p, Workers: 1}).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	a := m.Assets["wide"]
	if a.Output.Width != 32 || a.Output.Height != 8 {
		t.Fatalf("output = %dx%d, want 32x8", a.Output.Width, a.Output.Height)
	}
	if a.Original.Width != 64 || a.Original.Height != 16 {
		t.Errorf("original = %dx%d, want 64x16", a.Original.Width, a.Original.Height)
	}
	if a.Preview != "" {
		t.Errorf("preview generated with PreviewSize 0")
	}
	if !strings.Contains(a.Output.Path, "32x8") {
		t.Errorf("path %q does not carry output size", a.Output.Path)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	_, err := New(Config{
		InputDir:  t.TempDir(),
		OutputDir: t.TempDir(),
		Profile:   profile.Get("web"),
	}).Run()
	if err == nil {
		t.Fatal("Run succeeded on empty input")
	}
}

func TestRun_PartialFailureTolerated(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "good.png"), flat(4, 4))
	if err := os.WriteFile(filepath.Join(in, "bad.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := New(Config{InputDir: in, OutputDir: out, Profile: profile.Get("web"), Workers: 1}).Run()
	if err != nil {
		t.Fatalf("Run failed on partial error: %v", err)
	}
	if len(m.Assets) != 1 {
		t.Fatalf("assets = %d, want 1", len(m.Assets))
	}
}

func TestRun_AllFailed(t *testing.T) {
	in := t.TempDir()
	if err := os.WriteFile(filepath.Join(in, "bad.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New(Config{InputDir: in, OutputDir: t.TempDir(), Profile: profile.Get("web"), Workers: 1}).Run()
	if err == nil {
		t.Fatal("Run succeeded with every source broken")
	}
}

func keys(m map[string]manifest.Asset) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	return out
}
