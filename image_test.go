package pngkit

import (
	"errors"
	"image/color"
	"testing"
)

func TestNewRGBA_Layout(t *testing.T) {
	img, err := NewRGBA(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if img.Color != ColorTypeRGBA {
		t.Errorf("color type = %v, want %v", img.Color, ColorTypeRGBA)
	}
	if img.Stride != 1+3*4 {
		t.Errorf("stride = %d, want %d", img.Stride, 1+3*4)
	}
	if len(img.Pix) != 2*img.Stride {
		t.Errorf("len(Pix) = %d, want %d", len(img.Pix), 2*img.Stride)
	}
	if img.Palette != nil {
		t.Error("RGBA image has a palette")
	}
}

func TestNewPaletted_Layout(t *testing.T) {
	img, err := NewPaletted(5, 4)
	if err != nil {
		t.Fatal(err)
	}
	if img.Color != ColorTypePaletted {
		t.Errorf("color type = %v, want %v", img.Color, ColorTypePaletted)
	}
	if img.Stride != 1+5 {
		t.Errorf("stride = %d, want %d", img.Stride, 1+5)
	}
	if len(img.Pix) != 4*img.Stride {
		t.Errorf("len(Pix) = %d, want %d", len(img.Pix), 4*img.Stride)
	}
	if img.Palette == nil || img.Palette.Len() != 0 {
		t.Error("paletted image should start with an empty palette")
	}
}

func TestNew_InvalidDimensions(t *testing.T) {
	for _, d := range []struct{ w, h int }{
		{0, 1}, {1, 0}, {0, 0}, {-1, 8}, {8, -1}, {MaxDimension + 1, 1}, {1, MaxDimension + 1},
	} {
		if _, err := NewRGBA(d.w, d.h); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewRGBA(%d, %d): err = %v, want ErrInvalidDimensions", d.w, d.h, err)
		}
		if _, err := NewPaletted(d.w, d.h); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewPaletted(%d, %d): err = %v, want ErrInvalidDimensions", d.w, d.h, err)
		}
	}
}

func TestPixOffset_Injective(t *testing.T) {
	for _, mk := range []func(int, int) (*Image, error){NewRGBA, NewPaletted} {
		img, err := mk(7, 5)
		if err != nil {
			t.Fatal(err)
		}
		seen := make(map[int]bool)
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				off := img.PixOffset(x, y)
				if seen[off] {
					t.Fatalf("%s: offset %d reached from two coordinates", img.Color, off)
				}
				seen[off] = true
				if off < 0 || off+img.Color.BytesPerPixel() > len(img.Pix) {
					t.Fatalf("%s: offset %d for (%d,%d) outside buffer", img.Color, off, x, y)
				}
			}
		}
	}
}

func TestSetPixel_RGBAWriteThrough(t *testing.T) {
	img, err := NewRGBA(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := img.SetPixel(2, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 4}); err != nil {
		t.Fatal(err)
	}
	off := img.PixOffset(2, 1)
	got := img.Pix[off : off+4]
	if got[0] != 1 || got[1] != 2 || got[2] != 3 || got[3] != 4 {
		t.Errorf("bytes at offset = %v, want [1 2 3 4]", got)
	}
}

func TestSetPixel_PalettedWriteThrough(t *testing.T) {
	img, err := NewPaletted(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := img.SetPixel(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255}); err != nil {
		t.Fatal(err)
	}
	if err := img.SetPixel(3, 2, color.NRGBA{R: 40, G: 50, B: 60, A: 255}); err != nil {
		t.Fatal(err)
	}
	if got := img.Pix[img.PixOffset(0, 0)]; got != 0 {
		t.Errorf("first color index = %d, want 0", got)
	}
	if got := img.Pix[img.PixOffset(3, 2)]; got != 1 {
		t.Errorf("second color index = %d, want 1", got)
	}
}

func TestSetPixel_Bounds(t *testing.T) {
	img, err := NewRGBA(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	if err := img.SetPixel(3, 2, white); err != nil {
		t.Errorf("corner pixel: %v", err)
	}
	if err := img.SetPixel(4, 0, white); !errors.Is(err, ErrXOutOfRange) {
		t.Errorf("x == width: err = %v, want ErrXOutOfRange", err)
	}
	if err := img.SetPixel(0, 3, white); !errors.Is(err, ErrYOutOfRange) {
		t.Errorf("y == height: err = %v, want ErrYOutOfRange", err)
	}
	if err := img.SetPixel(-1, 0, white); !errors.Is(err, ErrXOutOfRange) {
		t.Errorf("negative x: err = %v, want ErrXOutOfRange", err)
	}
	if err := img.SetPixel(0, -1, white); !errors.Is(err, ErrYOutOfRange) {
		t.Errorf("negative y: err = %v, want ErrYOutOfRange", err)
	}
}

func TestSetPixel_FilterBytesStayZero(t *testing.T) {
	img, err := NewRGBA(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if err := img.SetPixel(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255}); err != nil {
				t.Fatal(err)
			}
		}
	}
	for y := 0; y < 4; y++ {
		if img.Pix[y*img.Stride] != 0 {
			t.Errorf("row %d filter byte = %d, want 0", y, img.Pix[y*img.Stride])
		}
	}
}

func TestSetIndex(t *testing.T) {
	img, err := NewPaletted(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := img.Palette.Add(255, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := img.Palette.Add(0, 255, 0); err != nil {
		t.Fatal(err)
	}

	if err := img.SetIndex(1, 1, 1); err != nil {
		t.Fatal(err)
	}
	if got := img.Pix[img.PixOffset(1, 1)]; got != 1 {
		t.Errorf("index at (1,1) = %d, want 1", got)
	}
	if err := img.SetIndex(0, 0, 2); err == nil {
		t.Error("index beyond palette accepted")
	}
	if err := img.SetIndex(2, 0, 0); !errors.Is(err, ErrXOutOfRange) {
		t.Errorf("x out of range: err = %v, want ErrXOutOfRange", err)
	}

	rgba, err := NewRGBA(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := rgba.SetIndex(0, 0, 0); err == nil {
		t.Error("SetIndex on RGBA image accepted")
	}
}

func TestAt_ReadBack(t *testing.T) {
	img, err := NewRGBA(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := color.NRGBA{R: 9, G: 8, B: 7, A: 6}
	if err := img.SetPixel(1, 0, want); err != nil {
		t.Fatal(err)
	}
	if got := img.At(1, 0); got != want {
		t.Errorf("At(1,0) = %v, want %v", got, want)
	}
	if got := img.At(-1, 0); got != (color.NRGBA{}) {
		t.Errorf("At out of bounds = %v, want transparent black", got)
	}

	pal, err := NewPaletted(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := pal.At(0, 0); got != (color.NRGBA{}) {
		t.Errorf("At with empty palette = %v, want transparent black", got)
	}
	if err := pal.SetPixel(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255}); err != nil {
		t.Fatal(err)
	}
	if got := pal.At(0, 0); got != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("paletted At = %v", got)
	}
}
