package pngkit

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// MaxDimension is the largest width or height the encoder accepts, in pixels.
// PNG stores dimensions as four-byte unsigned integers but caps the usable
// range at 2^31-1 so that decoders using signed 32-bit arithmetic can handle
// any conforming file.
const MaxDimension = 1<<31 - 1

// ColorType identifies the PNG color type an Image encodes to.
type ColorType uint8

const (
	// ColorTypePaletted stores one palette index byte per pixel and requires
	// a PLTE chunk (PNG color type 3).
	ColorTypePaletted ColorType = 3

	// ColorTypeRGBA stores four sample bytes per pixel in R, G, B, A order
	// (PNG color type 6, truecolor with alpha).
	ColorTypeRGBA ColorType = 6
)

// BytesPerPixel returns the number of bytes one pixel occupies in the
// scanline data: 1 for paletted, 4 for RGBA.
func (c ColorType) BytesPerPixel() int {
	if c == ColorTypePaletted {
		return 1
	}
	return 4
}

func (c ColorType) String() string {
	switch c {
	case ColorTypePaletted:
		return "indexed"
	case ColorTypeRGBA:
		return "rgba"
	}
	return fmt.Sprintf("ColorType(%d)", uint8(c))
}

var (
	// ErrInvalidDimensions reports a width or height that is zero, negative,
	// or beyond MaxDimension.
	ErrInvalidDimensions = errors.New("pngkit: invalid image dimensions")

	// ErrXOutOfRange reports an x coordinate outside [0, width).
	ErrXOutOfRange = errors.New("pngkit: x coordinate out of range")

	// ErrYOutOfRange reports a y coordinate outside [0, height).
	ErrYOutOfRange = errors.New("pngkit: y coordinate out of range")
)

// Image is an in-memory raster laid out exactly as PNG serializes scanlines:
// each row begins with a filter-type byte (always 0, "None") followed by the
// row's pixel data, top row first. Compressing Pix as-is therefore yields a
// complete IDAT payload.
//
// Use NewRGBA or NewPaletted to construct one; the zero value is not usable.
type Image struct {
	// Pix holds the scanline data, including the per-row filter byte.
	// Row y occupies Pix[y*Stride : (y+1)*Stride]; its first byte is the
	// filter type and must stay 0.
	Pix []byte

	// Stride is the length of one scanline in bytes:
	// 1 + Width*Color.BytesPerPixel().
	Stride int

	Width  int
	Height int

	// Color selects the PNG color type the image encodes to.
	Color ColorType

	// Palette is the color table for paletted images, nil otherwise.
	Palette *Palette
}

// NewRGBA returns an image that encodes to 8-bit truecolor with alpha.
// All pixels start as transparent black.
func NewRGBA(width, height int) (*Image, error) {
	return newImage(width, height, ColorTypeRGBA, nil)
}

// NewPaletted returns an image that encodes to 8-bit palette-indexed color,
// with an empty palette. Colors enter the palette through SetPixel, or
// directly via Palette.Add combined with SetIndex. All pixels start at
// index 0.
func NewPaletted(width, height int) (*Image, error) {
	return newImage(width, height, ColorTypePaletted, &Palette{})
}

func newImage(width, height int, ct ColorType, pal *Palette) (*Image, error) {
	if width < 1 || height < 1 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	stride := 1 + width*ct.BytesPerPixel()
	return &Image{
		// make zeroes the buffer, so every row's filter byte starts at 0
		// (filter "None") and is never touched again.
		Pix:     make([]byte, height*stride),
		Stride:  stride,
		Width:   width,
		Height:  height,
		Color:   ct,
		Palette: pal,
	}, nil
}

// PixOffset returns the index in Pix of the first byte of the pixel at
// (x, y). The mapping is injective over the valid coordinate domain; like
// the standard library image types, it performs no bounds check.
func (m *Image) PixOffset(x, y int) int {
	return y*m.Stride + 1 + x*m.Color.BytesPerPixel()
}

// SetPixel sets the pixel at (x, y). RGBA images store the color directly.
// Paletted images look the color up in the palette, adding it if absent, and
// store its index; the alpha channel is dropped, and a 257th distinct color
// fails with ErrPaletteFull. Coordinates are checked per axis with
// ErrXOutOfRange and ErrYOutOfRange.
func (m *Image) SetPixel(x, y int, c color.NRGBA) error {
	if x < 0 || x >= m.Width {
		return fmt.Errorf("%w: x=%d, width=%d", ErrXOutOfRange, x, m.Width)
	}
	if y < 0 || y >= m.Height {
		return fmt.Errorf("%w: y=%d, height=%d", ErrYOutOfRange, y, m.Height)
	}
	off := m.PixOffset(x, y)
	if m.Color == ColorTypePaletted {
		idx, err := m.Palette.Add(c.R, c.G, c.B)
		if err != nil {
			return err
		}
		m.Pix[off] = byte(idx)
		return nil
	}
	m.Pix[off+0] = c.R
	m.Pix[off+1] = c.G
	m.Pix[off+2] = c.B
	m.Pix[off+3] = c.A
	return nil
}

// SetIndex sets the palette index of the pixel at (x, y) without consulting
// the palette's colors. The index must name an existing palette entry.
// It is only valid on paletted images.
func (m *Image) SetIndex(x, y int, idx uint8) error {
	if m.Color != ColorTypePaletted {
		return fmt.Errorf("pngkit: SetIndex on %s image", m.Color)
	}
	if x < 0 || x >= m.Width {
		return fmt.Errorf("%w: x=%d, width=%d", ErrXOutOfRange, x, m.Width)
	}
	if y < 0 || y >= m.Height {
		return fmt.Errorf("%w: y=%d, height=%d", ErrYOutOfRange, y, m.Height)
	}
	if int(idx) >= m.Palette.Len() {
		return fmt.Errorf("pngkit: palette index %d out of range (%d entries)", idx, m.Palette.Len())
	}
	m.Pix[m.PixOffset(x, y)] = idx
	return nil
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

// At implements image.Image by reading the pixel back out of the scanline
// buffer. Out-of-bounds coordinates, and paletted pixels whose index has no
// palette entry yet, return transparent black.
func (m *Image) At(x, y int) color.Color {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return color.NRGBA{}
	}
	off := m.PixOffset(x, y)
	if m.Color == ColorTypePaletted {
		if int(m.Pix[off]) >= m.Palette.Len() {
			return color.NRGBA{}
		}
		r, g, b := m.Palette.RGB(int(m.Pix[off]))
		return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
	}
	return color.NRGBA{R: m.Pix[off], G: m.Pix[off+1], B: m.Pix[off+2], A: m.Pix[off+3]}
}
