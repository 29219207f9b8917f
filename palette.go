package pngkit

import (
	"errors"
	"fmt"
)

// MaxPaletteSize is the largest number of entries a PLTE chunk can hold:
// palette indices must fit in a single byte.
const MaxPaletteSize = 256

// ErrPaletteFull reports an attempt to add a distinct color to a palette
// that already holds MaxPaletteSize entries.
var ErrPaletteFull = errors.New("pngkit: palette full")

// Palette is an ordered table of opaque RGB colors, stored as packed 3-byte
// entries in the exact layout of a PLTE chunk payload. Entries keep the
// order in which they were first added, and no two entries are equal.
//
// The zero value is an empty palette ready for use. A Palette is not safe
// for concurrent use: Add is a read-then-append sequence.
type Palette struct {
	rgb []byte // packed R, G, B triples
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int { return len(p.rgb) / 3 }

// Add returns the index of the given color, appending it first if it is not
// yet present. Matching is exact on all three channels. Repeated calls with
// the same color return the same index without growing the palette. Adding
// a new color to a full palette fails with ErrPaletteFull and leaves the
// palette unchanged.
func (p *Palette) Add(r, g, b uint8) (int, error) {
	for i := 0; i < len(p.rgb); i += 3 {
		if p.rgb[i] == r && p.rgb[i+1] == g && p.rgb[i+2] == b {
			return i / 3, nil
		}
	}
	if p.Len() >= MaxPaletteSize {
		return 0, fmt.Errorf("%w: no room for #%02x%02x%02x beyond %d entries",
			ErrPaletteFull, r, g, b, MaxPaletteSize)
	}
	p.rgb = append(p.rgb, r, g, b)
	return p.Len() - 1, nil
}

// RGB returns the color at index i. It panics if i is out of range, like a
// slice access.
func (p *Palette) RGB(i int) (r, g, b uint8) {
	return p.rgb[i*3], p.rgb[i*3+1], p.rgb[i*3+2]
}

// Bytes returns the packed palette entries, which is exactly a PLTE chunk
// payload. The returned slice aliases the palette's storage; callers must
// not modify it.
func (p *Palette) Bytes() []byte { return p.rgb }
