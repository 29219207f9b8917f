package pngkit

import (
	"image"
	"image/color"
)

// FromImage converts an arbitrary image.Image into an encodable Image,
// picking the cheapest faithful representation: fully opaque sources with at
// most 256 distinct colors become paletted, everything else becomes RGBA.
// *image.Paletted inputs with opaque palettes keep their index data and
// first-use color order.
func FromImage(src image.Image) (*Image, error) {
	if p, ok := src.(*image.Paletted); ok && len(p.Palette) > 0 && len(p.Palette) <= MaxPaletteSize && paletteOpaque(p.Palette) {
		return fromPaletted(p)
	}
	if img := tryIndexed(src); img != nil {
		return img, nil
	}
	return FromImageRGBA(src)
}

// FromImageRGBA converts any image.Image into an RGBA Image, flattening the
// source's color model to 8-bit non-premultiplied RGBA.
func FromImageRGBA(src image.Image) (*Image, error) {
	b := src.Bounds()
	img, err := NewRGBA(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	if nrgba, ok := src.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			so := nrgba.PixOffset(b.Min.X, b.Min.Y+y)
			do := img.PixOffset(0, y)
			copy(img.Pix[do:do+b.Dx()*4], nrgba.Pix[so:so+b.Dx()*4])
		}
		return img, nil
	}
	for y := 0; y < b.Dy(); y++ {
		do := img.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			off := do + x*4
			img.Pix[off+0] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = c.A
		}
	}
	return img, nil
}

// fromPaletted keeps the source's index bytes, remapping them through a
// deduplicated palette in case the source palette holds repeated colors.
func fromPaletted(src *image.Paletted) (*Image, error) {
	b := src.Bounds()
	img, err := NewPaletted(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	remap := make([]byte, len(src.Palette))
	for i, c := range src.Palette {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		idx, err := img.Palette.Add(nc.R, nc.G, nc.B)
		if err != nil {
			return nil, err
		}
		remap[i] = byte(idx)
	}
	for y := 0; y < b.Dy(); y++ {
		so := src.PixOffset(b.Min.X, b.Min.Y+y)
		do := img.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			img.Pix[do+x] = remap[src.Pix[so+x]]
		}
	}
	return img, nil
}

// tryIndexed attempts a paletted conversion by walking the source pixels and
// collecting distinct colors as it goes. It returns nil as soon as it sees a
// non-opaque pixel or a 257th distinct color; photographic inputs bail out
// within the first few rows.
func tryIndexed(src image.Image) *Image {
	b := src.Bounds()
	img, err := NewPaletted(b.Dx(), b.Dy())
	if err != nil {
		return nil
	}
	for y := 0; y < b.Dy(); y++ {
		do := img.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if c.A != 0xFF {
				return nil
			}
			idx, err := img.Palette.Add(c.R, c.G, c.B)
			if err != nil {
				return nil
			}
			img.Pix[do+x] = byte(idx)
		}
	}
	return img
}

func paletteOpaque(p color.Palette) bool {
	for _, c := range p {
		if _, _, _, a := c.RGBA(); a != 0xFFFF {
			return false
		}
	}
	return true
}
