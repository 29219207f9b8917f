// Package quantize maps decoded images onto the color modes the encoder
// supports.
package quantize

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"

	"golang.org/x/image/draw"

	"github.com/imagemint/pngkit"
)

// Mode selects how source colors map to a PNG color type.
type Mode string

const (
	// ModeAuto picks indexed output when it is faithful (fully opaque
	// source, at most 256 distinct colors) and rgba otherwise.
	ModeAuto Mode = "auto"

	// ModeRGBA always produces truecolor-with-alpha output.
	ModeRGBA Mode = "rgba"

	// ModeIndexed always produces paletted output, quantizing true-color
	// sources onto the Plan 9 palette. Alpha is flattened.
	ModeIndexed Mode = "indexed"
)

// Parse validates a mode string.
func Parse(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeAuto, ModeRGBA, ModeIndexed:
		return m, nil
	}
	return "", fmt.Errorf("quantize: unknown mode %q (want auto, rgba or indexed)", s)
}

// Convert turns a decoded image into an encodable pngkit.Image according to
// mode. Dithering applies only when ModeIndexed has to quantize a source
// that indexed output cannot represent faithfully.
func Convert(img image.Image, mode Mode, dither bool) (*pngkit.Image, error) {
	switch mode {
	case ModeRGBA:
		return pngkit.FromImageRGBA(img)
	case ModeIndexed:
		out, err := pngkit.FromImage(img)
		if err != nil {
			return nil, err
		}
		if out.Color == pngkit.ColorTypePaletted {
			return out, nil
		}
		return project(img, dither)
	default:
		return pngkit.FromImage(img)
	}
}

// project redraws img onto the Plan 9 palette.
func project(img image.Image, dither bool) (*pngkit.Image, error) {
	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	dst := image.NewPaletted(dr, palette.Plan9)

	if dither {
		draw.FloydSteinberg.Draw(dst, dr, img, sr.Min)
	} else {
		draw.Draw(dst, dr, img, sr.Min, draw.Src)
	}
	return compact(dst)
}

// compact converts a projected image, keeping only the palette entries some
// pixel actually references, in first-use order.
func compact(src *image.Paletted) (*pngkit.Image, error) {
	out, err := pngkit.NewPaletted(src.Rect.Dx(), src.Rect.Dy())
	if err != nil {
		return nil, err
	}
	remap := make([]int, len(src.Palette))
	for i := range remap {
		remap[i] = -1
	}
	for y := 0; y < src.Rect.Dy(); y++ {
		so := y * src.Stride
		do := out.PixOffset(0, y)
		for x := 0; x < src.Rect.Dx(); x++ {
			idx := src.Pix[so+x]
			if remap[idx] < 0 {
				c := color.NRGBAModel.Convert(src.Palette[idx]).(color.NRGBA)
				n, err := out.Palette.Add(c.R, c.G, c.B)
				if err != nil {
					return nil, err
				}
				remap[idx] = n
			}
			out.Pix[do+x] = byte(remap[idx])
		}
	}
	return out, nil
}
