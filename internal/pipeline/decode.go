package pipeline

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an image in any supported source format. The blank imports
// above register every decoder the scanner accepts.
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}
