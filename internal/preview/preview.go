// Package preview builds small inline thumbnails for manifest entries.
package preview

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/imagemint/pngkit"
)

// Build renders img as a data URI whose longer edge is at most size pixels.
// A size of zero or less disables previews and returns an empty string.
func Build(img image.Image, size int) (string, error) {
	if size <= 0 {
		return "", nil
	}
	b := img.Bounds()
	if b.Dx() > size || b.Dy() > size {
		if b.Dx() >= b.Dy() {
			img = imaging.Resize(img, size, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, size, imaging.Lanczos)
		}
	}
	thumb, err := pngkit.FromImage(img)
	if err != nil {
		return "", err
	}
	return pngkit.EncodeDataURI(thumb, nil)
}
