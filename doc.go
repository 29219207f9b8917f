// Package pngkit builds PNG files from scratch.
//
// The package covers the minimal subset of the PNG format needed to produce
// valid, universally readable images: 8-bit truecolor with alpha (color
// type 6) and 8-bit palette-indexed color (color type 3). Pixel data is kept
// in the exact scanline layout PNG serializes (a filter-type byte followed by
// the row's samples), compressed with zlib, and framed into the fixed chunk
// sequence IHDR, PLTE (indexed images only), IDAT, IEND. The low-level
// framing primitives live in the chunk subpackage.
//
// The package supports:
//   - 8-bit RGBA encoding (color type 6)
//   - 8-bit palette-indexed encoding (color type 3), up to 256 colors
//   - importing arbitrary image.Image values via FromImage
//   - data: URI output for inline embedding
//
// It deliberately does not decode pixel data, interlace, split IDAT, or emit
// ancillary chunks.
//
// Basic usage:
//
//	img, err := pngkit.NewRGBA(64, 64)
//	// ... img.SetPixel(x, y, c) ...
//	err = pngkit.Encode(w, img, nil)
//
// An Image is not safe for concurrent mutation. Encoding only reads the
// Image, so encoding the same Image from multiple goroutines is fine once
// all writes have completed.
package pngkit
