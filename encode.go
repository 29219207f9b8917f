package pngkit

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/imagemint/pngkit/chunk"
)

// ihdrSize is the fixed length of an IHDR chunk payload.
const ihdrSize = 13

// EncoderOptions controls PNG encoding parameters.
type EncoderOptions struct {
	// CompressionLevel is the zlib level used for the IDAT stream. It
	// accepts the compress/zlib range: 0 (store) through 9 (best
	// compression), -1 for the zlib default and -2 for Huffman-only.
	CompressionLevel int
}

// DefaultOptions returns encoding options with best zlib compression,
// favoring output size over encoding speed.
func DefaultOptions() *EncoderOptions {
	return &EncoderOptions{CompressionLevel: zlib.BestCompression}
}

func validateOptions(opts *EncoderOptions) error {
	if opts.CompressionLevel < zlib.HuffmanOnly || opts.CompressionLevel > zlib.BestCompression {
		return fmt.Errorf("pngkit: invalid CompressionLevel %d (must be %d to %d)",
			opts.CompressionLevel, zlib.HuffmanOnly, zlib.BestCompression)
	}
	return nil
}

// Encode writes img to w as a complete PNG file.
// If opts is nil, DefaultOptions() is used.
func Encode(w io.Writer, img *Image, opts *EncoderOptions) error {
	data, err := EncodeBytes(img, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// EncodeBytes encodes img into an in-memory PNG file: the eight-byte
// signature followed by IHDR, PLTE (paletted images with at least one
// entry), a single IDAT holding the zlib-compressed scanline stream, and
// IEND. Encoding never mutates img; each call recomputes the full output.
func EncodeBytes(img *Image, opts *EncoderOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if img.Width < 1 || img.Height < 1 || img.Width > MaxDimension || img.Height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, img.Width, img.Height)
	}

	idat, err := compressScanlines(img.Pix, opts.CompressionLevel)
	if err != nil {
		return nil, err
	}

	withPalette := img.Color == ColorTypePaletted && img.Palette != nil && img.Palette.Len() > 0

	size := len(chunk.Signature) + 4*(chunk.HeaderSize+chunk.FooterSize) + ihdrSize + len(idat)
	if withPalette {
		size += len(img.Palette.Bytes())
	}
	out := make([]byte, 0, size)
	out = append(out, chunk.Signature...)

	if out, err = chunk.Append(out, chunk.TypeIHDR, ihdrPayload(img)); err != nil {
		return nil, err
	}
	if withPalette {
		if out, err = chunk.Append(out, chunk.TypePLTE, img.Palette.Bytes()); err != nil {
			return nil, err
		}
	}
	if out, err = chunk.Append(out, chunk.TypeIDAT, idat); err != nil {
		return nil, err
	}
	if out, err = chunk.Append(out, chunk.TypeIEND, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// ihdrPayload builds the 13-byte IHDR payload: big-endian width and height,
// then bit depth, color type, compression method, filter method and
// interlace method. The encoder always emits 8-bit samples with deflate
// compression (0), adaptive filtering (0) and no interlacing (0).
func ihdrPayload(img *Image) []byte {
	p := make([]byte, ihdrSize)
	binary.BigEndian.PutUint32(p[0:4], uint32(img.Width))
	binary.BigEndian.PutUint32(p[4:8], uint32(img.Height))
	p[8] = 8
	p[9] = byte(img.Color)
	// p[10:13] (compression, filter, interlace) stay 0.
	return p
}

// compressScanlines deflates the raw scanline bytes, per-row filter bytes
// included, into a zlib stream ready to be framed as the IDAT payload.
func compressScanlines(pix []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(pix); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
