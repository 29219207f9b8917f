package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/imagemint/pngkit"
	"github.com/imagemint/pngkit/internal/hasher"
	"github.com/imagemint/pngkit/internal/manifest"
	"github.com/imagemint/pngkit/internal/preview"
	"github.com/imagemint/pngkit/internal/quantize"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage handles a single source image: decode, resize, quantize,
// encode, write.
func processImage(src Source, cfg Config) processResult {
	result := processResult{key: src.Key}

	f, err := os.Open(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("open %s: %w", src.RelPath, err)
		return result
	}
	defer f.Close()

	img, _, err := Decode(f)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()
	origW := bounds.Dx()
	origH := bounds.Dy()

	avg := computeAvgColor(img)
	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:    origW,
			Height:   origH,
			Format:   src.Format,
			Size:     src.Size,
			HasAlpha: hasAlpha(img),
		},
		AspectRatio: float64(origW) / float64(origH),
		AvgColor:    &avg,
	}

	// Resize before any color mapping, so the quantizer sees final pixels.
	w, h := cfg.Profile.TargetSize(origW, origH)
	if w != origW || h != origH {
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	mode, err := quantize.Parse(cfg.Profile.Mode)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}
	out, err := quantize.Convert(img, mode, cfg.Profile.Dither)
	if err != nil {
		result.err = fmt.Errorf("convert %s: %w", src.RelPath, err)
		return result
	}

	data, err := pngkit.EncodeBytes(out, &pngkit.EncoderOptions{
		CompressionLevel: cfg.Profile.CompressionLevel,
	})
	if err != nil {
		result.err = fmt.Errorf("encode %s: %w", src.RelPath, err)
		return result
	}
	hash := hasher.Sum(data)

	// Ensure output subdirectory exists.
	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755)
	}

	// Build filename: key.WxH.mode.hash.png
	fileName := fmt.Sprintf("%s.%dx%d.%s.%s.png",
		filepath.Base(src.Key), w, h, out.Color, hasher.Short(hash))
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	outPath := filepath.Join(cfg.OutputDir, relPath)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	thumb, err := preview.Build(img, cfg.Profile.PreviewSize)
	if err != nil {
		result.err = fmt.Errorf("preview %s: %w", src.RelPath, err)
		return result
	}
	result.asset.Preview = thumb

	result.asset.Output = manifest.Output{
		Width:  w,
		Height: h,
		Mode:   out.Color.String(),
		Size:   int64(len(data)),
		Hash:   hash,
		Path:   relPath,
	}
	if out.Color == pngkit.ColorTypePaletted {
		result.asset.Output.PaletteSize = out.Palette.Len()
	}
	return result
}

// hasAlpha reports whether any pixel is not fully opaque.
func hasAlpha(img image.Image) bool {
	if op, ok := img.(interface{ Opaque() bool }); ok {
		return !op.Opaque()
	}
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// computeAvgColor calculates the average RGB color of an image.
func computeAvgColor(img image.Image) [3]uint8 {
	bounds := img.Bounds()
	w := uint64(bounds.Dx())
	h := uint64(bounds.Dy())
	count := w * h
	if count == 0 {
		return [3]uint8{0, 0, 0}
	}
	var rSum, gSum, bSum uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rSum += uint64(r >> 8)
			gSum += uint64(g >> 8)
			bSum += uint64(b >> 8)
		}
	}
	return [3]uint8{
		uint8(rSum / count),
		uint8(gSum / count),
		uint8(bSum / count),
	}
}
