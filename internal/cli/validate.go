package cli

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/imagemint/pngkit"
	"github.com/imagemint/pngkit/chunk"
	"github.com/imagemint/pngkit/internal/hasher"
	"github.com/imagemint/pngkit/internal/manifest"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a pngkit manifest and verify referenced files",
	Long: `Checks manifest consistency and re-reads every referenced PNG,
verifying its size, content hash, chunk CRCs, chunk order and the
IHDR header against the manifest entry.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	m, err := manifest.ReadJSON(manifestPath)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(manifestPath)
	errors := validateManifest(m, baseDir)

	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d assets, all files verified\n", m.Stats.TotalAssets)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	// Check version.
	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	seenPaths := map[string]string{}
	for key, asset := range m.Assets {
		// Check original dimensions.
		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}

		// Check aspect ratio.
		if asset.AspectRatio <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid aspect ratio %.4f", key, asset.AspectRatio))
		}

		out := asset.Output
		if out.Width <= 0 || out.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid output dimensions %dx%d",
				key, out.Width, out.Height))
		}

		switch out.Mode {
		case "rgba":
			if out.PaletteSize != 0 {
				errs = append(errs, fmt.Sprintf("asset %q: rgba output with palette size %d", key, out.PaletteSize))
			}
		case "indexed":
			if out.PaletteSize < 1 || out.PaletteSize > 256 {
				errs = append(errs, fmt.Sprintf("asset %q: palette size %d out of range", key, out.PaletteSize))
			}
		default:
			errs = append(errs, fmt.Sprintf("asset %q: unknown mode %q", key, out.Mode))
		}

		if len(out.Hash) != hasher.HexLen {
			errs = append(errs, fmt.Sprintf("asset %q: malformed hash %q", key, out.Hash))
		}
		if out.Path == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing path", key))
			continue
		}

		// Check duplicate paths.
		if prev, dup := seenPaths[out.Path]; dup {
			errs = append(errs, fmt.Sprintf("asset %q: path %q already used by asset %q", key, out.Path, prev))
		}
		seenPaths[out.Path] = key

		// Check the file on disk.
		fullPath := filepath.Join(baseDir, filepath.FromSlash(out.Path))
		info, err := os.Stat(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: file not found: %s", key, out.Path))
			continue
		}
		if info.Size() != out.Size {
			errs = append(errs, fmt.Sprintf("asset %q: size mismatch: manifest=%d, disk=%d",
				key, out.Size, info.Size()))
		}

		data, err := os.ReadFile(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: read %s: %v", key, out.Path, err))
			continue
		}
		if sum := hasher.Sum(data); sum != out.Hash {
			errs = append(errs, fmt.Sprintf("asset %q: hash mismatch: manifest=%s, disk=%s",
				key, out.Hash, sum))
		}
		if err := verifyPNG(data, out); err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: %s: %v", key, out.Path, err))
		}
	}

	// Verify stats consistency.
	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d",
			m.Stats.TotalAssets, len(m.Assets)))
	}
	indexed := 0
	for _, a := range m.Assets {
		if a.Output.Mode == "indexed" {
			indexed++
		}
	}
	if m.Stats.IndexedAssets != indexed {
		errs = append(errs, fmt.Sprintf("stats.indexed_assets mismatch: %d != %d",
			m.Stats.IndexedAssets, indexed))
	}

	return errs
}

// verifyPNG walks the chunk stream (checking every CRC on the way) and
// compares the IHDR header against the manifest entry.
func verifyPNG(data []byte, out manifest.Output) error {
	r, err := chunk.NewReader(data)
	if err != nil {
		return err
	}

	var types []chunk.Type
	var ihdr []byte
	for {
		c, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(types) == 0 {
			if c.Type != chunk.TypeIHDR {
				return fmt.Errorf("first chunk is %s, want IHDR", c.Type)
			}
			ihdr = c.Data
		}
		types = append(types, c.Type)
	}
	if len(types) == 0 || types[len(types)-1] != chunk.TypeIEND {
		return fmt.Errorf("missing IEND")
	}

	plte, idat := -1, -1
	for i, t := range types {
		switch t {
		case chunk.TypePLTE:
			plte = i
		case chunk.TypeIDAT:
			if idat < 0 {
				idat = i
			}
		}
	}
	if idat < 0 {
		return fmt.Errorf("missing IDAT")
	}
	if plte >= 0 && plte > idat {
		return fmt.Errorf("PLTE after first IDAT")
	}

	if len(ihdr) != 13 {
		return fmt.Errorf("IHDR payload is %d bytes, want 13", len(ihdr))
	}
	w := int(binary.BigEndian.Uint32(ihdr[0:4]))
	h := int(binary.BigEndian.Uint32(ihdr[4:8]))
	if w != out.Width || h != out.Height {
		return fmt.Errorf("IHDR says %dx%d, manifest says %dx%d", w, h, out.Width, out.Height)
	}
	if ihdr[8] != 8 {
		return fmt.Errorf("bit depth %d, want 8", ihdr[8])
	}
	if ct := pngkit.ColorType(ihdr[9]); ct.String() != out.Mode {
		return fmt.Errorf("color type %s, manifest says %s", ct, out.Mode)
	}
	if out.Mode == "indexed" && plte < 0 {
		return fmt.Errorf("indexed image without PLTE")
	}
	return nil
}
