package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/imagemint/pngkit/internal/manifest"
	"github.com/imagemint/pngkit/internal/pipeline"
	"github.com/imagemint/pngkit/internal/profile"
	"github.com/imagemint/pngkit/internal/quantize"
)

var (
	convertOutDir   string
	convertProfile  string
	convertWorkers  int
	convertMode     string
	convertMaxWidth int
	convertLevel    int
	convertDither   bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <input_dir>",
	Short: "Convert an image tree to minimal PNGs + manifest",
	Long: `Scans the input directory for images (png, jpg, jpeg, webp, gif, bmp,
tiff), re-encodes each as a single minimal PNG (indexed where the colors
allow it, truecolor otherwise) and writes a manifest file.

Output filenames are content-addressed: <key>.<w>x<h>.<mode>.<hash>.png`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutDir, "out", "o", "./pngkit_out", "output directory")
	convertCmd.Flags().StringVarP(&convertProfile, "profile", "p", "web", "conversion profile: "+strings.Join(profile.Names(), ", "))
	convertCmd.Flags().IntVarP(&convertWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	convertCmd.Flags().StringVarP(&convertMode, "mode", "m", "", "color mode: auto, rgba, indexed (overrides profile)")
	convertCmd.Flags().IntVar(&convertMaxWidth, "max-width", 0, "downscale cap in px (overrides profile)")
	convertCmd.Flags().IntVar(&convertLevel, "level", 9, "zlib compression level -2..9 (overrides profile)")
	convertCmd.Flags().BoolVar(&convertDither, "dither", false, "Floyd-Steinberg dither when quantizing (overrides profile)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(convertOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Load profile, apply flag overrides.
	prof := profile.Get(convertProfile)
	if convertMode != "" {
		mode, err := quantize.Parse(convertMode)
		if err != nil {
			return err
		}
		prof.Mode = string(mode)
	}
	if convertMaxWidth > 0 {
		prof.MaxWidth = convertMaxWidth
	}
	if cmd.Flags().Changed("level") {
		prof.CompressionLevel = convertLevel
	}
	if cmd.Flags().Changed("dither") {
		prof.Dither = convertDither
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (mode=%s, max-width=%d, level=%d)",
		prof.Name, prof.Mode, prof.MaxWidth, prof.CompressionLevel)

	// Create output dir.
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Run pipeline.
	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   convertWorkers,
		Verbose:   verbose,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	// Write manifest.
	manifestPath := filepath.Join(absOutput, manifest.Filename)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printConvertReport(m, time.Since(start))
	return nil
}

func printConvertReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║             pngkit convert complete              ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	ratio := float64(0)
	if stats.TotalInputBytes > 0 {
		ratio = float64(stats.TotalOutputBytes) / float64(stats.TotalInputBytes) * 100
	}

	fmt.Printf("  Assets:      %d  (%d indexed, %d rgba)\n",
		stats.TotalAssets, stats.IndexedAssets, stats.TotalAssets-stats.IndexedAssets)
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.ConvertInfo != nil {
		fmt.Printf("  Workers:     %d  (zlib level %d)\n",
			m.ConvertInfo.Workers, m.ConvertInfo.CompressionLevel)
	}
	fmt.Println()

	// Top 10 heaviest assets.
	if len(m.Assets) > 0 {
		type assetSize struct {
			key        string
			inputSize  int64
			outputSize int64
		}
		var items []assetSize
		for key, a := range m.Assets {
			items = append(items, assetSize{key, a.Original.Size, a.Output.Size})
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].inputSize > items[j].inputSize
		})
		n := len(items)
		if n > 10 {
			n = 10
		}
		fmt.Printf("  Top %d heaviest (original → png):\n", n)
		for _, it := range items[:n] {
			saved := float64(0)
			if it.inputSize > 0 {
				saved = (1 - float64(it.outputSize)/float64(it.inputSize)) * 100
			}
			fmt.Printf("    %-40s %8s → %8s  (−%.0f%%)\n",
				truncKey(it.key, 40),
				formatBytes(it.inputSize),
				formatBytes(it.outputSize),
				saved,
			)
		}
		fmt.Println()
	}

	// Manifest path.
	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:    %s (%s)\n", manifest.Filename, formatBytes(int64(len(data))))
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
