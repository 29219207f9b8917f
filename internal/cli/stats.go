package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/imagemint/pngkit/internal/manifest"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a converted asset directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.Filename)
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if m.ConvertInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.ConvertInfo.Workers)
		fmt.Printf("  Zlib level:       %d\n", m.ConvertInfo.CompressionLevel)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	fmt.Printf("  Indexed:          %d\n", s.IndexedAssets)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Compression:      %.1f%% of original\n", ratio)
	}
	fmt.Println()

	// Per-mode breakdown.
	modeStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range m.Assets {
		ms := modeStats[a.Output.Mode]
		ms.count++
		ms.bytes += a.Output.Size
		modeStats[a.Output.Mode] = ms
	}
	fmt.Println("  Mode breakdown:")
	for _, mode := range []string{"indexed", "rgba"} {
		if ms, ok := modeStats[mode]; ok {
			fmt.Printf("    %-8s  %4d files  %s\n", mode, ms.count, formatBytes(ms.bytes))
		}
	}
	fmt.Println()

	// Palette size distribution across indexed assets.
	paletteStats := map[int]int{}
	for _, a := range m.Assets {
		if a.Output.Mode == "indexed" {
			paletteStats[a.Output.PaletteSize]++
		}
	}
	if len(paletteStats) > 0 {
		var sizes []int
		for n := range paletteStats {
			sizes = append(sizes, n)
		}
		sort.Ints(sizes)
		fmt.Println("  Palette sizes:")
		for _, n := range sizes {
			fmt.Printf("    %3d colors  %4d files\n", n, paletteStats[n])
		}
		fmt.Println()
	}

	// Preview coverage.
	previews := 0
	for _, a := range m.Assets {
		if a.Preview != "" {
			previews++
		}
	}
	fmt.Printf("  Preview coverage: %d / %d assets\n", previews, len(m.Assets))

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if a.Output.Path == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q has no output path", key))
		}
		if a.Output.Size == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q has zero-byte output", key))
		}
		if a.Output.Mode == "indexed" && a.Output.PaletteSize == 0 {
			warnings = append(warnings, fmt.Sprintf("asset %q is indexed without palette size", key))
		}
	}
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
