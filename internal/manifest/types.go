package manifest

// Filename is the manifest file written next to converted assets.
const Filename = "pngkit.manifest.json"

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// Manifest is the top-level output of a pngkit convert run.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	ConvertInfo *ConvertInfo     `json:"convert_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// ConvertInfo captures run-time parameters for diagnostics.
type ConvertInfo struct {
	Workers          int `json:"workers"`
	CompressionLevel int `json:"compression_level"` // zlib level used for IDAT streams
}

// Asset describes a single source image and the PNG generated from it.
type Asset struct {
	Original    OriginalInfo `json:"original"`
	Output      Output       `json:"output"`
	Preview     string       `json:"preview,omitempty"` // data: URI placeholder
	AspectRatio float64      `json:"aspect_ratio"`      // width / height
	AvgColor    *[3]uint8    `json:"avg_color,omitempty"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	HasAlpha bool   `json:"has_alpha"`
}

// Output is the encoded PNG written for an asset.
type Output struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Mode        string `json:"mode"` // "rgba" or "indexed"
	PaletteSize int    `json:"palette_size,omitempty"`
	Size        int64  `json:"size"` // bytes on disk
	Hash        string `json:"hash"` // 16 hex chars of xxhash64
	Path        string `json:"path"` // relative to base_path
}

// Stats aggregates conversion metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	IndexedAssets    int   `json:"indexed_assets"`
}
