package profile

import (
	"compress/zlib"
	"sort"
)

// Profile defines conversion parameters for a target use.
type Profile struct {
	Name             string
	MaxWidth         int    // downscale cap in px, 0 = keep original size
	Mode             string // color mode: "auto", "rgba", "indexed"
	Dither           bool   // Floyd-Steinberg when forcing indexed output
	CompressionLevel int    // zlib level for IDAT streams
	PreviewSize      int    // max preview edge in px, 0 = no preview
}

// Built-in profiles.
var profiles = map[string]Profile{
	"web": {
		Name:             "web",
		MaxWidth:         1600,
		Mode:             "auto",
		CompressionLevel: zlib.BestCompression,
		PreviewSize:      24,
	},
	"icon": {
		Name:             "icon",
		MaxWidth:         256,
		Mode:             "auto",
		CompressionLevel: zlib.BestCompression,
		PreviewSize:      16,
	},
	"pixel-art": {
		Name:             "pixel-art",
		MaxWidth:         0, // never resample pixel art
		Mode:             "indexed",
		Dither:           false,
		CompressionLevel: zlib.BestCompression,
		PreviewSize:      24,
	},
	"archive": {
		Name:             "archive",
		MaxWidth:         0,
		Mode:             "rgba",
		CompressionLevel: zlib.BestCompression,
		PreviewSize:      0,
	},
}

// Get returns a profile by name. Falls back to web if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["web"]
	p.Name = name // preserve requested name
	return p
}

// Names returns the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

/// TargetSize returns the output dimensions for a source of the given size:
// capped at MaxWidth with proportional height, never upscaled.
func (p Profile) TargetSize(w, h int) (int, int) {
	if p.MaxWidth <= 0 || w <= p.MaxWidth {
		return w, h
	}
	th := int(float64(h) * float64(p.MaxWidth) / float64(w))
	if th < 1 {
		th = 1
	}
	return p.MaxWidth, th
}
