package pipeline

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Source is one image file discovered under the input directory.
type Source struct {
	AbsPath string // location on disk
	RelPath string // slash path relative to the input directory
	Key     string // asset key: RelPath without its extension
	Format  string // normalized source format (jpg folds into jpeg)
	Size    int64  // file size in bytes
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// formatName maps a lowercased extension to its canonical decoder name.
func formatName(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".tif", ".tiff":
		return "tiff"
	}
	return strings.TrimPrefix(ext, ".")
}

// ScanImages walks the input directory and returns all image sources.
// Hidden directories are skipped.
func ScanImages(inputDir string) ([]Source, error) {
	var sources []Source

	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && d.Name() != "." {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !imageExtensions[ext] {
			return nil
		}
		src, err := newSource(inputDir, path, d)
		if err != nil {
			return err
		}
		sources = append(sources, src)
		return nil
	}

	err := filepath.WalkDir(inputDir, walk)
	return sources, err
}

func newSource(inputDir, path string, d fs.DirEntry) (Source, error) {
	info, err := d.Info()
	if err != nil {
		return Source{}, err
	}
	relPath, err := filepath.Rel(inputDir, path)
	if err != nil {
		return Source{}, err
	}
	return Source{
		AbsPath: path,
		RelPath: filepath.ToSlash(relPath),
		Key:     filepath.ToSlash(strings.TrimSuffix(relPath, filepath.Ext(relPath))),
		Format:  formatName(strings.ToLower(filepath.Ext(path))),
		Size:    info.Size(),
	}, nil
}
