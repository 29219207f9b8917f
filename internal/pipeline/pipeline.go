package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/imagemint/pngkit/internal/manifest"
	"github.com/imagemint/pngkit/internal/profile"
)

// Config holds all parameters for a conversion run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	Workers   int
	Verbose   bool
}

// Pipeline orchestrates image conversion.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{cfg: cfg}
}

// Run converts every image under InputDir and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[pngkit] found %d images\n", len(sources))
	}

	// Step 2: Convert images in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[pngkit] processing: %s\n", s.Key)
			}

			results[idx] = processImage(s, p.cfg)

			if p.cfg.Verbose && results[idx].err == nil {
				fmt.Fprintf(os.Stderr, "[pngkit] done: %s (%s, %d bytes)\n",
					s.Key, results[idx].asset.Output.Mode, results[idx].asset.Output.Size)
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name)

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
	}

	// Report errors but don't fail the run for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[pngkit] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to convert", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[pngkit] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.ConvertInfo = &manifest.ConvertInfo{
		Workers:          p.cfg.Workers,
		CompressionLevel: p.cfg.Profile.CompressionLevel,
	}
	m.ComputeStats()
	return m, nil
}
