package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pngkit",
	Short: "Minimal PNG encoder and batch conversion toolkit",
	Long: `pngkit converts image trees into lean PNGs written from scratch:
the encoder assembles the signature, IHDR, PLTE, IDAT and IEND chunks
itself instead of wrapping image/png, picking indexed or truecolor
output per image.

Outputs get content-addressed filenames and a manifest with inline
data URI previews.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"pngkit %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[pngkit] "+format+"\n", args...)
	}
}
