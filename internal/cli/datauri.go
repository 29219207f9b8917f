package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/imagemint/pngkit"
	"github.com/imagemint/pngkit/internal/pipeline"
	"github.com/imagemint/pngkit/internal/quantize"
)

var datauriMode string

var datauriCmd = &cobra.Command{
	Use:   "datauri <image_file>",
	Short: "Re-encode an image as an inline PNG data URI",
	Long: `Reads an image in any supported source format (or "-" for stdin),
re-encodes it as a minimal PNG and prints a data: URI for embedding
in HTML or CSS.`,
	Args: cobra.ExactArgs(1),
	RunE: runDataURI,
}

func init() {
	datauriCmd.Flags().StringVarP(&datauriMode, "mode", "m", "auto", "color mode: auto, rgba, indexed")
	rootCmd.AddCommand(datauriCmd)
}

func runDataURI(_ *cobra.Command, args []string) error {
	mode, err := quantize.Parse(datauriMode)
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	src, format, err := pipeline.Decode(r)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	logVerbose("decoded %s %dx%d", format, src.Bounds().Dx(), src.Bounds().Dy())

	img, err := quantize.Convert(src, mode, false)
	if err != nil {
		return err
	}
	uri, err := pngkit.EncodeDataURI(img, nil)
	if err != nil {
		return err
	}
	fmt.Println(uri)
	return nil
}
