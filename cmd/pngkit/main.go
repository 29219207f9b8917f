package main

import (
	"os"

	"github.com/imagemint/pngkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
