// Command govq compresses raster images with LBG vector quantization.
//
//	govq compress input.raw -n 64 --shape 2x2 --output out.raw
//	govq compress image.rgb 64 3
//	govq compress s3://bucket/frames/f0001.raw.zst --width 176 --height 144
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
