package govq

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/hupe1980/govq/vq"
)

// PlotSize is the side length of a vector-space plot.
const PlotSize = vq.PixDim

// VectorSpacePlot renders 2-dimensional vectors as points on a white
// PlotSize x PlotSize canvas: the first sample is x, the second y. Input
// vectors are black, codewords red and drawn last. Points outside the canvas
// are skipped.
func VectorSpacePlot(vectors []vq.Vector, cb vq.Codebook) (*image.RGBA, error) {
	for _, v := range vectors {
		if v.Dim() != 2 {
			return nil, fmt.Errorf("%w: got %d", ErrPlotDimension, v.Dim())
		}
	}
	if cb.Len() > 0 && cb.Dim() != 2 {
		return nil, fmt.Errorf("%w: codebook has %d", ErrPlotDimension, cb.Dim())
	}

	img := image.NewRGBA(image.Rect(0, 0, PlotSize, PlotSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	black := color.RGBA{A: 0xff}
	for _, v := range vectors {
		plot(img, v, black)
	}
	red := color.RGBA{R: 0xff, A: 0xff}
	for _, w := range cb.Words() {
		plot(img, w, red)
	}
	return img, nil
}

func plot(img *image.RGBA, v vq.Vector, c color.RGBA) {
	x, y := v.At(0), v.At(1)
	if x < 0 || y < 0 || x >= PlotSize || y >= PlotSize {
		return
	}
	img.SetRGBA(x, y, c)
}
