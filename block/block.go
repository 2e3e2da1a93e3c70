package block

import (
	"errors"
	"fmt"

	"github.com/hupe1980/govq/raster"
	"github.com/hupe1980/govq/vq"
)

var (
	// ErrDimensionsNotDivisible is returned when a plane cannot be tiled
	// exactly by the block shape.
	ErrDimensionsNotDivisible = errors.New("block: dimensions not divisible by block shape")

	// ErrIndexOutOfRange is returned when an index does not address a codeword.
	ErrIndexOutOfRange = errors.New("block: index out of range")
)

// Validate checks that a width x height plane can be tiled by s.
func Validate(width, height int, s Shape) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidShape, int(s))
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", raster.ErrInvalidSize, width, height)
	}
	if width%s.Width() != 0 || height%s.Height() != 0 {
		return fmt.Errorf("%w: %dx%d by %s", ErrDimensionsNotDivisible, width, height, s)
	}
	return nil
}

// Count returns the number of blocks of shape s in a width x height plane.
func Count(width, height int, s Shape) int {
	return (width / s.Width()) * (height / s.Height())
}

// Extract splits p into blocks of shape s in scan order.
func Extract(p *raster.Plane, s Shape) ([]vq.Vector, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := Validate(p.Width, p.Height, s); err != nil {
		return nil, err
	}

	bw, bh := s.Width(), s.Height()
	out := make([]vq.Vector, 0, Count(p.Width, p.Height, s))
	samples := make([]int, s.Dim())
	for by := 0; by < p.Height; by += bh {
		for bx := 0; bx < p.Width; bx += bw {
			i := 0
			for y := by; y < by+bh; y++ {
				row := p.Pix[y*p.Width+bx : y*p.Width+bx+bw]
				for _, v := range row {
					samples[i] = int(v)
					i++
				}
			}
			v, err := vq.NewVector(samples...)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// Reconstruct builds a width x height plane by writing codebook[indices[i]]
// into the i-th block in scan order. Samples outside 0..255 are clamped.
func Reconstruct(indices []int, cb vq.Codebook, s Shape, width, height int) (*raster.Plane, error) {
	if err := Validate(width, height, s); err != nil {
		return nil, err
	}
	if want := Count(width, height, s); len(indices) != want {
		return nil, fmt.Errorf("block: %d indices for %d blocks", len(indices), want)
	}
	if cb.Len() > 0 && cb.Dim() != s.Dim() {
		return nil, &vq.ErrDimensionMismatch{Expected: s.Dim(), Actual: cb.Dim()}
	}

	p := raster.NewPlane(width, height)
	bw, bh := s.Width(), s.Height()
	i := 0
	for by := 0; by < height; by += bh {
		for bx := 0; bx < width; bx += bw {
			j := indices[i]
			if j < 0 || j >= cb.Len() {
				return nil, fmt.Errorf("%w: %d at block %d (codebook has %d)", ErrIndexOutOfRange, j, i, cb.Len())
			}
			w := cb.At(j)
			k := 0
			for y := by; y < by+bh; y++ {
				for x := bx; x < bx+bw; x++ {
					p.Pix[y*width+x] = clamp(w.At(k))
					k++
				}
			}
			i++
		}
	}
	return p, nil
}

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
