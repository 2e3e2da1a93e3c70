package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/govq/raster"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// FillSamples fills dst with uniform samples in [0, 255].
// Locks only once per call.
func (r *RNG) FillSamples(dst []uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = uint8(r.rand.Intn(256))
	}
}

// Samples returns n uniform samples.
func (r *RNG) Samples(n int) []uint8 {
	out := make([]uint8, n)
	r.FillSamples(out)
	return out
}

// Gray returns a grayscale raster of uniform noise.
func (r *RNG) Gray(width, height int) *raster.Image {
	img, err := raster.NewGray(width, height, r.Samples(width*height))
	if err != nil {
		panic(err)
	}
	return img
}

// RGB returns a color raster of uniform noise.
func (r *RNG) RGB(width, height int) *raster.Image {
	n := width * height
	img, err := raster.NewRGB(width, height, r.Samples(n), r.Samples(n), r.Samples(n))
	if err != nil {
		panic(err)
	}
	return img
}

// SmoothGray returns a diagonal gradient with noise in [-noise, noise],
// clamped to the sample range. It resembles natural image content more than
// uniform noise does.
func (r *RNG) SmoothGray(width, height, noise int) *raster.Image {
	r.mu.Lock()
	defer r.mu.Unlock()

	pix := make([]uint8, width*height)
	span := width + height - 2
	if span == 0 {
		span = 1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := (x + y) * 255 / span
			if noise > 0 {
				v += r.rand.Intn(2*noise+1) - noise
			}
			pix[y*width+x] = uint8(min(max(v, 0), 255))
		}
	}
	img, err := raster.NewGray(width, height, pix)
	if err != nil {
		panic(err)
	}
	return img
}
