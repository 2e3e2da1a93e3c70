package quality

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/govq/raster"
	"gonum.org/v1/gonum/stat"
)

// ErrShapeMismatch is returned when two rasters differ in size or channels.
var ErrShapeMismatch = errors.New("quality: raster shapes differ")

// MaxSample is the peak value used by PSNR.
const MaxSample = 255.0

// MSE returns the mean squared error between two planes.
func MSE(a, b *raster.Plane) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	if a.Width != b.Width || a.Height != b.Height {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, a.Width, a.Height, b.Width, b.Height)
	}

	sq := make([]float64, len(a.Pix))
	for i := range a.Pix {
		d := float64(a.Pix[i]) - float64(b.Pix[i])
		sq[i] = d * d
	}
	return stat.Mean(sq, nil), nil
}

// PSNR converts a mean squared error to peak signal-to-noise ratio in dB.
// Identical inputs yield +Inf.
func PSNR(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(MaxSample*MaxSample/mse)
}

// ChannelReport is the error of one channel.
type ChannelReport struct {
	Channel raster.Channel
	MSE     float64
	PSNR    float64
}

// Report is the error of a whole image.
type Report struct {
	Channels []ChannelReport
	// MSE is the mean over all channels.
	MSE  float64
	PSNR float64
}

// Compare measures every channel of got against want.
func Compare(want, got *raster.Image) (Report, error) {
	if err := want.Validate(); err != nil {
		return Report{}, err
	}
	if err := got.Validate(); err != nil {
		return Report{}, err
	}
	if len(want.Channels) != len(got.Channels) {
		return Report{}, fmt.Errorf("%w: %d vs %d channels", ErrShapeMismatch, len(want.Channels), len(got.Channels))
	}

	var r Report
	mses := make([]float64, 0, len(want.Channels))
	for i, ch := range want.Channels {
		gp, err := got.Plane(ch)
		if err != nil {
			return Report{}, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
		}
		mse, err := MSE(want.Planes[i], gp)
		if err != nil {
			return Report{}, err
		}
		r.Channels = append(r.Channels, ChannelReport{Channel: ch, MSE: mse, PSNR: PSNR(mse)})
		mses = append(mses, mse)
	}
	r.MSE = stat.Mean(mses, nil)
	r.PSNR = PSNR(r.MSE)
	return r, nil
}
