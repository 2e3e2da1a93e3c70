package govq

import (
	"errors"
	"fmt"

	"github.com/hupe1980/govq/block"
	"github.com/hupe1980/govq/raster"
	"github.com/hupe1980/govq/vq"
)

var (
	// ErrNilImage is returned when Compress is called without an image.
	ErrNilImage = errors.New("govq: nil image")

	// ErrInvalidWorkers is returned for a negative worker count.
	ErrInvalidWorkers = errors.New("govq: worker count must not be negative")

	// ErrPlotDimension is returned when plotting vectors that are not
	// 2-dimensional.
	ErrPlotDimension = errors.New("govq: vector-space plot needs 2-dimensional vectors")
)

// Errors of the underlying packages, re-exported for errors.Is checks.
var (
	ErrInvalidCodewordCount   = vq.ErrInvalidCodewordCount
	ErrTooManyCodewords       = vq.ErrTooManyCodewords
	ErrInvalidThreshold       = vq.ErrInvalidThreshold
	ErrNotConverged           = vq.ErrNotConverged
	ErrCodebookShrink         = vq.ErrCodebookShrink
	ErrDimensionsNotDivisible = block.ErrDimensionsNotDivisible
	ErrInvalidShape           = block.ErrInvalidShape
)

// ChannelError reports the failure of one channel.
//
// The underlying error can be accessed via errors.Unwrap.
type ChannelError struct {
	Channel raster.Channel
	cause   error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("govq: %s channel: %v", e.Channel, e.cause)
}

func (e *ChannelError) Unwrap() error { return e.cause }
