package govq

import (
	"github.com/hupe1980/govq/block"
	"github.com/hupe1980/govq/vq"
)

// DefaultCodewords is the codebook size used when WithCodewords is not given.
const DefaultCodewords = 16

type options struct {
	shape            block.Shape
	train            vq.Config
	workers          int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Compress.
type Option func(*options)

// WithShape selects the block shape. Default: block.TwoByTwo.
func WithShape(s block.Shape) Option {
	return func(o *options) {
		o.shape = s
	}
}

// WithCodewords sets the codebook size N. Must be in 1..256.
func WithCodewords(n int) Option {
	return func(o *options) {
		o.train.Codewords = n
	}
}

// WithConvergenceThreshold sets the distortion below which training stops.
// Default: 1.0.
func WithConvergenceThreshold(t float64) Option {
	return func(o *options) {
		o.train.ConvergenceThreshold = t
	}
}

// WithMaxRepairIterations bounds the empty-cluster repair loop.
func WithMaxRepairIterations(n int) Option {
	return func(o *options) {
		o.train.MaxRepairIterations = n
	}
}

// WithMaxConvergenceIterations bounds the centroid update loop.
func WithMaxConvergenceIterations(n int) Option {
	return func(o *options) {
		o.train.MaxConvergenceIterations = n
	}
}

// WithShrinkPolicy selects how a centroid update treats empty clusters.
// Default: vq.ShrinkDrop.
func WithShrinkPolicy(p vq.ShrinkPolicy) Option {
	return func(o *options) {
		o.train.Shrink = p
	}
}

// WithOverflowPolicy selects how out-of-range seed coordinates are treated.
func WithOverflowPolicy(p vq.OverflowPolicy) Option {
	return func(o *options) {
		o.train.Overflow = p
	}
}

// WithWorkers bounds the number of channels trained concurrently.
// Zero means one worker per channel.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &govq.BasicMetricsCollector{}
//	res, _ := govq.Compress(ctx, img, govq.WithMetricsCollector(metrics))
//	fmt.Println(metrics.GetStats().TrainingIterations)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger sets the logger. Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(opts []Option) options {
	o := options{
		shape: block.TwoByTwo,
		train: vq.DefaultConfig(DefaultCodewords),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
