package govq

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/govq/block"
	"github.com/hupe1980/govq/raster"
	"github.com/hupe1980/govq/vq"
)

// ChannelResult is the trained codebook and index list of one channel.
type ChannelResult struct {
	Channel  raster.Channel
	Codebook vq.Codebook
	// Indices holds one code index per block, in scan order.
	Indices []int
	Stats   vq.TrainStats
	// Fingerprint is the xxh3 digest of Codebook.
	Fingerprint uint64
}

// Result is the outcome of Compress.
type Result struct {
	// RunID identifies the Compress call in logs.
	RunID string
	// Image is the reconstruction, with the same size and channels as the input.
	Image    *raster.Image
	Shape    block.Shape
	Channels []ChannelResult
}

// Channel returns the result for ch.
func (r *Result) Channel(ch raster.Channel) (ChannelResult, bool) {
	for _, c := range r.Channels {
		if c.Channel == ch {
			return c, true
		}
	}
	return ChannelResult{}, false
}

// Compress partitions every channel of img into blocks, trains one codebook
// per channel and reconstructs the image from codebooks and indices.
//
// Configuration errors are reported before any channel is touched. Channels
// are trained concurrently; the first failure cancels the others and no
// partial result is returned.
func Compress(ctx context.Context, img *raster.Image, opts ...Option) (*Result, error) {
	start := time.Now()
	o := applyOptions(opts)
	runID := uuid.NewString()
	log := o.logger.WithRunID(runID)

	res, err := compress(ctx, img, o, log)
	channels := 0
	w, h := 0, 0
	if img != nil {
		channels, w, h = len(img.Channels), img.Width, img.Height
	}
	o.metricsCollector.RecordCompress(channels, time.Since(start), err)
	log.LogCompress(ctx, w, h, channels, err)
	if err != nil {
		return nil, err
	}
	res.RunID = runID
	return res, nil
}

func compress(ctx context.Context, img *raster.Image, o options, log *Logger) (*Result, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if err := block.Validate(img.Width, img.Height, o.shape); err != nil {
		return nil, err
	}
	if err := o.train.Validate(); err != nil {
		return nil, err
	}
	if o.workers < 0 {
		return nil, ErrInvalidWorkers
	}

	results := make([]ChannelResult, len(img.Channels))
	g, gctx := errgroup.WithContext(ctx)
	if o.workers > 0 {
		g.SetLimit(o.workers)
	}
	for i, ch := range img.Channels {
		g.Go(func() error {
			cr, err := compressChannel(gctx, img.Planes[i], ch, o, log.WithChannel(ch))
			if err != nil {
				return &ChannelError{Channel: ch, cause: err}
			}
			results[i] = cr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out, err := ReconstructImage(img.Width, img.Height, o.shape, results)
	if err != nil {
		return nil, err
	}
	return &Result{
		Image:    out,
		Shape:    o.shape,
		Channels: results,
	}, nil
}

func compressChannel(ctx context.Context, p *raster.Plane, ch raster.Channel, o options, log *Logger) (ChannelResult, error) {
	vectors, err := block.Extract(p, o.shape)
	if err != nil {
		return ChannelResult{}, err
	}

	hooks := vq.Hooks{
		OnRepair: func(_, repaired int) {
			if repaired > 0 {
				o.metricsCollector.RecordRepair(ch, repaired)
			}
		},
		OnUpdate: func(iteration int, _ float64, dropped int) {
			if dropped > 0 {
				o.metricsCollector.RecordShrink(ch, dropped)
				log.LogShrink(ctx, iteration, dropped)
			}
		},
	}
	trainer, err := vq.NewTrainer(o.train, vq.WithLogger(log.Logger), vq.WithHooks(hooks))
	if err != nil {
		return ChannelResult{}, err
	}

	start := time.Now()
	model, err := trainer.Train(ctx, vectors)
	if err != nil {
		o.metricsCollector.RecordTraining(ch, 0, 0, time.Since(start), err)
		log.LogTrain(ctx, vq.TrainStats{}, 0, err)
		return ChannelResult{}, err
	}

	fp := model.Codebook.Fingerprint()
	o.metricsCollector.RecordTraining(ch, model.Stats.Iterations, model.Stats.FinalDistortion(), model.Stats.Duration, nil)
	log.LogTrain(ctx, model.Stats, fp, nil)

	return ChannelResult{
		Channel:     ch,
		Codebook:    model.Codebook,
		Indices:     model.Indices(),
		Stats:       model.Stats,
		Fingerprint: fp,
	}, nil
}

// ReconstructImage rebuilds a raster from per-channel codebooks and indices.
// A single Gray channel yields a grayscale image; red, green and blue yield a
// color image.
func ReconstructImage(width, height int, shape block.Shape, channels []ChannelResult) (*raster.Image, error) {
	img := &raster.Image{Width: width, Height: height}
	for _, c := range channels {
		p, err := block.Reconstruct(c.Indices, c.Codebook, shape, width, height)
		if err != nil {
			return nil, fmt.Errorf("govq: reconstruct %s: %w", c.Channel, err)
		}
		img.Channels = append(img.Channels, c.Channel)
		img.Planes = append(img.Planes, p)
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}
