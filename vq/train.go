package vq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultConvergenceThreshold stops centroid updates once a step moves
	// the codebook by less than this total squared distance.
	DefaultConvergenceThreshold = 1.0

	// DefaultMaxRepairIterations bounds the empty-cluster repair loop.
	DefaultMaxRepairIterations = 1000

	// DefaultMaxConvergenceIterations bounds the centroid update loop.
	DefaultMaxConvergenceIterations = 1000
)

// Config holds trainer parameters.
type Config struct {
	// Codewords is the codebook size N.
	Codewords int

	// ConvergenceThreshold ends training once the distortion of a Lloyd
	// step is strictly below it.
	ConvergenceThreshold float64

	// MaxRepairIterations bounds the number of assign+repair passes.
	MaxRepairIterations int

	// MaxConvergenceIterations bounds the number of Lloyd steps.
	MaxConvergenceIterations int

	// Shrink selects what happens when a cluster empties during an update.
	Shrink ShrinkPolicy

	// Overflow selects how seed coordinates above the sample range are treated.
	Overflow OverflowPolicy
}

// DefaultConfig returns a Config for n codewords with default bounds.
func DefaultConfig(n int) Config {
	return Config{
		Codewords:                n,
		ConvergenceThreshold:     DefaultConvergenceThreshold,
		MaxRepairIterations:      DefaultMaxRepairIterations,
		MaxConvergenceIterations: DefaultMaxConvergenceIterations,
		Shrink:                   ShrinkDrop,
		Overflow:                 OverflowUnclamped,
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Codewords <= 0 {
		return ErrInvalidCodewordCount
	}
	if c.Codewords > PixDim {
		return fmt.Errorf("%w: %d > %d", ErrTooManyCodewords, c.Codewords, PixDim)
	}
	if c.ConvergenceThreshold <= 0 {
		return ErrInvalidThreshold
	}
	if c.MaxRepairIterations <= 0 || c.MaxConvergenceIterations <= 0 {
		return fmt.Errorf("vq: iteration bounds must be positive (repair=%d, convergence=%d)",
			c.MaxRepairIterations, c.MaxConvergenceIterations)
	}
	return nil
}

// Hooks receive training events. Nil fields are skipped.
type Hooks struct {
	// OnRepair is called after every repair pass with the number of
	// nudged codewords.
	OnRepair func(pass, repaired int)

	// OnUpdate is called after every Lloyd step.
	OnUpdate func(iteration int, distortion float64, dropped int)
}

// TrainStats summarizes one training run.
type TrainStats struct {
	// RepairPasses counts assign+repair passes of the initial repair phase,
	// including the final clean pass.
	RepairPasses int

	// Repairs counts nudged codewords over the whole run.
	Repairs int

	// Iterations counts Lloyd steps.
	Iterations int

	// Distortions holds the distortion of every Lloyd step in order.
	Distortions []float64

	// Dropped counts codewords removed under ShrinkDrop.
	Dropped int

	// ShrinkRepairs counts updates that were preceded by an extra repair
	// phase under ShrinkRepair.
	ShrinkRepairs int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// FinalDistortion returns the distortion of the last Lloyd step.
func (s TrainStats) FinalDistortion() float64 {
	if len(s.Distortions) == 0 {
		return 0
	}
	return s.Distortions[len(s.Distortions)-1]
}

// Model is a converged codebook together with the final assignment of the
// training vectors.
type Model struct {
	Codebook Codebook
	Clusters *ClusterMap
	Stats    TrainStats
}

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithLogger sets the logger used for training progress. Nil disables logging.
func WithLogger(l *slog.Logger) TrainerOption {
	return func(t *Trainer) {
		t.logger = l
	}
}

// WithHooks installs event hooks.
func WithHooks(h Hooks) TrainerOption {
	return func(t *Trainer) {
		t.hooks = h
	}
}

// Trainer runs the LBG algorithm for one vector list at a time. A Trainer
// holds no per-run state and may be shared between goroutines.
type Trainer struct {
	cfg    Config
	logger *slog.Logger
	hooks  Hooks
}

// NewTrainer validates cfg and returns a Trainer.
func NewTrainer(cfg Config, opts ...TrainerOption) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Trainer{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	if t.logger == nil {
		t.logger = slog.New(discardHandler{})
	}
	return t, nil
}

// Config returns the trainer configuration.
func (t *Trainer) Config() Config {
	return t.cfg
}

// Train runs initialization, empty-cluster repair and Lloyd steps until the
// step distortion falls below the configured threshold.
//
// ctx is checked between iterations.
func (t *Trainer) Train(ctx context.Context, vectors []Vector) (*Model, error) {
	start := time.Now()
	if len(vectors) == 0 {
		return nil, ErrNoVectors
	}
	dim := vectors[0].Dim()
	for _, v := range vectors[1:] {
		if v.Dim() != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: v.Dim()}
		}
	}

	cb, err := InitCodebook(dim, t.cfg.Codewords, t.cfg.Overflow)
	if err != nil {
		return nil, err
	}

	var stats TrainStats
	cm, passes, err := t.repair(ctx, vectors, cb, &stats)
	stats.RepairPasses = passes
	if err != nil {
		return nil, err
	}
	t.logger.DebugContext(ctx, "codebook repaired",
		"passes", passes,
		"repairs", stats.Repairs,
	)

	progress := &rate.Sometimes{First: 3, Interval: time.Second}
	last := 0.0
	for iter := 1; iter <= t.cfg.MaxConvergenceIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := Update(vectors, cm)
		if err != nil {
			return nil, err
		}

		if len(res.Dropped) > 0 {
			switch t.cfg.Shrink {
			case ShrinkForbid:
				return nil, &ShrinkError{Iteration: iter, Indices: res.Dropped}
			case ShrinkRepair:
				stats.ShrinkRepairs++
				cm, _, err = t.repair(ctx, vectors, cm.Codebook(), &stats)
				if err != nil {
					return nil, err
				}
				if res, err = Update(vectors, cm); err != nil {
					return nil, err
				}
			default:
				stats.Dropped += len(res.Dropped)
				t.logger.DebugContext(ctx, "codewords dropped",
					"iteration", iter,
					"dropped", res.Dropped,
					"codewords", res.Codebook.Len(),
				)
			}
		}

		cm, err = Assign(vectors, res.Codebook)
		if err != nil {
			return nil, err
		}

		last = res.Distortion
		stats.Iterations = iter
		stats.Distortions = append(stats.Distortions, res.Distortion)
		if t.hooks.OnUpdate != nil {
			t.hooks.OnUpdate(iter, res.Distortion, len(res.Dropped))
		}
		progress.Do(func() {
			t.logger.DebugContext(ctx, "lloyd step",
				"iteration", iter,
				"distortion", res.Distortion,
			)
		})

		if res.Distortion < t.cfg.ConvergenceThreshold {
			stats.Duration = time.Since(start)
			return &Model{Codebook: res.Codebook, Clusters: cm, Stats: stats}, nil
		}
	}

	return nil, &ConvergenceError{
		Phase:      PhaseConvergence,
		Iterations: t.cfg.MaxConvergenceIterations,
		Distortion: last,
		Codebook:   cm.Codebook(),
	}
}

// repair alternates Assign and Repair until a pass nudges nothing. It returns
// the cluster map of the settled codebook and the number of passes.
func (t *Trainer) repair(ctx context.Context, vectors []Vector, cb Codebook, stats *TrainStats) (*ClusterMap, int, error) {
	for pass := 1; pass <= t.cfg.MaxRepairIterations; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, pass - 1, err
		}

		cm, err := Assign(vectors, cb)
		if err != nil {
			return nil, pass - 1, err
		}
		next, repaired := Repair(cm)
		stats.Repairs += repaired
		if t.hooks.OnRepair != nil {
			t.hooks.OnRepair(pass, repaired)
		}
		if repaired == 0 {
			return cm, pass, nil
		}
		cb = next
	}

	return nil, t.cfg.MaxRepairIterations, &ConvergenceError{
		Phase:      PhaseRepair,
		Iterations: t.cfg.MaxRepairIterations,
		Codebook:   cb,
	}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
