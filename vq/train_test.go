package vq

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrainer(t *testing.T, cfg Config, opts ...TrainerOption) *Trainer {
	t.Helper()
	tr, err := NewTrainer(cfg, opts...)
	require.NoError(t, err)
	return tr
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"ZeroCodewords", func(c *Config) { c.Codewords = 0 }, ErrInvalidCodewordCount},
		{"NegativeCodewords", func(c *Config) { c.Codewords = -1 }, ErrInvalidCodewordCount},
		{"TooManyCodewords", func(c *Config) { c.Codewords = PixDim + 1 }, ErrTooManyCodewords},
		{"ZeroThreshold", func(c *Config) { c.ConvergenceThreshold = 0 }, ErrInvalidThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(4)
			tt.mutate(&cfg)
			_, err := NewTrainer(cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	cfg := DefaultConfig(4)
	cfg.MaxRepairIterations = 0
	_, err := NewTrainer(cfg)
	assert.Error(t, err)
}

func TestTrainUniformBlock(t *testing.T) {
	vectors := make([]Vector, 16)
	for i := range vectors {
		vectors[i] = MustVector(100, 100, 100, 100)
	}

	m, err := newTrainer(t, DefaultConfig(1)).Train(context.Background(), vectors)
	require.NoError(t, err)

	assert.Equal(t, "[(100,100,100,100)]", m.Codebook.String())
	assert.Equal(t, []float64{40000, 0}, m.Stats.Distortions)
	assert.Equal(t, 2, m.Stats.Iterations)
	assert.Equal(t, 1, m.Stats.RepairPasses)
	assert.Zero(t, m.Stats.Repairs)
	assert.Equal(t, make([]int, 16), m.Indices())
}

func TestTrainRepairScenario(t *testing.T) {
	var passes []int
	hooks := Hooks{OnRepair: func(pass, repaired int) { passes = append(passes, repaired) }}

	m, err := newTrainer(t, DefaultConfig(4), WithHooks(hooks)).
		Train(context.Background(), diagonal(0, 97, 128, 160))
	require.NoError(t, err)

	assert.Equal(t, []int{2, 0}, passes)
	assert.Equal(t, 2, m.Stats.RepairPasses)
	assert.Equal(t, 2, m.Stats.Repairs)
	// First step moves (69,69)->(97,97) and (187,187)->(160,160).
	assert.Equal(t, []float64{1568 + 1458, 0}, m.Stats.Distortions)
	assert.Equal(t, "[(0,0) (97,97) (128,128) (160,160)]", m.Codebook.String())
	assert.Equal(t, []int{0, 1, 2, 3}, m.Indices())
}

func TestTrainRepairBound(t *testing.T) {
	cfg := DefaultConfig(4)
	cfg.MaxRepairIterations = 1

	_, err := newTrainer(t, cfg).Train(context.Background(), diagonal(0, 97, 128, 160))
	require.ErrorIs(t, err, ErrNotConverged)

	var convErr *ConvergenceError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, PhaseRepair, convErr.Phase)
	assert.Equal(t, 1, convErr.Iterations)
	assert.Equal(t, "[(0,0) (69,69) (128,128) (187,187)]", convErr.Codebook.String())
}

func TestTrainConvergenceBound(t *testing.T) {
	cfg := DefaultConfig(1)
	cfg.MaxConvergenceIterations = 1

	_, err := newTrainer(t, cfg).Train(context.Background(), []Vector{MustVector(100, 100, 100, 100)})
	var convErr *ConvergenceError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, PhaseConvergence, convErr.Phase)
	assert.Equal(t, float64(40000), convErr.Distortion)
	assert.Equal(t, "[(100,100,100,100)]", convErr.Codebook.String())
}

// shrinkInput trains cleanly through repair with N=4, but after the first
// step the second centroid (64) loses both members to its neighbours.
var shrinkInput = diagonal(30, 34, 94, 100, 200)

func TestTrainShrinkDrop(t *testing.T) {
	var dropped []int
	hooks := Hooks{OnUpdate: func(_ int, _ float64, n int) { dropped = append(dropped, n) }}

	m, err := newTrainer(t, DefaultConfig(4), WithHooks(hooks)).Train(context.Background(), shrinkInput)
	require.NoError(t, err)

	assert.Equal(t, 1, m.Stats.RepairPasses)
	assert.Equal(t, 1, m.Stats.Dropped)
	assert.Equal(t, []int{0, 1, 0}, dropped)
	assert.Equal(t, []float64{3496, 26, 0}, m.Stats.Distortions)
	assert.Equal(t, "[(32,32) (97,97) (200,200)]", m.Codebook.String())
	assert.Equal(t, []int{0, 0, 1, 1, 2}, m.Indices())
}

func TestTrainShrinkForbid(t *testing.T) {
	cfg := DefaultConfig(4)
	cfg.Shrink = ShrinkForbid

	_, err := newTrainer(t, cfg).Train(context.Background(), shrinkInput)
	require.ErrorIs(t, err, ErrCodebookShrink)

	var shrinkErr *ShrinkError
	require.ErrorAs(t, err, &shrinkErr)
	assert.Equal(t, 2, shrinkErr.Iteration)
	assert.Equal(t, []int{1}, shrinkErr.Indices)
}

func TestTrainShrinkRepair(t *testing.T) {
	cfg := DefaultConfig(4)
	cfg.Shrink = ShrinkRepair

	m, err := newTrainer(t, cfg).Train(context.Background(), shrinkInput)
	require.NoError(t, err)

	// The emptied codeword walks 64 -> 89 in five nudges until it captures 94.
	assert.Equal(t, 1, m.Stats.ShrinkRepairs)
	assert.Equal(t, 5, m.Stats.Repairs)
	assert.Zero(t, m.Stats.Dropped)
	assert.Equal(t, []float64{3496, 58, 0}, m.Stats.Distortions)
	assert.Equal(t, "[(32,32) (94,94) (100,100) (200,200)]", m.Codebook.String())
	assert.Equal(t, []int{0, 0, 1, 2, 3}, m.Indices())
}

func TestTrainNoEmptyClustersAfterRepair(t *testing.T) {
	tr := newTrainer(t, DefaultConfig(4))
	cb, err := InitCodebook(2, 4, OverflowUnclamped)
	require.NoError(t, err)

	var stats TrainStats
	cm, passes, err := tr.repair(context.Background(), diagonal(0, 97, 128, 160), cb, &stats)
	require.NoError(t, err)
	assert.Equal(t, 2, passes)
	for j := 0; j < cm.Codebook().Len(); j++ {
		assert.Positive(t, cm.ClusterSize(j), "codeword %d", j)
	}
}

func TestTrainDeterministic(t *testing.T) {
	var vectors []Vector
	for i := 0; i < 256; i++ {
		vectors = append(vectors, MustVector(i%251, (i*37)%256, (i*i)%256, 255-i%200))
	}

	run := func() (*Model, error) {
		return newTrainer(t, DefaultConfig(8)).Train(context.Background(), vectors)
	}
	a, errA := run()
	b, errB := run()

	require.Equal(t, errA == nil, errB == nil)
	if errA != nil {
		assert.Equal(t, errA.Error(), errB.Error())
		return
	}
	assert.Equal(t, a.Codebook.Fingerprint(), b.Codebook.Fingerprint())
	assert.Equal(t, a.Indices(), b.Indices())
	assert.Equal(t, a.Stats.Distortions, b.Stats.Distortions)
}

func TestTrainInputErrors(t *testing.T) {
	tr := newTrainer(t, DefaultConfig(2))

	_, err := tr.Train(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoVectors)

	_, err = tr.Train(context.Background(), []Vector{MustVector(1, 2), MustVector(1, 2, 3, 4)})
	var mismatch *ErrDimensionMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestTrainCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTrainer(t, DefaultConfig(2)).Train(ctx, diagonal(1, 2, 3))
	assert.True(t, errors.Is(err, context.Canceled))
}
