package vq

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCodewordCount is returned when the codeword count is not positive.
	ErrInvalidCodewordCount = errors.New("vq: codeword count must be positive")

	// ErrTooManyCodewords is returned when the codeword count exceeds the
	// number of distinct seed positions (PixDim).
	ErrTooManyCodewords = errors.New("vq: codeword count exceeds representable positions")

	// ErrInvalidThreshold is returned for a non-positive convergence threshold.
	ErrInvalidThreshold = errors.New("vq: convergence threshold must be positive")

	// ErrNoVectors is returned when training is asked to run on an empty input.
	ErrNoVectors = errors.New("vq: no input vectors")

	// ErrEmptyCodebook is returned when a codebook without codewords is used
	// for assignment.
	ErrEmptyCodebook = errors.New("vq: empty codebook")

	// ErrLengthMismatch is returned when a vector list and a cluster map
	// describe a different number of vectors.
	ErrLengthMismatch = errors.New("vq: length mismatch")

	// ErrNotConverged is wrapped by *ConvergenceError.
	ErrNotConverged = errors.New("vq: not converged")

	// ErrCodebookShrink is returned under ShrinkForbid when a codeword loses
	// every member during centroid update.
	ErrCodebookShrink = errors.New("vq: codebook would shrink")
)

// ErrInvalidDimension indicates an unsupported vector dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("vq: invalid dimension %d (want 1..%d)", e.Dimension, MaxDim)
}

// ErrDimensionMismatch indicates vectors of different dimensions were mixed.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("vq: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Phase names a fixed-point loop of the trainer.
type Phase int

const (
	// PhaseRepair is the assign+repair loop that runs before the first
	// centroid update.
	PhaseRepair Phase = iota
	// PhaseConvergence is the loop of centroid updates.
	PhaseConvergence
)

func (p Phase) String() string {
	switch p {
	case PhaseRepair:
		return "repair"
	case PhaseConvergence:
		return "convergence"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ConvergenceError reports that a fixed-point loop hit its iteration bound.
// Codebook and Distortion hold the last stable state for diagnostics.
type ConvergenceError struct {
	Phase      Phase
	Iterations int
	Distortion float64
	Codebook   Codebook
}

func (e *ConvergenceError) Error() string {
	if e.Phase == PhaseRepair {
		return fmt.Sprintf("vq: %s loop did not settle after %d passes", e.Phase, e.Iterations)
	}
	return fmt.Sprintf("vq: %s loop did not converge after %d iterations (distortion %.3f)",
		e.Phase, e.Iterations, e.Distortion)
}

func (e *ConvergenceError) Unwrap() error { return ErrNotConverged }

// ShrinkError reports codewords whose clusters emptied during a centroid
// update under ShrinkForbid.
type ShrinkError struct {
	Iteration int
	Indices   []int
}

func (e *ShrinkError) Error() string {
	return fmt.Sprintf("vq: iteration %d: codewords %v have empty clusters", e.Iteration, e.Indices)
}

func (e *ShrinkError) Unwrap() error { return ErrCodebookShrink }
