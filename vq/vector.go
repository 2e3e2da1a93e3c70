package vq

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxDim is the largest supported vector dimension (a 4x4 block).
	MaxDim = 16

	// PixDim is the number of representable sample values (8-bit samples).
	PixDim = 256

	// CWOffset is the per-coordinate nudge applied to a codeword whose
	// cluster is empty.
	CWOffset = 5
)

// Vector is an immutable, fixed-length tuple of integer samples.
//
// Vectors are comparable with == and can be used as map keys; two vectors are
// equal iff they have the same dimension and identical samples.
type Vector struct {
	dim int
	s   [MaxDim]int32
}

// NewVector builds a vector from samples. The dimension is len(samples).
func NewVector(samples ...int) (Vector, error) {
	if len(samples) == 0 || len(samples) > MaxDim {
		return Vector{}, &ErrInvalidDimension{Dimension: len(samples)}
	}
	v := Vector{dim: len(samples)}
	for i, s := range samples {
		v.s[i] = int32(s)
	}
	return v, nil
}

// MustVector is like NewVector but panics on an invalid dimension.
func MustVector(samples ...int) Vector {
	v, err := NewVector(samples...)
	if err != nil {
		panic(err)
	}
	return v
}

// Dim returns the number of samples.
func (v Vector) Dim() int {
	return v.dim
}

// At returns sample i.
func (v Vector) At(i int) int {
	if i < 0 || i >= v.dim {
		panic(fmt.Sprintf("vq: index %d out of range for dimension %d", i, v.dim))
	}
	return int(v.s[i])
}

// Samples returns a copy of the samples.
func (v Vector) Samples() []int {
	out := make([]int, v.dim)
	for i := range out {
		out[i] = int(v.s[i])
	}
	return out
}

// Map returns a new vector with f applied to every sample.
func (v Vector) Map(f func(int) int) Vector {
	out := Vector{dim: v.dim}
	for i := 0; i < v.dim; i++ {
		out.s[i] = int32(f(int(v.s[i])))
	}
	return out
}

// SquaredDistance returns the squared Euclidean distance between v and o.
// Both vectors must have the same dimension.
func (v Vector) SquaredDistance(o Vector) int64 {
	var sum int64
	for i := 0; i < v.dim; i++ {
		d := int64(v.s[i]) - int64(o.s[i])
		sum += d * d
	}
	return sum
}

func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < v.dim; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(v.s[i])))
	}
	b.WriteByte(')')
	return b.String()
}

// Nudge moves every coordinate CWOffset towards the midpoint of the sample
// range: coordinates below PixDim/2 are increased, all others decreased.
func Nudge(v Vector) Vector {
	return v.Map(func(s int) int {
		if s < PixDim/2 {
			return s + CWOffset
		}
		return s - CWOffset
	})
}
