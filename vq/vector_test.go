package vq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVector(t *testing.T) {
	v, err := NewVector(1, 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, v.Dim())
	assert.Equal(t, []int{1, 2, 3, 4}, v.Samples())
	assert.Equal(t, "(1,2,3,4)", v.String())

	_, err = NewVector()
	var dimErr *ErrInvalidDimension
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 0, dimErr.Dimension)

	_, err = NewVector(make([]int, MaxDim+1)...)
	require.ErrorAs(t, err, &dimErr)
}

func TestVectorEquality(t *testing.T) {
	a := MustVector(10, 20)
	b := MustVector(10, 20)
	c := MustVector(10, 20, 0)

	assert.True(t, a == b)
	assert.False(t, a == c, "dimension is part of identity")

	seen := map[Vector]int{a: 1}
	assert.Equal(t, 1, seen[b])
}

func TestVectorSquaredDistance(t *testing.T) {
	a := MustVector(0, 0, 0, 0)
	b := MustVector(100, 100, 100, 100)
	assert.Equal(t, int64(40000), a.SquaredDistance(b))
	assert.Equal(t, int64(40000), b.SquaredDistance(a))
	assert.Equal(t, int64(0), b.SquaredDistance(b))
}

func TestVectorAtPanicsOutOfRange(t *testing.T) {
	v := MustVector(1, 2)
	assert.Equal(t, 2, v.At(1))
	assert.Panics(t, func() { v.At(2) })
	assert.Panics(t, func() { v.At(-1) })
}

func TestNudge(t *testing.T) {
	tests := []struct {
		in, want Vector
	}{
		{MustVector(64, 64), MustVector(69, 69)},
		{MustVector(127, 128), MustVector(132, 123)},
		{MustVector(192, 0), MustVector(187, 5)},
		{MustVector(255, 255, 255, 255), MustVector(250, 250, 250, 250)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Nudge(tt.in), "nudge %s", tt.in)
	}
}
