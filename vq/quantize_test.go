package vq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantizeDuplicateCodewords(t *testing.T) {
	cb, err := NewCodebook(MustVector(5, 5), MustVector(9, 9), MustVector(5, 5))
	require.NoError(t, err)

	m, err := Assign(diagonal(5, 9, 6, 8), cb)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 1}, Quantize(m))

	out, err := Decode(Quantize(m), cb)
	require.NoError(t, err)
	assert.Equal(t, diagonal(5, 9, 5, 9), out)
}

func TestDecodeOutOfRange(t *testing.T) {
	cb, err := NewCodebook(MustVector(1, 1))
	require.NoError(t, err)

	_, err = Decode([]int{0, 1}, cb)
	assert.Error(t, err)
	_, err = Decode([]int{-1}, cb)
	assert.Error(t, err)
}
