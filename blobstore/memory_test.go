package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("abcdef")
	require.NoError(t, store.Put(ctx, "x/1.raw", data))
	require.NoError(t, store.Put(ctx, "x/0.raw", []byte("z")))
	require.NoError(t, store.Put(ctx, "y.raw", nil))
	data[0] = 'Z'

	got, err := Get(ctx, store, "x/1.raw")
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(got), "Put copies its input")

	names, err := store.List(ctx, "x/")
	require.NoError(t, err)
	assert.Equal(t, []string{"x/0.raw", "x/1.raw"}, names)

	b, err := store.Open(ctx, "x/1.raw")
	require.NoError(t, err)
	buf := make([]byte, 4)
	n, err := b.ReadAt(ctx, buf, 4)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)

	empty, err := Get(ctx, store, "y.raw")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = store.Open(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
