package blobstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails Open a fixed number of times before delegating.
type flakyStore struct {
	BlobStore
	failures int
	calls    int
}

func (s *flakyStore) Open(ctx context.Context, name string) (Blob, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, errors.New("connection reset")
	}
	return s.BlobStore.Open(ctx, name)
}

func fastPolicy() RetryPolicy {
	return RetryPolicy{
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		MaxElapsedTime:  time.Second,
		MaxRetries:      3,
	}
}

func TestFetchRetriesTransientErrors(t *testing.T) {
	mem := NewMemoryStore()
	require.NoError(t, mem.Put(context.Background(), "a.raw", []byte("pixels")))
	store := &flakyStore{BlobStore: mem, failures: 2}

	var retries int
	policy := fastPolicy()
	policy.Notify = func(error, time.Duration) { retries++ }

	data, err := Fetch(context.Background(), store, "a.raw", policy)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
	assert.Equal(t, 3, store.calls)
	assert.Equal(t, 2, retries)
}

func TestFetchGivesUp(t *testing.T) {
	store := &flakyStore{BlobStore: NewMemoryStore(), failures: 100}

	_, err := Fetch(context.Background(), store, "a.raw", fastPolicy())
	require.Error(t, err)
	assert.Equal(t, 4, store.calls)
}

func TestFetchNotFoundIsPermanent(t *testing.T) {
	store := &flakyStore{BlobStore: NewMemoryStore()}

	_, err := Fetch(context.Background(), store, "missing.raw", fastPolicy())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, store.calls)
}

func TestFetchZeroRetriesTriesOnce(t *testing.T) {
	store := &flakyStore{BlobStore: NewMemoryStore(), failures: 100}

	var retries int
	policy := fastPolicy()
	policy.MaxRetries = 0
	policy.Notify = func(error, time.Duration) { retries++ }

	_, err := Fetch(context.Background(), store, "a.raw", policy)
	require.Error(t, err)
	assert.Equal(t, 1, store.calls)
	assert.Zero(t, retries)
}

func TestFetchZeroPolicyUsesDefaults(t *testing.T) {
	mem := NewMemoryStore()
	require.NoError(t, mem.Put(context.Background(), "a.raw", []byte("pixels")))
	store := &flakyStore{BlobStore: mem, failures: 1}

	data, err := Fetch(context.Background(), store, "a.raw", RetryPolicy{})
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
	assert.Equal(t, 2, store.calls)
}
