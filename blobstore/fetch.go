package blobstore

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy configures Fetch.
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	// MaxRetries is the number of retries after the first attempt. Zero
	// means a single attempt.
	MaxRetries uint64

	// Notify is called before every retry. Optional.
	Notify func(err error, next time.Duration)
}

// DefaultRetryPolicy returns the policy used when Fetch gets a zero policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxElapsedTime:  30 * time.Second,
		MaxRetries:      5,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.MaxInterval = p.MaxInterval
	eb.MaxElapsedTime = p.MaxElapsedTime
	return backoff.WithContext(backoff.WithMaxRetries(eb, p.MaxRetries), ctx)
}

// Fetch reads a whole blob, retrying transient failures. ErrNotFound and
// context errors are returned immediately. A zero policy selects
// DefaultRetryPolicy.
func Fetch(ctx context.Context, s BlobStore, name string, policy RetryPolicy) ([]byte, error) {
	if policy.InitialInterval == 0 && policy.MaxInterval == 0 && policy.MaxElapsedTime == 0 && policy.MaxRetries == 0 {
		def := DefaultRetryPolicy()
		def.Notify = policy.Notify
		policy = def
	}

	var data []byte
	op := func() error {
		b, err := Get(ctx, s, name)
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return backoff.Permanent(err)
			}
			return err
		}
		data = b
		return nil
	}

	if err := backoff.RetryNotify(op, policy.backOff(ctx), policy.Notify); err != nil {
		return nil, err
	}
	return data, nil
}
