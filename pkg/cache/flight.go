package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// Fetcher memoizes producer results in a cache backend and coalesces
// concurrent fetches for the same key into a single producer invocation.
// The backend is process-wide shared state, so the coalescing guarantee
// holds across sessions, not merely within one.
type Fetcher struct {
	backend Service
	group   singleflight.Group
}

// NewFetcher creates a Fetcher over the given backend.
func NewFetcher(backend Service) *Fetcher {
	return &Fetcher{backend: backend}
}

// Backend returns the underlying cache service.
func (f *Fetcher) Backend() Service {
	return f.backend
}

// Close closes the underlying backend.
func (f *Fetcher) Close() error {
	return f.backend.Close()
}

// GetOrFetch returns the cached value for key if a valid entry exists,
// without invoking producer. Otherwise producer runs exactly once per
// key among all concurrent callers; every waiter receives the same
// result or the same error. Producer failures are never cached, and a
// cache entry is replaced wholesale or not at all.
func GetOrFetch[T any](ctx context.Context, f *Fetcher, key string, ttl time.Duration, producer func(context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok := lookup[T](ctx, f, key); ok {
		return v, nil
	}

	res, err, _ := f.group.Do(key, func() (interface{}, error) {
		// A waiter queued behind a finished flight re-checks the
		// backend before paying for another producer call.
		if v, ok := lookup[T](ctx, f, key); ok {
			return v, nil
		}

		// Once dispatched, the fetch is not cancellable: all waiters
		// receive its eventual outcome even if the first caller went away.
		v, err := producer(context.WithoutCancel(ctx))
		if err != nil {
			return zero, err
		}

		b, err := json.Marshal(v)
		if err != nil {
			return zero, fmt.Errorf("encode cache value %q: %w", key, err)
		}
		if err := f.backend.Set(context.WithoutCancel(ctx), key, b, ttl); err != nil {
			return zero, fmt.Errorf("store cache value %q: %w", key, err)
		}
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	return res.(T), nil
}

func lookup[T any](ctx context.Context, f *Fetcher, key string) (T, bool) {
	var v T
	b, err := f.backend.Get(ctx, key)
	if err != nil {
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		// Undecodable entry: treat as a miss and refetch.
		return v, false
	}
	return v, true
}
