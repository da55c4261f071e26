package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(NewMemoryCache(WithMemoryMaxSize(100)))
}

func TestGetOrFetchMemoizesWithinTTL(t *testing.T) {
	f := newTestFetcher()
	defer f.Close()

	var calls int32
	producer := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 42, nil
	}

	for i := 0; i < 5; i++ {
		v, err := GetOrFetch(context.Background(), f, "k", time.Minute, producer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 42 {
			t.Fatalf("unexpected value %d", v)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("producer called %d times, want 1", got)
	}
}

func TestGetOrFetchRefetchesAfterExpiry(t *testing.T) {
	f := newTestFetcher()
	defer f.Close()

	var calls int32
	producer := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "v", nil
	}

	if _, err := GetOrFetch(context.Background(), f, "k", 10*time.Millisecond, producer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := GetOrFetch(context.Background(), f, "k", 10*time.Millisecond, producer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("producer called %d times, want 2", got)
	}
}

func TestGetOrFetchSingleFlight(t *testing.T) {
	f := newTestFetcher()
	defer f.Close()

	var calls int32
	release := make(chan struct{})
	producer := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 7, nil
	}

	const n = 20
	var wg sync.WaitGroup
	results := make([]int, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = GetOrFetch(context.Background(), f, "k", time.Minute, producer)
		}(i)
	}

	// Let all callers pile up behind the one in-flight producer.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("producer called %d times, want 1", got)
	}
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d error: %v", i, errs[i])
		}
		if results[i] != 7 {
			t.Fatalf("caller %d got %d, want 7", i, results[i])
		}
	}
}

func TestGetOrFetchErrorPropagatesAndIsNotCached(t *testing.T) {
	f := newTestFetcher()
	defer f.Close()

	sentinel := errors.New("upstream down")
	var calls int32
	failing := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 0, sentinel
	}

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = GetOrFetch(context.Background(), f, "k", time.Minute, failing)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if !errors.Is(errs[i], sentinel) {
			t.Fatalf("caller %d got %v, want sentinel error", i, errs[i])
		}
	}

	// The failure must not have been written: the next call pays for a
	// fresh producer invocation.
	before := atomic.LoadInt32(&calls)
	if _, err := GetOrFetch(context.Background(), f, "k", time.Minute, failing); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != before+1 {
		t.Fatalf("expected a fresh producer call after failure")
	}
}

func TestGetOrFetchDistinctKeys(t *testing.T) {
	f := newTestFetcher()
	defer f.Close()

	var calls int32
	producer := func(context.Context) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	a, err := GetOrFetch(context.Background(), f, "a", time.Minute, producer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GetOrFetch(context.Background(), f, "b", time.Minute, producer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("distinct keys shared a producer result: %d", a)
	}
}
