// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fetch_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readmate/internal/fetch"
	"github.com/taibuivan/readmate/internal/platform/apperr"
)

type shelf struct {
	Books []string `json:"books"`
}

func newAccessor() (*fetch.Accessor[shelf], *fetch.MemoryStore) {
	store := fetch.NewMemoryStore()
	return fetch.NewAccessor[shelf](store, fetch.DefaultPolicy(), nil), store
}

/*
TestAccessor_UnresolvedKeySkipsFetch verifies that a zero key never calls the loader.
*/
func TestAccessor_UnresolvedKeySkipsFetch(t *testing.T) {
	accessor, _ := newAccessor()
	var calls int32

	value, ok, err := accessor.Get(context.Background(), fetch.KeyFor("users", "", "list"), func(context.Context) (shelf, error) {
		atomic.AddInt32(&calls, 1)
		return shelf{}, nil
	})

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value.Books)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

/*
TestAccessor_CachesUntilInvalidated verifies the read-through cache and invalidation.
*/
func TestAccessor_CachesUntilInvalidated(t *testing.T) {
	accessor, _ := newAccessor()
	ctx := context.Background()
	key := fetch.KeyFor("users", "u1", "list")
	var calls int32

	load := func(context.Context) (shelf, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return shelf{Books: []string{"B1", "B2"}}, nil
		}
		return shelf{Books: []string{"B2"}}, nil
	}

	first, ok, err := accessor.Get(ctx, key, load)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"B1", "B2"}, first.Books)

	second, _, err := accessor.Get(ctx, key, load)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	require.NoError(t, accessor.Invalidate(ctx, key))

	third, _, err := accessor.Get(ctx, key, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"B2"}, third.Books)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

/*
TestAccessor_RetriesTenTimes verifies the fixed retry budget and the persistent error state.
*/
func TestAccessor_RetriesTenTimes(t *testing.T) {
	accessor, store := newAccessor()
	ctx := context.Background()
	key := fetch.KeyFor("users", "u1")
	var calls int32

	_, ok, err := accessor.Get(ctx, key, func(context.Context) (shelf, error) {
		atomic.AddInt32(&calls, 1)
		return shelf{}, errors.New("connection refused")
	})

	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, fetch.ErrFetchFailed))
	assert.EqualValues(t, fetch.DefaultAttempts, atomic.LoadInt32(&calls))

	var fetchErr *fetch.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, fetch.DefaultAttempts, fetchErr.Attempts)

	assert.Error(t, accessor.Err(key))
	assert.Zero(t, store.Len())

	require.NoError(t, accessor.Invalidate(ctx, key))
	assert.NoError(t, accessor.Err(key))
}

/*
TestAccessor_RecoversMidway verifies that a transient failure is hidden by a later success.
*/
func TestAccessor_RecoversMidway(t *testing.T) {
	accessor, _ := newAccessor()
	key := fetch.KeyFor("books", "B1")
	var calls int32

	value, ok, err := accessor.Get(context.Background(), key, func(context.Context) (shelf, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return shelf{}, errors.New("timeout")
		}
		return shelf{Books: []string{"B1"}}, nil
	})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"B1"}, value.Books)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	assert.NoError(t, accessor.Err(key))
}

/*
TestAccessor_ClientErrorIsNotRetried verifies that a 4xx answer stops the retry loop.
*/
func TestAccessor_ClientErrorIsNotRetried(t *testing.T) {
	accessor, _ := newAccessor()
	var calls int32

	_, _, err := accessor.Get(context.Background(), fetch.KeyFor("books", "missing"), func(context.Context) (shelf, error) {
		atomic.AddInt32(&calls, 1)
		return shelf{}, apperr.NotFound("Book")
	})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

/*
TestAccessor_CancelledContextStops verifies that retries end with the context.
*/
func TestAccessor_CancelledContextStops(t *testing.T) {
	accessor, _ := newAccessor()
	ctx, cancel := context.WithCancel(context.Background())
	var calls int32

	_, _, err := accessor.Get(ctx, fetch.KeyFor("users", "u1"), func(context.Context) (shelf, error) {
		if atomic.AddInt32(&calls, 1) == 2 {
			cancel()
		}
		return shelf{}, errors.New("unavailable")
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

/*
TestAccessor_CancelledLoadLeavesNoErrorState verifies that a load abandoned by
its caller is not recorded as the key's failure, and the next caller loads afresh.
*/
func TestAccessor_CancelledLoadLeavesNoErrorState(t *testing.T) {
	accessor, _ := newAccessor()
	key := fetch.KeyFor("users", "u1", "list")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := accessor.Get(ctx, key, func(context.Context) (shelf, error) {
		return shelf{}, errors.New("unavailable")
	})
	require.Error(t, err)
	assert.False(t, ok)
	assert.NoError(t, accessor.Err(key))

	value, ok, err := accessor.Get(context.Background(), key, func(context.Context) (shelf, error) {
		return shelf{Books: []string{"B1"}}, nil
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"B1"}, value.Books)
}

/*
TestAccessor_InvalidateDuringLoad verifies that a load which began before a
write and an invalidation does not cache its outdated result, and that reads
after the invalidation do not wait on it.
*/
func TestAccessor_InvalidateDuringLoad(t *testing.T) {
	accessor, _ := newAccessor()
	ctx := context.Background()
	key := fetch.KeyFor("users", "u1", "list")

	var mu sync.Mutex
	books := []string{"B1", "B2"}
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	load := func(context.Context) (shelf, error) {
		mu.Lock()
		snapshot := append([]string(nil), books...)
		mu.Unlock()

		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
		}
		return shelf{Books: snapshot}, nil
	}

	done := make(chan shelf)
	go func() {
		value, _, _ := accessor.Get(ctx, key, load)
		done <- value
	}()
	<-started

	// The write lands while the first load still holds its snapshot.
	mu.Lock()
	books = []string{"B2"}
	mu.Unlock()
	require.NoError(t, accessor.Invalidate(ctx, key))

	value, ok, err := accessor.Get(ctx, key, load)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"B2"}, value.Books)

	close(release)
	assert.Equal(t, []string{"B1", "B2"}, (<-done).Books)

	value, ok, err = accessor.Get(ctx, key, load)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"B2"}, value.Books)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

/*
TestAccessor_InvalidateDuringFailingLoad verifies that a load failing after an
invalidation does not leave an error state on the key.
*/
func TestAccessor_InvalidateDuringFailingLoad(t *testing.T) {
	accessor, _ := newAccessor()
	ctx := context.Background()
	key := fetch.KeyFor("users", "u1")
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	done := make(chan error)
	go func() {
		_, _, err := accessor.Get(ctx, key, func(context.Context) (shelf, error) {
			once.Do(func() {
				close(started)
				<-release
			})
			return shelf{}, errors.New("unavailable")
		})
		done <- err
	}()
	<-started

	require.NoError(t, accessor.Invalidate(ctx, key))
	close(release)

	assert.ErrorIs(t, <-done, fetch.ErrFetchFailed)
	assert.NoError(t, accessor.Err(key))
}

/*
TestAccessor_CollapsesConcurrentLoads verifies that concurrent misses share one load.
*/
func TestAccessor_CollapsesConcurrentLoads(t *testing.T) {
	accessor, _ := newAccessor()
	key := fetch.KeyFor("users", "u1", "list")
	release := make(chan struct{})
	var calls int32

	load := func(context.Context) (shelf, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return shelf{Books: []string{"B1"}}, nil
	}

	var wg sync.WaitGroup
	results := make([]shelf, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _, _ = accessor.Get(context.Background(), key, load)
		}(i)
	}

	close(release)
	wg.Wait()

	for _, result := range results {
		assert.Equal(t, []string{"B1"}, result.Books)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(len(results)))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}
