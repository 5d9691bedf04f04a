// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package fetch implements the remote data accessor: fetch-with-cache-key reads
shared by the API server (Redis-backed) and the shelf client (in-memory).

Contract:

  - A zero [Key] (unresolved identifier) short-circuits: no load, no error, no value.
  - A cached value is returned as-is until the key is invalidated.
  - A miss loads through a fixed-count [Policy]; concurrent misses on one key
    share a single load.
  - When the budget is spent the failure becomes the key's persistent error
    state, visible through [Accessor.Err] until a success or an invalidation.
    A load ended by its caller's context leaves no error state behind.
  - A load that was in flight when its key was invalidated does not write its
    result back; reads after the invalidation start a fresh load.

Cached values are never edited in place. Writers invalidate; the next read refetches.
*/
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrFetchFailed matches every [*FetchError] via [errors.Is].
var ErrFetchFailed = errors.New("fetch: retries exhausted")

// FetchError is returned when a load fails after the retry policy gives up.
// It unwraps to the last loader error, so an [apperr.AppError] from the store
// keeps its status.
type FetchError struct {
	Key      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempt(s): %v", e.Key, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// Loader produces the current value of a resource.
type Loader[T any] func(ctx context.Context) (T, error)

// Accessor caches values of type T by [Key]. Values are stored JSON-encoded so
// any [Store] can hold them.
type Accessor[T any] struct {
	store  Store
	policy Policy
	logger *slog.Logger

	group singleflight.Group

	mu       sync.Mutex
	failures map[string]error
	// generations counts invalidations per key. A load only caches its result
	// if the count is unchanged since the load began.
	generations map[string]uint64
}

// NewAccessor creates an accessor over store. A nil logger falls back to [slog.Default].
func NewAccessor[T any](store Store, policy Policy, logger *slog.Logger) *Accessor[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accessor[T]{
		store:       store,
		policy:      policy,
		logger:      logger,
		failures:    make(map[string]error),
		generations: make(map[string]uint64),
	}
}

/*
Get returns the value for key, loading it on a cache miss.

Returns:
  - T: The value (zero when absent)
  - bool: false when the key is unresolved or the load failed
  - error: nil for an unresolved key; a [*FetchError] when retries are exhausted
*/
func (a *Accessor[T]) Get(ctx context.Context, key Key, load Loader[T]) (T, bool, error) {
	var zero T

	// Unresolved identifiers are "not yet known", never an error.
	if key.IsZero() {
		return zero, false, nil
	}

	id := key.String()

	if value, ok := a.cached(ctx, id); ok {
		return value, true, nil
	}

	result, err, _ := a.group.Do(id, func() (any, error) {
		generation := a.generation(id)
		var value T

		attempts, err := a.policy.Do(ctx, func(ctx context.Context) error {
			loaded, err := load(ctx)
			if err != nil {
				return err
			}
			value = loaded
			return nil
		})

		if err != nil {
			failure := &FetchError{Key: key.Path, Attempts: attempts, Err: err}
			if ctx.Err() == nil {
				a.settle(id, generation, failure)
			}
			a.logger.WarnContext(ctx, "fetch_failed",
				slog.String("key", key.Path),
				slog.Int("attempts", attempts),
				slog.Any("error", err),
			)
			return nil, failure
		}

		if a.settle(id, generation, nil) {
			a.remember(ctx, id, generation, value)
		}
		return value, nil
	})

	if err != nil {
		return zero, false, err
	}
	return result.(T), true, nil
}

// Err returns the persistent error recorded for key, or nil.
func (a *Accessor[T]) Err(key Key) error {
	if key.IsZero() {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.failures[key.String()]
}

// Invalidate drops the cached values and error states of keys so the next
// [Accessor.Get] refetches. Zero keys are ignored.
func (a *Accessor[T]) Invalidate(ctx context.Context, keys ...Key) error {
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		if key.IsZero() {
			continue
		}
		ids = append(ids, key.String())
	}
	if len(ids) == 0 {
		return nil
	}

	a.mu.Lock()
	for _, id := range ids {
		delete(a.failures, id)
		a.generations[id]++
	}
	a.mu.Unlock()

	// Later reads must not join a load that began before the write.
	for _, id := range ids {
		a.group.Forget(id)
	}

	if err := a.store.Delete(ctx, ids...); err != nil {
		return fmt.Errorf("fetch_invalidate_failed: %w", err)
	}
	return nil
}

// cached decodes the stored value for id. Read or decode problems count as a miss.
func (a *Accessor[T]) cached(ctx context.Context, id string) (T, bool) {
	var value T

	raw, ok, err := a.store.Get(ctx, id)
	if err != nil {
		a.logger.WarnContext(ctx, "fetch_cache_read_failed", slog.String("key", id), slog.Any("error", err))
		return value, false
	}
	if !ok {
		return value, false
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		a.logger.WarnContext(ctx, "fetch_cache_decode_failed", slog.String("key", id), slog.Any("error", err))
		return value, false
	}
	return value, true
}

// remember caches value unless id was invalidated since generation. The check
// runs after the write: Invalidate bumps the generation before deleting, so
// either it deletes this write or this call sees the bump and deletes it.
func (a *Accessor[T]) remember(ctx context.Context, id string, generation uint64, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		a.logger.WarnContext(ctx, "fetch_cache_encode_failed", slog.String("key", id), slog.Any("error", err))
		return
	}
	if err := a.store.Set(ctx, id, raw); err != nil {
		a.logger.WarnContext(ctx, "fetch_cache_write_failed", slog.String("key", id), slog.Any("error", err))
		return
	}
	if a.generation(id) != generation {
		if err := a.store.Delete(ctx, id); err != nil {
			a.logger.WarnContext(ctx, "fetch_cache_discard_failed", slog.String("key", id), slog.Any("error", err))
		}
	}
}

func (a *Accessor[T]) generation(id string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generations[id]
}

// settle sets or clears the error state of id, unless id was invalidated
// since generation. It reports whether the load is still current.
func (a *Accessor[T]) settle(id string, generation uint64, err error) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.generations[id] != generation {
		return false
	}
	if err == nil {
		delete(a.failures, id)
	} else {
		a.failures[id] = err
	}
	return true
}
