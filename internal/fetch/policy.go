// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fetch

import (
	"context"

	"github.com/cenkalti/backoff/v4"

	"github.com/taibuivan/readmate/internal/platform/apperr"
)

// DefaultAttempts is the total number of load attempts before a fetch fails.
const DefaultAttempts = 10

// Policy is a fixed-count retry policy: attempts run back to back, with no
// backoff and no jitter.
type Policy struct {
	MaxAttempts int
}

// DefaultPolicy returns the policy used by both binaries.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultAttempts}
}

// Do runs op until it succeeds, returns a client error, the context ends, or
// the attempt budget is spent. It reports how many attempts were made.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	attempts := 0
	schedule := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(maxAttempts-1)), ctx)

	err := backoff.Retry(func() error {
		attempts++
		err := op(ctx)
		if err != nil && apperr.IsClientError(err) {
			// A 4xx answer is an answer; asking again cannot change it.
			return backoff.Permanent(err)
		}
		return err
	}, schedule)

	return attempts, err
}
