// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/constants"
	"github.com/taibuivan/readmate/internal/platform/ctxutil"
	"github.com/taibuivan/readmate/internal/platform/respond"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// buckets is the per-identity token bucket table.
type buckets struct {
	mu      sync.Mutex
	entries map[string]*bucket
	limit   rate.Limit
	burst   int
}

func (b *buckets) allow(identity string, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.entries[identity]
	if !ok {
		entry = &bucket{limiter: rate.NewLimiter(b.limit, b.burst)}
		b.entries[identity] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (b *buckets) evictIdle(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for identity, entry := range b.entries {
		if now.Sub(entry.lastSeen) > constants.RateLimitClientTTL {
			delete(b.entries, identity)
		}
	}
}

/*
RateLimit applies a token bucket per caller: the user id for authenticated
requests, the client address otherwise. Register it after [Authenticate].

Rejected requests get a 429 envelope with a Retry-After header. Idle buckets
are evicted until ctx is done.
*/
func RateLimit(ctx context.Context) func(http.Handler) http.Handler {
	table := &buckets{
		entries: make(map[string]*bucket),
		limit:   rate.Limit(constants.DefaultRateLimitRPS),
		burst:   constants.DefaultRateLimitBurst,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				table.evictIdle(now)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !table.allow(callerIdentity(request), time.Now()) {
				const retryAfterSeconds = 1
				writer.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
				respond.Error(writer, request, apperr.RateLimited(retryAfterSeconds))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func callerIdentity(request *http.Request) string {
	if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
		return "user:" + claims.UserID
	}
	return "ip:" + RealIP(request)
}
