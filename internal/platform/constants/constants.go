// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values of the Readmate API: server timings,
// rate limits, token lifetimes, header names, log keys and Redis prefixes.
package constants

import "time"

const (
	AppName    = "readmate-api"
	AppVersion = "0.1.0-dev"
)

// HTTP server timings.
const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute

	// GlobalRequestTimeout bounds one request end to end, SQL statements included.
	GlobalRequestTimeout = 30 * time.Second
	ShutdownTimeout      = 30 * time.Second
)

// Token buckets are kept per user, or per IP for anonymous callers.
const (
	DefaultRateLimitRPS      = 100.0
	DefaultRateLimitBurst    = 150
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

const (
	AuthIssuer     = "readmate.app"
	AccessTokenTTL = 24 * time.Hour
)

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// slog attribute keys shared across packages.
const (
	FieldUserID    = "user_id"
	FieldBookID    = "book_id"
	FieldSessionID = "session_id"
)

// Redis key namespaces.
const (
	RedisPrefixFetch         = "fetch:"
	RedisPrefixLoginFailures = "auth:login_failures:"
)
