// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/constants"
	"github.com/taibuivan/readmate/internal/platform/ctxutil"
	"github.com/taibuivan/readmate/internal/platform/respond"
	"github.com/taibuivan/readmate/internal/platform/sec"
)

// TokenVerifier turns a bearer token into claims.
type TokenVerifier interface {
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// Authenticate attaches the caller's claims when a bearer token is present.
// Requests without an Authorization header pass through anonymously; a header
// that is malformed or carries a bad token is rejected with 401.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				respond.Error(w, r, apperr.Unauthorized("Invalid authorization format"))
				return
			}
			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(w, r, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxutil.WithAuthUser(r.Context(), claims)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	return token, found && strings.EqualFold(scheme, "bearer") && token != "" && !strings.ContainsRune(token, ' ')
}

// RequireAuth answers 401 unless [Authenticate] attached claims.
// The role claim is not consulted.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ctxutil.GetAuthUser(r.Context()) == nil {
			respond.Error(w, r, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole answers 401 for anonymous callers and 403 below role.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ctxutil.GetAuthUser(r.Context())
			switch {
			case claims == nil:
				respond.Error(w, r, apperr.Unauthorized("Authentication required"))
			case !sec.UserRole(claims.Role).AtLeast(role):
				respond.Error(w, r, apperr.Forbidden("Insufficient permissions"))
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
