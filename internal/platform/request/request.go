// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads path parameters, JSON bodies and the caller's
// identity off an incoming request.
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/ctxutil"
	"github.com/taibuivan/readmate/internal/platform/sec"
	"github.com/taibuivan/readmate/internal/platform/validate"
)

// maxBody caps JSON payloads; every Readmate request body is a handful of fields.
const maxBody = 1 << 20

// DecodeJSON fills target from the body, or returns [validate.ErrInvalidJSON].
func DecodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return validate.ErrInvalidJSON
	}
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBody)).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param is the chi URL parameter name.
func Param(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// RequiredClaims returns 401 for anonymous requests.
func RequiredClaims(r *http.Request) (*sec.AuthClaims, error) {
	if claims := ctxutil.GetAuthUser(r.Context()); claims != nil {
		return claims, nil
	}
	return nil, apperr.Unauthorized("Authentication required")
}

func RequiredUserID(r *http.Request) (string, error) {
	claims, err := RequiredClaims(r)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
