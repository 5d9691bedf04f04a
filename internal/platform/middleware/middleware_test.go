// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/readmate/internal/platform/ctxutil"
	"github.com/taibuivan/readmate/internal/platform/middleware"
	"github.com/taibuivan/readmate/internal/platform/sec"
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &sec.AuthClaims{UserID: "user-1", Role: string(sec.RoleMember)}, nil
}

type stubConfig struct{ dev bool }

func (c stubConfig) IsDevelopment() bool  { return c.dev }
func (c stubConfig) OriginSuffix() string { return "readmate.app" }

func protected() http.Handler {
	return middleware.Authenticate(stubVerifier{})(middleware.RequireAuth(
		http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(ctxutil.GetAuthUser(request.Context()).UserID))
		}),
	))
}

/*
TestAuthenticate covers anonymous, malformed, invalid and valid bearer headers.
*/
func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"malformed", "Token good", http.StatusUnauthorized},
		{"empty_token", "Bearer ", http.StatusUnauthorized},
		{"invalid", "Bearer bad", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			protected().ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "user-1", recorder.Body.String())
			}
		})
	}
}

/*
TestRequireRole verifies the role hierarchy gate.
*/
func TestRequireRole(t *testing.T) {
	handler := middleware.Authenticate(stubVerifier{})(middleware.RequireRole(sec.RoleCurator)(
		http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) { writer.WriteHeader(http.StatusOK) }),
	))

	request := httptest.NewRequest(http.MethodPost, "/api/v1/books", nil)
	request.Header.Set("Authorization", "Bearer good")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

/*
TestCORS verifies origin filtering outside development.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(stubConfig{dev: false})(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	allowed := httptest.NewRequest(http.MethodGet, "/", nil)
	allowed.Header.Set("Origin", "https://web.readmate.app")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, allowed)
	assert.Equal(t, "https://web.readmate.app", recorder.Header().Get("Access-Control-Allow-Origin"))

	denied := httptest.NewRequest(http.MethodGet, "/", nil)
	denied.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, denied)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestRequestID verifies that a correlation id is generated when the client sends none.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))
}
