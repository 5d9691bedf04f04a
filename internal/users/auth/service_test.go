// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/users/auth"
)

// # Stubs

type memoryUsers struct {
	mu    sync.Mutex
	users []*auth.User
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, user)
	return nil
}

func (m *memoryUsers) find(match func(*auth.User) bool) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if match(user) {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return m.find(func(user *auth.User) bool { return user.Email == email })
}

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return m.find(func(user *auth.User) bool { return user.Username == username })
}

type memoryGuard struct {
	failures map[string]int
}

func (g *memoryGuard) Failures(_ context.Context, login string) (int, error) {
	return g.failures[login], nil
}

func (g *memoryGuard) RecordFailure(_ context.Context, login string, _ time.Duration) error {
	g.failures[login]++
	return nil
}

func (g *memoryGuard) Reset(_ context.Context, login string) error {
	delete(g.failures, login)
	return nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID, _, role string, _ time.Duration) (string, error) {
	return "token-" + userID + "-" + role, nil
}

func newService() (*auth.Service, *memoryGuard) {
	guard := &memoryGuard{failures: make(map[string]int)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(&memoryUsers{}, guard, fakeTokens{}, logger), guard
}

// # Tests

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	user, err := service.Register(ctx, auth.RegisterInput{
		Username: "ada",
		Email:    " Ada@Example.com ",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "ada", user.DisplayName)
	assert.Equal(t, "", user.IsReading)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	for _, login := range []string{"ada", "ADA@example.com"} {
		session, err := service.Login(ctx, auth.LoginInput{Login: login, Password: "correct horse"})
		require.NoError(t, err, login)
		assert.Equal(t, "token-"+user.ID+"-member", session.AccessToken)
		assert.Equal(t, user.ID, session.User.ID)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	_, err := service.Register(ctx, auth.RegisterInput{Username: "ada", Email: "ada@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = service.Register(ctx, auth.RegisterInput{Username: "ada2", Email: "ada@example.com", Password: "password1"})
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = service.Register(ctx, auth.RegisterInput{Username: "ada", Email: "other@example.com", Password: "password1"})
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	ctx := context.Background()
	service, guard := newService()

	_, err := service.Register(ctx, auth.RegisterInput{Username: "ada", Email: "ada@example.com", Password: "password1"})
	require.NoError(t, err)

	for range auth.MaxFailedLogins {
		_, err := service.Login(ctx, auth.LoginInput{Login: "ada", Password: "wrong"})
		assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
	}

	// Even the right password is refused while locked.
	_, err = service.Login(ctx, auth.LoginInput{Login: "ada", Password: "password1"})
	assert.Equal(t, http.StatusTooManyRequests, apperr.As(err).HTTPStatus)

	require.NoError(t, guard.Reset(ctx, "ada"))
	_, err = service.Login(ctx, auth.LoginInput{Login: "ada", Password: "password1"})
	assert.NoError(t, err)
}

func TestLogin_UnknownUser(t *testing.T) {
	service, _ := newService()

	_, err := service.Login(context.Background(), auth.LoginInput{Login: "nobody", Password: "password1"})
	assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
}

func TestHandler_RegisterValidation(t *testing.T) {
	service, _ := newService()
	router := auth.NewHandler(service).Routes()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"created", `{"username":"ada","email":"ada@example.com","password":"password1"}`, http.StatusCreated},
		{"short_password", `{"username":"bob","email":"bob@example.com","password":"short"}`, http.StatusBadRequest},
		{"bad_email", `{"username":"cyd","email":"nope","password":"password1"}`, http.StatusBadRequest},
		{"malformed", `{"username":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

func TestHandler_Login(t *testing.T) {
	service, _ := newService()
	_, err := service.Register(context.Background(), auth.RegisterInput{Username: "ada", Email: "ada@example.com", Password: "password1"})
	require.NoError(t, err)

	router := auth.NewHandler(service).Routes()
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"login":"ada","password":"password1"}`)))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"token_type":"Bearer"`)
	assert.Contains(t, recorder.Body.String(), `"expires_in":86400`)
}
