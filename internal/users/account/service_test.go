// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readmate/internal/fetch"
	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/ctxutil"
	"github.com/taibuivan/readmate/internal/platform/sec"
	"github.com/taibuivan/readmate/internal/users/account"
	"github.com/taibuivan/readmate/internal/users/auth"
)

type memoryAccounts struct {
	mu     sync.Mutex
	users  map[string]*auth.User
	finds  int
	update int
}

func (m *memoryAccounts) FindByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	user, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (m *memoryAccounts) UpdateProfile(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.update++
	stored, ok := m.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.DisplayName = user.DisplayName
	stored.AvatarURL = user.AvatarURL
	return nil
}

func (m *memoryAccounts) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func newService() (*account.Service, *memoryAccounts) {
	repository := &memoryAccounts{users: map[string]*auth.User{
		"u1": {ID: "u1", Username: "ada", DisplayName: "Ada", IsReading: "B1", Role: sec.RoleMember},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := fetch.NewAccessor[*auth.User](fetch.NewMemoryStore(), fetch.DefaultPolicy(), logger)
	return account.NewService(repository, users, logger), repository
}

func TestGetProfile_Cached(t *testing.T) {
	ctx := context.Background()
	service, repository := newService()

	for range 3 {
		user, err := service.GetProfile(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "B1", user.IsReading)
	}
	assert.Equal(t, 1, repository.finds)

	require.NoError(t, service.InvalidateUser(ctx, "u1"))
	_, err := service.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, repository.finds)
}

func TestGetProfile_Missing(t *testing.T) {
	service, repository := newService()

	_, err := service.GetProfile(context.Background(), "nobody")
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, 1, repository.finds, "a not-found answer is not retried")

	_, err = service.GetProfile(context.Background(), "")
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, 1, repository.finds, "an empty id never reaches the store")
}

func TestReadingPointer_FollowsInvalidation(t *testing.T) {
	ctx := context.Background()
	service, repository := newService()

	pointer, err := service.ReadingPointer(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "B1", pointer)

	repository.users["u1"].IsReading = ""

	// Cached until invalidated.
	pointer, err = service.ReadingPointer(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "B1", pointer)

	require.NoError(t, service.InvalidateUser(ctx, "u1"))
	pointer, err = service.ReadingPointer(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "", pointer)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	_, err := service.GetProfile(ctx, "u1")
	require.NoError(t, err)

	name := " Ada L. "
	updated, err := service.UpdateProfile(ctx, "u1", account.UpdateProfileInput{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.DisplayName)

	profile, err := service.PublicProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, &account.PublicProfile{ID: "u1", Username: "ada", DisplayName: "Ada L."}, profile)
}

func TestHandler(t *testing.T) {
	service, _ := newService()
	router := account.NewHandler(service).Routes()

	t.Run("me_requires_auth", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("me", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/me", nil)
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "u1"}))

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data auth.User `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "B1", envelope.Data.IsReading)
	})

	t.Run("patch_rejects_bad_avatar", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPatch, "/me", strings.NewReader(`{"avatar_url":"not a url"}`))
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "u1"}))

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("public_profile_missing", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/users/nobody", nil))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
