// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readmate/internal/platform/middleware"
	requestutil "github.com/taibuivan/readmate/internal/platform/request"
	"github.com/taibuivan/readmate/internal/platform/respond"
	"github.com/taibuivan/readmate/internal/platform/validate"
)

// Handler serves the caller's own account and public profiles.
type Handler struct {
	service *Service
}

// NewHandler wraps service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts /me (authenticated) and /users/{id} (public).
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireAuth).Route("/me", func(me chi.Router) {
		me.Get("/", h.self(h.getMe))
		me.Patch("/", h.self(h.updateMe))
		me.Delete("/", h.self(h.deleteMe))
	})
	router.Get("/users/{id}", h.getUserProfile)

	return router
}

// self resolves the authenticated caller before running next.
func (h *Handler) self(next func(w http.ResponseWriter, r *http.Request, userID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestutil.RequiredUserID(r)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		next(w, r, userID)
	}
}

// GET /api/v1/me returns the private profile, reading pointer included.
func (h *Handler) getMe(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, user)
}

type updateMeRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

func (in updateMeRequest) validate() error {
	v := &validate.Validator{}
	if name := in.DisplayName; name != nil {
		v.MinLen("display_name", *name, 2).MaxLen("display_name", *name, 50)
	}
	if avatar := in.AvatarURL; avatar != nil && *avatar != "" {
		v.URL("avatar_url", *avatar)
	}
	return v.Err()
}

// PATCH /api/v1/me changes display name and avatar. Absent fields are kept.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request, userID string) {
	var in updateMeRequest
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := in.validate(); err != nil {
		respond.Error(w, r, err)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, UpdateProfileInput(in))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, user)
}

// DELETE /api/v1/me soft-deletes the account.
func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request, userID string) {
	if err := h.service.DeleteAccount(r.Context(), userID); err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.NoContent(w)
}

// GET /api/v1/users/{id} returns the public profile used by call tiles.
func (h *Handler) getUserProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.PublicProfile(r.Context(), requestutil.Param(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, profile)
}
