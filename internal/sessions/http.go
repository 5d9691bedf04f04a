// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sessions

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readmate/internal/platform/middleware"
	requestutil "github.com/taibuivan/readmate/internal/platform/request"
	"github.com/taibuivan/readmate/internal/platform/respond"
	"github.com/taibuivan/readmate/internal/platform/validate"
)

// Handler serves /sessions for the authenticated caller.
type Handler struct {
	service *Service
}

// NewHandler wraps service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the session router.
//
//	GET  /                   caller's sessions, partitioned by time
//	POST /                   schedule a session
//	GET  /{id}               one session
//	GET  /{id}/participants  call tiles, owner first
//	PUT  /{id}/book          owner picks the planned book
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", h.act(h.listSessions))
	router.Post("/", h.act(h.createSession))
	router.Get("/{id}", h.act(h.getSession))
	router.Get("/{id}/participants", h.act(h.participants))
	router.Put("/{id}/book", h.act(h.selectBook))

	return router
}

// action returns the success status and payload for the caller, or an error.
type action func(r *http.Request, userID string) (int, any, error)

func (h *Handler) act(fn action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestutil.RequiredUserID(r)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		status, payload, err := fn(r, userID)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.Status(w, status, payload)
	}
}

func (h *Handler) listSessions(r *http.Request, userID string) (int, any, error) {
	partitioned, err := h.service.ListForUser(r.Context(), userID)
	return http.StatusOK, partitioned, err
}

type createSessionRequest struct {
	GuestID         string    `json:"guest_id"`
	StartAt         time.Time `json:"start_at"`
	DurationMinutes int       `json:"duration_minutes"`
	OwnerBookID     string    `json:"owner_book_id"`
}

func (in createSessionRequest) validate(now time.Time) error {
	v := &validate.Validator{}
	if v.Required("guest_id", in.GuestID); in.GuestID != "" {
		v.UUID("guest_id", in.GuestID)
	}
	v.Future("start_at", in.StartAt, now)
	v.Range("duration_minutes", in.DurationMinutes, 1, MaxDurationMinutes)
	return v.Err()
}

// createSession answers 201, 400 for a past start or bad duration, 404 for an
// unknown guest.
func (h *Handler) createSession(r *http.Request, userID string) (int, any, error) {
	var in createSessionRequest
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		return 0, nil, err
	}
	if err := in.validate(h.service.now()); err != nil {
		return 0, nil, err
	}

	session, err := h.service.Create(r.Context(), CreateInput{
		OwnerID:         userID,
		GuestID:         in.GuestID,
		StartAt:         in.StartAt,
		DurationMinutes: in.DurationMinutes,
		OwnerBookID:     in.OwnerBookID,
	})
	return http.StatusCreated, session, err
}

func (h *Handler) getSession(r *http.Request, userID string) (int, any, error) {
	session, err := h.service.Get(r.Context(), requestutil.Param(r, "id"), userID)
	return http.StatusOK, session, err
}

// participants answers 404 when the caller is not part of the session.
func (h *Handler) participants(r *http.Request, userID string) (int, any, error) {
	tiles, err := h.service.Participants(r.Context(), requestutil.Param(r, "id"), userID)
	return http.StatusOK, tiles, err
}

type selectBookRequest struct {
	BookID string `json:"book_id"`
}

func (h *Handler) selectBook(r *http.Request, userID string) (int, any, error) {
	var in selectBookRequest
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		return 0, nil, err
	}

	session, err := h.service.SelectBook(r.Context(), SelectBookInput{
		SessionID: requestutil.Param(r, "id"),
		UserID:    userID,
		BookID:    in.BookID,
	})
	return http.StatusOK, session, err
}
