// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readmate/internal/platform/middleware"
	requestutil "github.com/taibuivan/readmate/internal/platform/request"
	"github.com/taibuivan/readmate/internal/platform/respond"
	"github.com/taibuivan/readmate/internal/platform/validate"
)

// Handler serves the authenticated caller's reading list and reading pointer.
type Handler struct {
	service *Service
}

// NewHandler wraps service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /me/list router.
//
//	GET    /                         shelf
//	POST   /                         add {book_id}
//	DELETE /{bookID}                 remove, clearing the reading pointer first
//	PUT    /{bookID}/progress        manual ratio {ratio}
//	POST   /{bookID}/auto-progress   enable auto progress
//	DELETE /{bookID}/auto-progress   disable auto progress
//	POST   /{bookID}/reading-time    add {minutes}
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", h.caller(h.getShelf))
	router.Post("/", h.caller(h.addToList))

	router.Route("/{bookID}", func(entry chi.Router) {
		entry.Delete("/", h.caller(h.removeFromList))
		entry.Put("/progress", h.caller(h.setManualProgress))
		entry.Post("/auto-progress", h.caller(h.enableAutoProgress))
		entry.Delete("/auto-progress", h.caller(h.disableAutoProgress))
		entry.Post("/reading-time", h.caller(h.recordReading))
	})

	return router
}

// ReadingRoutes returns the /me/reading router: PUT / moves the pointer.
func (h *Handler) ReadingRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Put("/", h.caller(h.setReadingPointer))
	return router
}

// entryHandler answers for ref; a returned error is rendered as an envelope.
type entryHandler func(w http.ResponseWriter, r *http.Request, ref EntryRef) error

// caller resolves the authenticated user and the optional {bookID} segment.
func (h *Handler) caller(next entryHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requestutil.RequiredUserID(r)
		if err == nil {
			err = next(w, r, EntryRef{UserID: userID, BookID: requestutil.Param(r, "bookID")})
		}
		if err != nil {
			respond.Error(w, r, err)
		}
	}
}

func (h *Handler) getShelf(w http.ResponseWriter, r *http.Request, ref EntryRef) error {
	shelf, err := h.service.Shelf(r.Context(), ref.UserID)
	if err != nil {
		return err
	}
	respond.OK(w, shelf)
	return nil
}

type bookRequest struct {
	BookID string `json:"book_id"`
}

// addToList answers 201 Entry, 404 for an unknown book, 409 when already listed.
func (h *Handler) addToList(w http.ResponseWriter, r *http.Request, ref EntryRef) error {
	var in bookRequest
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		return err
	}
	if err := (&validate.Validator{}).Required("book_id", in.BookID).Err(); err != nil {
		return err
	}

	ref.BookID = in.BookID
	entry, err := h.service.AddToList(r.Context(), ref)
	if err != nil {
		return err
	}
	respond.Created(w, entry)
	return nil
}

// removeFromList answers 200 RemoveResult, 404 when the book is not listed.
func (h *Handler) removeFromList(w http.ResponseWriter, r *http.Request, ref EntryRef) error {
	result, err := h.service.RemoveFromList(r.Context(), ref)
	if err != nil {
		return err
	}
	respond.OK(w, result)
	return nil
}

type progressRequest struct {
	Ratio *float64 `json:"ratio"`
}

// setManualProgress answers 204, or 400 when ratio is missing or off-step.
func (h *Handler) setManualProgress(w http.ResponseWriter, r *http.Request, ref EntryRef) error {
	var in progressRequest
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		return err
	}

	v := &validate.Validator{}
	v.Custom("ratio", in.Ratio == nil, "This field is required")
	if in.Ratio != nil {
		v.OneOfFloat("ratio", *in.Ratio, ManualSteps...)
	}
	if err := v.Err(); err != nil {
		return err
	}

	err := h.service.SetManualProgress(r.Context(), ManualProgressRequest{UserID: ref.UserID, BookID: ref.BookID, Ratio: *in.Ratio})
	if err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}

func (h *Handler) enableAutoProgress(w http.ResponseWriter, r *http.Request, ref EntryRef) error {
	if err := h.service.EnableAutoProgress(r.Context(), ref); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}

func (h *Handler) disableAutoProgress(w http.ResponseWriter, r *http.Request, ref EntryRef) error {
	if err := h.service.DisableAutoProgress(r.Context(), ref); err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}

type readingTimeRequest struct {
	Minutes float64 `json:"minutes"`
}

func (h *Handler) recordReading(w http.ResponseWriter, r *http.Request, ref EntryRef) error {
	var in readingTimeRequest
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		return err
	}

	err := h.service.RecordReading(r.Context(), ReadingTimeRequest{UserID: ref.UserID, BookID: ref.BookID, Minutes: in.Minutes})
	if err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}

// setReadingPointer takes {"book_id": ...}; an empty id clears the pointer.
// It answers 204, or 404 when the book is not on the caller's list.
func (h *Handler) setReadingPointer(w http.ResponseWriter, r *http.Request, ref EntryRef) error {
	var in bookRequest
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		return err
	}

	err := h.service.SetReadingPointer(r.Context(), SetReadingPointerRequest{UserID: ref.UserID, BookID: in.BookID})
	if err != nil {
		return err
	}
	respond.NoContent(w)
	return nil
}
