// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package books

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readmate/internal/platform/middleware"
	requestutil "github.com/taibuivan/readmate/internal/platform/request"
	"github.com/taibuivan/readmate/internal/platform/respond"
	"github.com/taibuivan/readmate/internal/platform/sec"
	"github.com/taibuivan/readmate/internal/platform/validate"
	"github.com/taibuivan/readmate/pkg/pagination"
	"github.com/taibuivan/readmate/pkg/query"
)

// Handler implements the catalogue HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a catalogue [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the catalogue endpoints.
//
// # Endpoints
//   - GET  /      : Paginated catalogue, or the books named by ?ids=a,b
//   - GET  /{id}  : One book
//   - POST /      : Add a book (curators only)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)
	router.With(middleware.RequireRole(sec.RoleCurator)).Post("/", handler.createBook)

	return router
}

/*
GET /api/v1/books.

Response:
  - 200: []Book with pagination meta, or []Book for an ?ids= lookup
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	if ids := query.StringSlice(request.URL.Query().Get("ids")); len(ids) > 0 {
		found, err := handler.service.GetMany(request.Context(), ids)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		ordered := make([]*Book, 0, len(found))
		for _, id := range ids {
			if book, ok := found[id]; ok {
				ordered = append(ordered, book)
			}
		}
		respond.OK(writer, ordered)
		return
	}

	page := pagination.FromRequest(request)
	list, total, err := handler.service.List(request.Context(), page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

type createBookRequest struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	CoverURL  string   `json:"cover_url"`
	PageCount int      `json:"page_count"`
}

/*
POST /api/v1/books.

Response:
  - 201: Book
  - 400: Validation failure
  - 403: Caller is not a curator
*/
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input createBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("title", input.Title).
		MaxLen("title", input.Title, 300).
		Custom("authors", len(input.Authors) == 0, "At least one author is required").
		Custom("page_count", input.PageCount < 0, "Must not be negative")
	if input.CoverURL != "" {
		v.URL("cover_url", input.CoverURL)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Create(request.Context(), CreateInput{
		Title:     input.Title,
		Authors:   input.Authors,
		CoverURL:  input.CoverURL,
		PageCount: input.PageCount,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, book)
}
