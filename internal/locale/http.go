// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readmate/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes exposes GET / (supported languages) and GET /{section}?lang=.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listLanguages)
	router.Get("/{section}", handler.lookup)
	return router
}

func (handler *Handler) listLanguages(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Languages())
}

// The lang query parameter wins over the Accept-Language header.
func (handler *Handler) lookup(writer http.ResponseWriter, request *http.Request) {
	section := chi.URLParam(request, "section")

	strings, err := handler.service.Lookup(section,
		request.URL.Query().Get("lang"),
		request.Header.Get("Accept-Language"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Language", strings.Language)
	respond.OK(writer, strings)
}
