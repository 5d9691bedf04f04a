// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api mounts the Readmate domain handlers behind one middleware chain
and runs them as an [http.Server].

Route layout:

  - /health and /ready: probes, no authentication.
  - /api/v1/auth, /books, /sessions, /locales: one handler set each.
  - /api/v1/me/list and /me/reading: the caller's reading list.
  - /api/v1/me and /users/{id}: profiles, mounted last at "/".
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/readmate/internal/books"
	"github.com/taibuivan/readmate/internal/library"
	"github.com/taibuivan/readmate/internal/locale"
	"github.com/taibuivan/readmate/internal/platform/config"
	"github.com/taibuivan/readmate/internal/platform/constants"
	"github.com/taibuivan/readmate/internal/platform/middleware"
	"github.com/taibuivan/readmate/internal/sessions"
	"github.com/taibuivan/readmate/internal/users/account"
	"github.com/taibuivan/readmate/internal/users/auth"
)

// Server owns the router and the listening [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers is everything [NewServer] mounts. Liveness answers while the process
// runs; Readiness only when the backing stores answer.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth     *auth.Handler
	Account  *account.Handler
	Books    *books.Handler
	Library  *library.Handler
	Sessions *sessions.Handler
	Locale   *locale.Handler
}

// NewServer builds the router. ctx bounds background middleware work such as
// rate-limit bucket eviction.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// Authenticate runs before RateLimit so buckets are keyed per user.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// Specific prefixes first; the account routes own the "/" catch-all.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/books", h.Books.Routes())
		api.Mount("/sessions", h.Sessions.Routes())
		api.Mount("/locales", h.Locale.Routes())
		api.Mount("/me/list", h.Library.Routes())
		api.Mount("/me/reading", h.Library.ReadingRoutes())
		api.Mount("/", h.Account.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving HTTP until the server is shut down.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_listening", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits up to timeout for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
