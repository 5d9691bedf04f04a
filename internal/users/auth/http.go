// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/readmate/internal/platform/request"
	"github.com/taibuivan/readmate/internal/platform/respond"
	"github.com/taibuivan/readmate/internal/platform/validate"
)

// Handler serves /auth. Both routes are public.
type Handler struct {
	service *Service
}

// NewHandler wraps service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts POST /register and POST /login.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/register", h.register)
	router.Post("/login", h.login)
	return router
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (in registerRequest) validate() error {
	v := &validate.Validator{}
	v.Required(FieldUsername, in.Username).MinLen(FieldUsername, in.Username, 3).MaxLen(FieldUsername, in.Username, 32)
	v.Required(FieldEmail, in.Email).Email(FieldEmail, in.Email)
	v.Required(FieldPassword, in.Password).MinLen(FieldPassword, in.Password, MinPasswordLength)
	v.MaxLen(FieldDisplayName, in.DisplayName, 64)
	return v.Err()
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (in loginRequest) validate() error {
	v := &validate.Validator{}
	v.Required(FieldLogin, in.Login).Required(FieldPassword, in.Password)
	return v.Err()
}

// loginResponse is decoded by the shelf client as client.LoginResult.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        *User  `json:"user"`
}

// POST /api/v1/auth/register -> 201 User, 400 validation, 409 taken.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := in.validate(); err != nil {
		respond.Error(w, r, err)
		return
	}

	user, err := h.service.Register(r.Context(), RegisterInput(in))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Created(w, user)
}

// POST /api/v1/auth/login -> 200 token, 401 bad credentials, 429 locked out.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := in.validate(); err != nil {
		respond.Error(w, r, err)
		return
	}

	session, err := h.service.Login(r.Context(), LoginInput(in))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, loginResponse{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(session.ExpiresIn / time.Second),
		User:        session.User,
	})
}
