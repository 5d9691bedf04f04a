// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond writes the JSON envelopes shared by the API and the shelf
// client. [SuccessEnvelope] and [ErrorEnvelope] are the wire contract between
// the two binaries.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/ctxutil"
	"github.com/taibuivan/readmate/pkg/pagination"
)

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON encodes payload with status. Encoding errors are dropped; the header is
// already on the wire by then.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func OK(w http.ResponseWriter, data any)      { Status(w, http.StatusOK, data) }
func Created(w http.ResponseWriter, data any) { Status(w, http.StatusCreated, data) }

// Status wraps data in a [SuccessEnvelope].
func Status(w http.ResponseWriter, status int, data any) {
	JSON(w, status, SuccessEnvelope{Data: data})
}

func Paginated(w http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(w, http.StatusOK, PaginatedEnvelope{Data: data, Meta: meta})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error renders err as an [ErrorEnvelope]. Anything that is not an
// [apperr.AppError] becomes a 500 with a generic message; 5xx causes are logged
// and never sent.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.As(err)
	if appErr == nil {
		appErr = apperr.Internal(err)
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		ctx := r.Context()
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "request_failed",
			slog.String("code", appErr.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appErr.Cause),
		)
	}

	JSON(w, appErr.HTTPStatus, ErrorEnvelope{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}
