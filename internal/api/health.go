// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/readmate/internal/platform/constants"
	"github.com/taibuivan/readmate/internal/platform/respond"
)

// readinessCheckTimeout bounds each dependency ping.
const readinessCheckTimeout = 2 * time.Second

// HealthDependencies holds the dependency checkers behind /ready. A nil
// checker is skipped.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL document store.
	CheckDatabase func(ctx context.Context) error

	// CheckCache pings the Redis read cache.
	CheckCache func(ctx context.Context) error
}

type checkResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthReport struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Checks  []checkResult `json:"checks,omitempty"`
}

type healthHandler struct {
	checks []namedCheck
	logger *slog.Logger
}

type namedCheck struct {
	name  string
	check func(ctx context.Context) error
}

// NewHealthHandlers creates the /health and /ready handlers.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{logger: logger}
	if deps.CheckDatabase != nil {
		handler.checks = append(handler.checks, namedCheck{"postgres", deps.CheckDatabase})
	}
	if deps.CheckCache != nil {
		handler.checks = append(handler.checks, namedCheck{"redis", deps.CheckCache})
	}
	return handler.liveness, handler.readiness
}

// liveness answers 200 while the process can serve HTTP at all.
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, healthReport{Status: "ok", Version: constants.AppVersion})
}

// readiness answers 503 with the failing checks when a dependency is down.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	report := healthReport{Status: "ready", Checks: make([]checkResult, 0, len(handler.checks))}
	status := http.StatusOK

	for _, dependency := range handler.checks {
		ctx, cancel := context.WithTimeout(request.Context(), readinessCheckTimeout)
		err := dependency.check(ctx)
		cancel()

		result := checkResult{Name: dependency.name, OK: err == nil}
		if err != nil {
			result.Error = err.Error()
			report.Status = "degraded"
			status = http.StatusServiceUnavailable
			handler.logger.ErrorContext(request.Context(), "readiness_check_failed",
				slog.String("dependency", dependency.name),
				slog.Any("error", err),
			)
		}
		report.Checks = append(report.Checks, result)
	}

	respond.Status(writer, status, report)
}
