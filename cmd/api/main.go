// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Readmate HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env).
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations (idempotent).
//  5. Wire read caches, services and HTTP handlers.
//  6. Start the session sweeper.
//  7. Serve until SIGINT/SIGTERM, then drain.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/readmate/internal/api"
	"github.com/taibuivan/readmate/internal/books"
	"github.com/taibuivan/readmate/internal/fetch"
	"github.com/taibuivan/readmate/internal/library"
	"github.com/taibuivan/readmate/internal/locale"
	"github.com/taibuivan/readmate/internal/platform/config"
	"github.com/taibuivan/readmate/internal/platform/constants"
	"github.com/taibuivan/readmate/internal/platform/migration"
	pgstore "github.com/taibuivan/readmate/internal/platform/postgres"
	redisstore "github.com/taibuivan/readmate/internal/platform/redis"
	"github.com/taibuivan/readmate/internal/platform/sec"
	"github.com/taibuivan/readmate/internal/sessions"
	"github.com/taibuivan/readmate/internal/users/account"
	"github.com/taibuivan/readmate/internal/users/auth"
)

// startupDeadline bounds connecting to the backing stores.
const startupDeadline = 30 * time.Second

func main() {
	// ── 1. Logger ─────────────────────────────────────────────────────────
	// The level is a variable so DEBUG=true can lower it after config loads.
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With(
		slog.String("app", constants.AppName),
		slog.String("version", constants.AppVersion),
	)
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		level.Set(slog.LevelDebug)
	}
	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Int("fetch_attempts", cfg.FetchAttempts),
	)

	// ── 3. Backing Stores ─────────────────────────────────────────────────
	startupCtx, startupCancel := context.WithTimeout(context.Background(), startupDeadline)
	defer startupCancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	dictionary, err := locale.Embedded()
	must(log, err, "load locale dictionary")

	app := wire(cfg, pool, rdb, tokens, dictionary, log)

	// ── 6. Background Jobs ────────────────────────────────────────────────
	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	must(log, app.sweeper.Start(jobsCtx), "start session sweeper")

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(jobsCtx, cfg, log, tokens, app.handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_failed", slog.Any("error", err))
	}

	// Stop scheduling sweeps before draining requests; a running sweep finishes.
	app.sweeper.Stop()

	log.Info("server_draining", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// application is everything main needs after wiring.
type application struct {
	handlers api.Handlers
	sweeper  *sessions.Sweeper
}

// wire builds the read caches, repositories, services and handlers.
func wire(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, tokens *sec.TokenService, dictionary *locale.Dictionary, log *slog.Logger) application {
	// Both accessors share one Redis namespace; their key paths never overlap.
	cache := fetch.NewRedisStore(rdb, constants.RedisPrefixFetch, cfg.CacheTTL)
	policy := fetch.Policy{MaxAttempts: cfg.FetchAttempts}
	userCache := fetch.NewAccessor[*auth.User](cache, policy, log)
	listCache := fetch.NewAccessor[[]*library.Entry](cache, policy, log)

	authService := auth.NewService(auth.NewUserRepository(pool), auth.NewLoginGuard(rdb), tokens, log)
	accountService := account.NewService(account.NewPostgresRepository(pool), userCache, log)
	bookService := books.NewService(books.NewPostgresRepository(pool), log)
	libraryService := library.NewService(library.NewPostgresRepository(pool), bookService, accountService, listCache, log)

	sessionRepository := sessions.NewPostgresRepository(pool)
	sessionService := sessions.NewService(sessionRepository, accountService, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	return application{
		handlers: api.Handlers{
			Liveness:  liveness,
			Readiness: readiness,
			Auth:      auth.NewHandler(authService),
			Account:   account.NewHandler(accountService),
			Books:     books.NewHandler(bookService),
			Library:   library.NewHandler(libraryService),
			Sessions:  sessions.NewHandler(sessionService),
			Locale:    locale.NewHandler(locale.NewService(dictionary, log)),
		},
		sweeper: sessions.NewSweeper(sessionRepository, cfg.SessionSweepSchedule, cfg.SessionRetention, log),
	}
}

// must logs a structured fatal error and exits. Startup wiring only.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed", slog.String("step", step), slog.Any("error", err))
		os.Exit(1)
	}
}
