// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration brings the Readmate schemas (users, core, library, social)
// up to date before the API starts serving.
//
// Migrations are read from the files embedded in the binary unless a directory
// on disk is configured, which is convenient while authoring new versions.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taibuivan/readmate/data"
)

// RunUp applies every pending up migration. An empty dir selects the embedded set.
func RunUp(dsn, dir string, logger *slog.Logger) error {
	migrator, err := open(dsn, dir)
	if err != nil {
		return fmt.Errorf("migration_open_failed: %w", err)
	}
	defer func() {
		srcErr, dbErr := migrator.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()
	migrator.Log = slogBridge{logger: logger}

	from, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		from = 0
	case err != nil:
		return fmt.Errorf("migration_version_failed: %w", err)
	case dirty:
		return fmt.Errorf("migration: schema is dirty at version %d, fix it by hand and force the version", from)
	}

	err = migrator.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration_up_failed: %w", err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_applied", slog.Uint64("from", uint64(from)), slog.Uint64("to", uint64(to)))
	return nil
}

func open(dsn, dir string) (*migrate.Migrate, error) {
	databaseURL := pgx5URL(dsn)
	if dir != "" {
		return migrate.New("file://"+dir, databaseURL)
	}

	source, err := iofs.New(data.Migrations, "migrations")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", source, databaseURL)
}

// pgx5URL rewrites a postgres URL to the scheme the pgx/v5 migrate driver registers.
func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

type slogBridge struct {
	logger *slog.Logger
}

func (b slogBridge) Printf(format string, args ...any) {
	b.logger.Debug("migration_step", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (b slogBridge) Verbose() bool { return false }
