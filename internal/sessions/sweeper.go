// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Purger deletes sessions that ended before a cutoff.
type Purger interface {
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper periodically removes sessions older than the retention period.
type Sweeper struct {
	purger    Purger
	schedule  string
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewSweeper creates a sweeper. schedule accepts five-field cron specs and
// descriptors such as "@hourly".
func NewSweeper(purger Purger, schedule string, retention time.Duration, logger *slog.Logger) *Sweeper {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

	return &Sweeper{
		purger:    purger,
		schedule:  schedule,
		retention: retention,
		logger:    logger,
		now:       time.Now,
		cron:      cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start registers the sweep job and starts the scheduler. It stops when ctx is done.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, func() { _, _ = s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Info("session_sweeper_started",
		slog.String("schedule", s.schedule),
		slog.Duration("retention", s.retention),
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running sweep to finish and halts the scheduler.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("session_sweeper_stopped")
}

// RunOnce deletes every session that ended more than the retention period ago.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)

	removed, err := s.purger.DeleteEndedBefore(ctx, cutoff)
	if err != nil {
		s.logger.ErrorContext(ctx, "session_sweep_failed", slog.Any("error", err))
		return 0, err
	}

	if removed > 0 {
		s.logger.InfoContext(ctx, "session_sweep_completed", slog.Int64("removed", removed), slog.Time("cutoff", cutoff))
	}
	return removed, nil
}
