// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sessions_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readmate/internal/sessions"
)

func TestSweeper_RunOnce(t *testing.T) {
	store := newMemorySessions()
	now := time.Now()
	store.sessions["ancient"] = &sessions.Session{ID: "ancient", EndAt: now.Add(-48 * time.Hour)}
	store.sessions["recent"] = &sessions.Session{ID: "recent", EndAt: now.Add(-time.Hour)}

	sweeper := sessions.NewSweeper(store, "@hourly", 24*time.Hour, discard())

	removed, err := sweeper.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), removed)
	assert.Contains(t, store.sessions, "recent")
	assert.NotContains(t, store.sessions, "ancient")
	assert.WithinDuration(t, now.Add(-24*time.Hour), store.cutoff, 5*time.Second)
}

func TestSweeper_StartStop(t *testing.T) {
	sweeper := sessions.NewSweeper(newMemorySessions(), "*/5 * * * *", time.Hour, discard())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, sweeper.Start(ctx))
	require.NoError(t, sweeper.Start(ctx), "starting twice is a no-op")

	sweeper.Stop()
	sweeper.Stop()
}

func TestSweeper_InvalidSchedule(t *testing.T) {
	sweeper := sessions.NewSweeper(newMemorySessions(), "every tuesday", time.Hour, discard())

	err := sweeper.Start(context.Background())
	assert.Error(t, err)
}
