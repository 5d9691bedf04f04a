// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/readmate/internal/library"
)

func TestAuto(t *testing.T) {
	tests := []struct {
		name      string
		readTime  float64
		pageCount int
		ratio     float64
		ok        bool
	}{
		{"unknown_pages", 120, 0, 0, false},
		{"negative_pages", 120, -3, 0, false},
		{"nothing_read", 0, 300, 0, true},
		{"finished", 600, 400, 1.0, true},
		{"half", 300, 400, 0.5, true},
		{"overshoot_not_clamped", 1200, 400, 2.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio, ok := library.Auto(tt.readTime, tt.pageCount)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ratio, ratio)
		})
	}
}

func TestIsManualStep(t *testing.T) {
	for _, step := range []float64{0, 0.2, 0.4, 0.7, 1} {
		assert.True(t, library.IsManualStep(step), "%v", step)
	}
	for _, ratio := range []float64{0.1, 0.5, 0.69, 1.01, -1} {
		assert.False(t, library.IsManualStep(ratio), "%v", ratio)
	}
}

func TestResolve(t *testing.T) {
	t.Run("manual_wins_when_auto_off", func(t *testing.T) {
		entry := library.Entry{AutoProgress: false, ManualProgress: 0.4, TotalReadTime: 600}
		assert.Equal(t, library.Progress{Mode: library.ModeManual, Ratio: 0.4, Measurable: true}, library.Resolve(entry, 400))
	})

	t.Run("manual_ignored_when_auto_on", func(t *testing.T) {
		entry := library.Entry{AutoProgress: true, ManualProgress: 0.4, TotalReadTime: 300}
		assert.Equal(t, library.Progress{Mode: library.ModeAuto, Ratio: 0.5, Measurable: true}, library.Resolve(entry, 400))
	})

	t.Run("auto_unmeasurable", func(t *testing.T) {
		entry := library.Entry{AutoProgress: true, TotalReadTime: 300}
		assert.False(t, library.Resolve(entry, 0).Measurable)
	})
}

func TestProgress_Display(t *testing.T) {
	tests := []struct {
		name      string
		progress  library.Progress
		ratio     float64
		fullyRead bool
	}{
		{"unmeasurable", library.Progress{Mode: library.ModeAuto}, 0, false},
		{"partial", library.Progress{Ratio: 0.4, Measurable: true}, 0.4, false},
		{"exactly_done", library.Progress{Ratio: 1, Measurable: true}, 1, true},
		{"overshoot", library.Progress{Ratio: 1.7, Measurable: true}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio, fullyRead := tt.progress.Display()
			assert.Equal(t, tt.ratio, ratio)
			assert.Equal(t, tt.fullyRead, fullyRead)
		})
	}
}

func TestRemainingMinutes(t *testing.T) {
	minutes, ok := library.RemainingMinutes(300, 400)
	assert.True(t, ok)
	assert.Equal(t, 300.0, minutes)

	minutes, ok = library.RemainingMinutes(900, 400)
	assert.True(t, ok)
	assert.Zero(t, minutes)

	_, ok = library.RemainingMinutes(10, 0)
	assert.False(t, ok)
}
