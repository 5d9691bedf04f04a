// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import "slices"

// # Reading Model

const (
	// readingSpeed is the assumed reading speed in words per minute.
	readingSpeed = 400

	// wordsPerPage is the assumed density of a printed page.
	wordsPerPage = 600
)

// ManualSteps are the only ratios a reader can pick for manual progress.
var ManualSteps = []float64{0, 0.2, 0.4, 0.7, 1}

// IsManualStep reports whether ratio is one of [ManualSteps].
func IsManualStep(ratio float64) bool {
	return slices.Contains(ManualSteps, ratio)
}

// Auto estimates the completion ratio from accumulated reading minutes.
//
// The result is not clamped: a reader who spent more time than the estimate
// needs gets a ratio above 1. ok is false when pageCount is unknown.
func Auto(totalReadTime float64, pageCount int) (ratio float64, ok bool) {
	if pageCount <= 0 {
		return 0, false
	}
	return totalReadTime * readingSpeed / wordsPerPage / float64(pageCount), true
}

// RemainingMinutes estimates how long it takes to finish the book.
// ok is false when pageCount is unknown.
func RemainingMinutes(totalReadTime float64, pageCount int) (minutes float64, ok bool) {
	if pageCount <= 0 {
		return 0, false
	}
	remaining := float64(pageCount)*wordsPerPage/readingSpeed - totalReadTime
	return max(remaining, 0), true
}

// # Resolved Progress

// Mode tells which source a [Progress] value came from.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// Progress is the completion value shown for one entry.
type Progress struct {
	Mode       Mode    `json:"mode"`
	Ratio      float64 `json:"ratio"`
	Measurable bool    `json:"measurable"`
}

// Resolve picks the authoritative progress for entry: the stored manual value
// when auto progress is off, the read-time estimate otherwise.
func Resolve(entry Entry, pageCount int) Progress {
	if !entry.AutoProgress {
		return Progress{Mode: ModeManual, Ratio: entry.ManualProgress, Measurable: true}
	}

	ratio, ok := Auto(entry.TotalReadTime, pageCount)
	return Progress{Mode: ModeAuto, Ratio: ratio, Measurable: ok}
}

// Display returns the ratio clamped to [0,1] for rendering. fullyRead is set
// for any ratio of 1 or more. An unmeasurable progress displays as (0, false).
func (p Progress) Display() (ratio float64, fullyRead bool) {
	if !p.Measurable {
		return 0, false
	}
	if p.Ratio >= 1 {
		return 1, true
	}
	return max(p.Ratio, 0), false
}
