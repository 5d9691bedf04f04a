// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned for a card index outside the synced list.
	ErrIndexOutOfRange = errors.New("selection: index out of range")

	// ErrNotSelected is returned when an overlay is committed for a card that is not selected.
	ErrNotSelected = errors.New("selection: card is not selected")
)

// Selection tracks which card of a rendered list has its confirmation overlay
// open. At most one card is selected at a time.
//
// A Selection is not safe for concurrent use.
type Selection struct {
	ref   string
	marks []bool
}

// Sync resets every mark to false when the list reference or length differs
// from the last call. It reports whether a reset happened.
func (s *Selection) Sync(ref string, n int) bool {
	if s.marks != nil && s.ref == ref && len(s.marks) == n {
		return false
	}
	s.ref = ref
	s.marks = make([]bool, n)
	return true
}

// Toggle selects idx, clearing every other mark first, or clears idx when on is false.
func (s *Selection) Toggle(idx int, on bool) error {
	if idx < 0 || idx >= len(s.marks) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx, len(s.marks))
	}

	if on {
		clear(s.marks)
	}
	s.marks[idx] = on
	return nil
}

// Selected returns the selected index, if any.
func (s *Selection) Selected() (int, bool) {
	for i, marked := range s.marks {
		if marked {
			return i, true
		}
	}
	return -1, false
}

// Marks returns a copy of the selection vector.
func (s *Selection) Marks() []bool {
	return append([]bool(nil), s.marks...)
}

// Len returns the number of cards being tracked.
func (s *Selection) Len() int {
	return len(s.marks)
}

// Overlay is the confirmation step in front of a list mutation.
type Overlay struct {
	selection *Selection
}

// NewOverlay binds an overlay to selection.
func NewOverlay(selection *Selection) *Overlay {
	return &Overlay{selection: selection}
}

// Cancel closes the overlay of idx without mutating anything.
func (o *Overlay) Cancel(idx int) error {
	return o.selection.Toggle(idx, false)
}

/*
Commit runs op for the selected card idx and closes the overlay once op returns.

If op fails the card stays selected and the error is returned unchanged, so the
caller still shows the last known state.
*/
func (o *Overlay) Commit(ctx context.Context, idx int, op func(ctx context.Context) error) error {
	selected, ok := o.selection.Selected()
	if !ok || selected != idx {
		return ErrNotSelected
	}

	if err := op(ctx); err != nil {
		return err
	}

	return o.selection.Toggle(idx, false)
}
