// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"

	"github.com/taibuivan/readmate/internal/books"
)

// EntryRepository persists reading-list entries.
type EntryRepository interface {
	// ListByUser returns the entries of userID ordered by addition time.
	ListByUser(ctx context.Context, userID string) ([]*Entry, error)

	// Get returns one entry or apperr.NotFound.
	Get(ctx context.Context, userID, bookID string) (*Entry, error)

	// Add creates an entry with auto progress enabled.
	Add(ctx context.Context, userID, bookID string) (*Entry, error)

	// Delete removes an entry. A missing entry is apperr.NotFound.
	Delete(ctx context.Context, userID, bookID string) error

	// SetManualProgress writes the manual ratio and nothing else.
	SetManualProgress(ctx context.Context, userID, bookID string, ratio float64) error

	// SetAutoProgress writes the auto progress flag and nothing else.
	SetAutoProgress(ctx context.Context, userID, bookID string, enabled bool) error

	// AddReadTime adds minutes to the accumulated read time.
	AddReadTime(ctx context.Context, userID, bookID string, minutes float64) error
}

// PointerRepository persists the reading pointer of a user.
type PointerRepository interface {
	// SetReadingPointer stores bookID ("" for none) as the user's active book.
	SetReadingPointer(ctx context.Context, userID, bookID string) error

	// ClearReadingPointerIf empties the pointer only while it still equals bookID,
	// and reports whether it did.
	ClearReadingPointerIf(ctx context.Context, userID, bookID string) (bool, error)
}

// Repository is the full storage surface of the library service.
type Repository interface {
	EntryRepository
	PointerRepository
}

// BookCatalog resolves catalogue records for shelf cards.
type BookCatalog interface {
	GetMany(ctx context.Context, ids []string) (map[string]*books.Book, error)
}

// UserDirectory reads and invalidates the cached user record that carries the
// reading pointer.
type UserDirectory interface {
	ReadingPointer(ctx context.Context, userID string) (string, error)
	InvalidateUser(ctx context.Context, userID string) error
}
