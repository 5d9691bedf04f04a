// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library implements the reading-list model: a user's shelf of books,
the progress shown for each of them, and the single "currently reading" pointer.

Consistency:

  - The reading pointer is a weak reference to a book id. Removing the entry it
    points at clears the pointer first, and the delete is only issued once the
    clear has been acknowledged.
  - Cached shelves are never edited. Each successful write invalidates the keys
    it affects and the next read refetches.
  - A failed write is returned as-is. Nothing is retried or rolled back and the
    cache keeps its last known-good value.
*/
package library

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/taibuivan/readmate/internal/books"
)

// Entry is one book on a user's reading list.
type Entry struct {
	UserID         string    `json:"user_id"`
	BookID         string    `json:"book_id"`
	AddedAt        time.Time `json:"added_at"`
	TotalReadTime  float64   `json:"total_read_time"`
	AutoProgress   bool      `json:"auto_progress"`
	ManualProgress float64   `json:"manual_progress"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Card is an [Entry] joined with its catalogue record and resolved progress.
type Card struct {
	Entry
	Book      *books.Book `json:"book,omitempty"`
	Progress  Progress    `json:"progress"`
	IsReading bool        `json:"is_reading"`
}

// Shelf is the rendered reading list of one user.
type Shelf struct {
	UserID    string `json:"user_id"`
	IsReading string `json:"is_reading"`

	// Version changes whenever the set or order of books changes. Views that
	// keep per-card state reset it when the version moves.
	Version string `json:"version"`

	Cards []Card `json:"cards"`
}

// Active returns the card the reading pointer refers to.
func (s *Shelf) Active() (Card, bool) {
	for _, card := range s.Cards {
		if card.IsReading {
			return card, true
		}
	}
	return Card{}, false
}

// IndexOf returns the position of bookID on the shelf, or -1.
func (s *Shelf) IndexOf(bookID string) int {
	for i, card := range s.Cards {
		if card.BookID == bookID {
			return i
		}
	}
	return -1
}

// listVersion digests the ordered book ids of entries.
func listVersion(entries []*Entry) string {
	hash := sha256.New()
	for _, entry := range entries {
		hash.Write([]byte(entry.BookID))
		hash.Write([]byte{0})
	}
	return hex.EncodeToString(hash.Sum(nil)[:8])
}
