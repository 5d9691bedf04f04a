// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/readmate/internal/books"
	"github.com/taibuivan/readmate/internal/fetch"
	"github.com/taibuivan/readmate/internal/library"
	"github.com/taibuivan/readmate/internal/platform/apperr"
)

// memoryStore is an in-memory [library.Repository] and [library.UserDirectory]
// that records the order of writes.
type memoryStore struct {
	mu sync.Mutex

	pointers map[string]string
	entries  map[string][]*library.Entry

	ops             []string
	listCalls       int
	pointerAtDelete map[string]string
	invalidatedUser int

	failDelete error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		pointers:        make(map[string]string),
		entries:         make(map[string][]*library.Entry),
		pointerAtDelete: make(map[string]string),
	}
}

func (m *memoryStore) seed(userID, pointer string, bookIDs ...string) {
	m.pointers[userID] = pointer
	for i, bookID := range bookIDs {
		m.entries[userID] = append(m.entries[userID], &library.Entry{
			UserID:       userID,
			BookID:       bookID,
			AddedAt:      time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC),
			AutoProgress: true,
		})
	}
}

func (m *memoryStore) find(userID, bookID string) (*library.Entry, int) {
	for i, entry := range m.entries[userID] {
		if entry.BookID == bookID {
			return entry, i
		}
	}
	return nil, -1
}

func (m *memoryStore) ListByUser(_ context.Context, userID string) ([]*library.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++

	list := make([]*library.Entry, 0, len(m.entries[userID]))
	for _, entry := range m.entries[userID] {
		clone := *entry
		list = append(list, &clone)
	}
	return list, nil
}

func (m *memoryStore) Get(_ context.Context, userID, bookID string) (*library.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, _ := m.find(userID, bookID)
	if entry == nil {
		return nil, apperr.NotFound("Reading list entry")
	}
	clone := *entry
	return &clone, nil
}

func (m *memoryStore) Add(_ context.Context, userID, bookID string) (*library.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "add")
	if entry, _ := m.find(userID, bookID); entry != nil {
		return nil, apperr.Conflict("Reading list entry already exists")
	}
	entry := &library.Entry{UserID: userID, BookID: bookID, AddedAt: time.Now(), AutoProgress: true}
	m.entries[userID] = append(m.entries[userID], entry)
	clone := *entry
	return &clone, nil
}

func (m *memoryStore) Delete(_ context.Context, userID, bookID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "delete")
	m.pointerAtDelete[bookID] = m.pointers[userID]

	if m.failDelete != nil {
		return m.failDelete
	}
	_, idx := m.find(userID, bookID)
	if idx < 0 {
		return apperr.NotFound("Reading list entry")
	}
	m.entries[userID] = append(m.entries[userID][:idx], m.entries[userID][idx+1:]...)
	return nil
}

func (m *memoryStore) update(userID, bookID, op string, apply func(*library.Entry)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
	entry, _ := m.find(userID, bookID)
	if entry == nil {
		return apperr.NotFound("Reading list entry")
	}
	apply(entry)
	return nil
}

func (m *memoryStore) SetManualProgress(_ context.Context, userID, bookID string, ratio float64) error {
	return m.update(userID, bookID, "manual_progress", func(entry *library.Entry) { entry.ManualProgress = ratio })
}

func (m *memoryStore) SetAutoProgress(_ context.Context, userID, bookID string, enabled bool) error {
	return m.update(userID, bookID, "auto_progress", func(entry *library.Entry) { entry.AutoProgress = enabled })
}

func (m *memoryStore) AddReadTime(_ context.Context, userID, bookID string, minutes float64) error {
	return m.update(userID, bookID, "read_time", func(entry *library.Entry) { entry.TotalReadTime += minutes })
}

func (m *memoryStore) SetReadingPointer(_ context.Context, userID, bookID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "set_pointer")
	m.pointers[userID] = bookID
	return nil
}

func (m *memoryStore) ClearReadingPointerIf(_ context.Context, userID, bookID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "clear_pointer")
	if m.pointers[userID] != bookID {
		return false, nil
	}
	m.pointers[userID] = ""
	return true, nil
}

// UserDirectory

func (m *memoryStore) ReadingPointer(_ context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pointers[userID], nil
}

func (m *memoryStore) InvalidateUser(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidatedUser++
	return nil
}

func (m *memoryStore) pointer(userID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pointers[userID]
}

func (m *memoryStore) writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ops...)
}

// catalog is a fixed [library.BookCatalog].
type catalog map[string]*books.Book

func (c catalog) GetMany(_ context.Context, ids []string) (map[string]*books.Book, error) {
	found := make(map[string]*books.Book)
	for _, id := range ids {
		if book, ok := c[id]; ok {
			found[id] = book
		}
	}
	return found, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(store *memoryStore, catalogue catalog) *library.Service {
	lists := fetch.NewAccessor[[]*library.Entry](fetch.NewMemoryStore(), fetch.Policy{MaxAttempts: 2}, discardLogger())
	return library.NewService(store, catalogue, store, lists, discardLogger())
}
