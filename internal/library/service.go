// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/readmate/internal/fetch"
	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/constants"
	"github.com/taibuivan/readmate/pkg/slice"
)

// # Requests

// EntryRef names one entry of one user's list.
type EntryRef struct {
	UserID string
	BookID string
}

// SetReadingPointerRequest moves the reading pointer. An empty BookID clears it.
type SetReadingPointerRequest struct {
	UserID string
	BookID string
}

// ManualProgressRequest writes a manual ratio, which must be one of [ManualSteps].
type ManualProgressRequest struct {
	UserID string
	BookID string
	Ratio  float64
}

// ReadingTimeRequest adds reading minutes to an entry.
type ReadingTimeRequest struct {
	UserID  string
	BookID  string
	Minutes float64
}

// RemoveResult reports what a removal touched besides the entry itself.
type RemoveResult struct {
	PointerCleared bool `json:"pointer_cleared"`
}

// # Service

// Service implements the reading-list use cases.
type Service struct {
	repository Repository
	catalog    BookCatalog
	users      UserDirectory
	lists      *fetch.Accessor[[]*Entry]
	logger     *slog.Logger
}

// NewService wires the library service. lists caches entry lists per user.
func NewService(repository Repository, catalog BookCatalog, users UserDirectory, lists *fetch.Accessor[[]*Entry], logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		catalog:    catalog,
		users:      users,
		lists:      lists,
		logger:     logger,
	}
}

// ListKey is the cache key of a user's entry list.
func ListKey(userID string) fetch.Key {
	return fetch.KeyFor("users", userID, "list")
}

/*
Shelf assembles the reading list of userID with catalogue data and progress.

An empty userID yields an empty shelf without touching the store.
*/
func (service *Service) Shelf(ctx context.Context, userID string) (*Shelf, error) {
	shelf := &Shelf{UserID: userID, Cards: []Card{}}

	entries, ok, err := service.lists.Get(ctx, ListKey(userID), func(ctx context.Context) ([]*Entry, error) {
		return service.repository.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("library_service_list_failed: %w", err)
	}
	if !ok {
		return shelf, nil
	}

	pointer, err := service.users.ReadingPointer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("library_service_pointer_failed: %w", err)
	}

	ids := slice.Map(entries, func(entry *Entry) string { return entry.BookID })

	catalog, err := service.catalog.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("library_service_catalog_failed: %w", err)
	}

	shelf.IsReading = pointer
	shelf.Version = listVersion(entries)

	for _, entry := range entries {
		card := Card{Entry: *entry, IsReading: pointer != "" && entry.BookID == pointer}

		pageCount := 0
		if book, found := catalog[entry.BookID]; found {
			card.Book = book
			pageCount = book.PageCount
		}
		card.Progress = Resolve(*entry, pageCount)

		shelf.Cards = append(shelf.Cards, card)
	}

	return shelf, nil
}

// AddToList puts a book on the user's list with auto progress enabled.
func (service *Service) AddToList(ctx context.Context, ref EntryRef) (*Entry, error) {
	entry, err := service.repository.Add(ctx, ref.UserID, ref.BookID)
	if err != nil {
		return nil, fmt.Errorf("library_service_add_failed: %w", err)
	}

	service.invalidateList(ctx, ref.UserID)
	service.logger.InfoContext(ctx, "library_entry_added", slog.String(constants.FieldUserID, ref.UserID), slog.String(constants.FieldBookID, ref.BookID))

	return entry, nil
}

/*
SetReadingPointer marks request.BookID as the book the user is reading.

The book must be on the user's list. An empty BookID clears the pointer.
*/
func (service *Service) SetReadingPointer(ctx context.Context, request SetReadingPointerRequest) error {
	if request.BookID != "" {
		if _, err := service.repository.Get(ctx, request.UserID, request.BookID); err != nil {
			return fmt.Errorf("library_service_pointer_target_failed: %w", err)
		}
	}

	if err := service.repository.SetReadingPointer(ctx, request.UserID, request.BookID); err != nil {
		return fmt.Errorf("library_service_set_pointer_failed: %w", err)
	}

	service.invalidateUser(ctx, request.UserID)
	return nil
}

/*
RemoveFromList deletes one entry.

When the entry is the user's active book the pointer is cleared first, and the
delete is only issued after the clear succeeded. Readers therefore never see a
pointer to an entry that no longer exists.
*/
func (service *Service) RemoveFromList(ctx context.Context, ref EntryRef) (RemoveResult, error) {
	var result RemoveResult

	cleared, err := service.repository.ClearReadingPointerIf(ctx, ref.UserID, ref.BookID)
	if err != nil {
		return result, fmt.Errorf("library_service_clear_pointer_failed: %w", err)
	}
	result.PointerCleared = cleared

	// The cleared pointer is already visible to readers.
	if cleared {
		service.invalidateUser(ctx, ref.UserID)
	}

	if err := service.repository.Delete(ctx, ref.UserID, ref.BookID); err != nil {
		return result, fmt.Errorf("library_service_remove_failed: %w", err)
	}

	service.invalidateList(ctx, ref.UserID)
	service.logger.InfoContext(ctx, "library_entry_removed",
		slog.String(constants.FieldUserID, ref.UserID),
		slog.String(constants.FieldBookID, ref.BookID),
		slog.Bool("pointer_cleared", cleared),
	)

	return result, nil
}

// SetManualProgress stores a manual ratio. The auto progress flag is not touched.
func (service *Service) SetManualProgress(ctx context.Context, request ManualProgressRequest) error {
	if !IsManualStep(request.Ratio) {
		return apperr.ValidationError("Invalid progress", apperr.FieldError{
			Field:   "ratio",
			Message: fmt.Sprintf("Must be one of %v", ManualSteps),
		})
	}

	if err := service.repository.SetManualProgress(ctx, request.UserID, request.BookID, request.Ratio); err != nil {
		return fmt.Errorf("library_service_manual_progress_failed: %w", err)
	}

	service.invalidateList(ctx, request.UserID)
	return nil
}

// EnableAutoProgress switches the entry to the read-time estimate.
func (service *Service) EnableAutoProgress(ctx context.Context, ref EntryRef) error {
	return service.setAutoProgress(ctx, ref, true)
}

// DisableAutoProgress switches the entry to its stored manual ratio.
func (service *Service) DisableAutoProgress(ctx context.Context, ref EntryRef) error {
	return service.setAutoProgress(ctx, ref, false)
}

func (service *Service) setAutoProgress(ctx context.Context, ref EntryRef, enabled bool) error {
	if err := service.repository.SetAutoProgress(ctx, ref.UserID, ref.BookID, enabled); err != nil {
		return fmt.Errorf("library_service_auto_progress_failed: %w", err)
	}

	service.invalidateList(ctx, ref.UserID)
	return nil
}

// RecordReading adds reading minutes to the entry.
func (service *Service) RecordReading(ctx context.Context, request ReadingTimeRequest) error {
	if request.Minutes <= 0 {
		return apperr.ValidationError("Invalid reading time", apperr.FieldError{
			Field:   "minutes",
			Message: "Must be positive",
		})
	}

	if err := service.repository.AddReadTime(ctx, request.UserID, request.BookID, request.Minutes); err != nil {
		return fmt.Errorf("library_service_record_reading_failed: %w", err)
	}

	service.invalidateList(ctx, request.UserID)
	return nil
}

// # Cache Invalidation

// A failed invalidation is logged, not returned: the write itself succeeded.

func (service *Service) invalidateList(ctx context.Context, userID string) {
	if err := service.lists.Invalidate(ctx, ListKey(userID)); err != nil {
		service.logger.WarnContext(ctx, "library_list_invalidate_failed",
			slog.String(constants.FieldUserID, userID), slog.Any("error", err))
	}
}

func (service *Service) invalidateUser(ctx context.Context, userID string) {
	if err := service.users.InvalidateUser(ctx, userID); err != nil {
		service.logger.WarnContext(ctx, "library_user_invalidate_failed",
			slog.String(constants.FieldUserID, userID), slog.Any("error", err))
	}
}
