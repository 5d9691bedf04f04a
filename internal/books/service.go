// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package books

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/readmate/pkg/uuid"
)

// Service exposes catalogue use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a catalogue [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// Get returns one book by id.
func (service *Service) Get(ctx context.Context, id string) (*Book, error) {
	book, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("books_service_get_failed: %w", err)
	}
	return book, nil
}

// GetMany returns the known books among ids, keyed by id.
func (service *Service) GetMany(ctx context.Context, ids []string) (map[string]*Book, error) {
	found, err := service.repository.FindMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("books_service_get_many_failed: %w", err)
	}
	return found, nil
}

// List returns one page of the catalogue and the total count.
func (service *Service) List(ctx context.Context, limit, offset int) ([]*Book, int, error) {
	list, total, err := service.repository.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("books_service_list_failed: %w", err)
	}
	return list, total, nil
}

// CreateInput holds the fields of a new catalogue entry.
type CreateInput struct {
	Title     string
	Authors   []string
	CoverURL  string
	PageCount int
}

// Create adds a book to the catalogue.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Book, error) {
	authors := make([]string, 0, len(input.Authors))
	for _, author := range input.Authors {
		if trimmed := strings.TrimSpace(author); trimmed != "" {
			authors = append(authors, trimmed)
		}
	}

	book := &Book{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(input.Title),
		Authors:   authors,
		CoverURL:  input.CoverURL,
		PageCount: input.PageCount,
	}

	if err := service.repository.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("books_service_create_failed: %w", err)
	}

	service.logger.Info("book_created", slog.String("book_id", book.ID), slog.String("title", book.Title))

	return book, nil
}
