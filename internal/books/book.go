// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package books owns the shared book catalogue.

A [Book] is read-mostly reference data: many reading-list entries point at one
book, and its lifetime is independent of any list.
*/
package books

import (
	"context"
	"time"
)

// # Domain Entities

// Book is the catalogue record for one title.
type Book struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	CoverURL string   `json:"cover_url,omitempty"`
	// PageCount is 0 when unknown; automatic progress is then unmeasurable.
	PageCount int       `json:"page_count,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// # Repository Contracts

// Repository defines the persistence contract for the catalogue.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Book, error)

	// FindMany returns the books found among ids, keyed by id. Unknown ids are skipped.
	FindMany(ctx context.Context, ids []string) (map[string]*Book, error)

	// List returns one page of books ordered by title, and the total count.
	List(ctx context.Context, limit, offset int) ([]*Book, int, error)

	Create(ctx context.Context, book *Book) error
}
