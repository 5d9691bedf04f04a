// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package books

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readmate/internal/platform/database/schema"
	"github.com/taibuivan/readmate/internal/platform/dberr"
	"github.com/taibuivan/readmate/pkg/pointer"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a catalogue repository over pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		schema.CoreBook.ID, schema.CoreBook.Title, schema.CoreBook.Authors,
		schema.CoreBook.CoverURL, schema.CoreBook.PageCount, schema.CoreBook.CreatedAt,
	)
}

func scanBook(row pgx.Row) (*Book, error) {
	book := &Book{}
	var pageCount *int32

	if err := row.Scan(&book.ID, &book.Title, &book.Authors, &book.CoverURL, &pageCount, &book.CreatedAt); err != nil {
		return nil, err
	}

	book.PageCount = int(pointer.Val(pageCount))
	return book, nil
}

/*
FindByID retrieves one book from core.book.

Returns:
  - *Book: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.CoreBook.Table, schema.CoreBook.ID)

	book, err := scanBook(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Book", "find_book_by_id")
	}
	return book, nil
}

// FindMany retrieves every book whose id is in ids.
func (repository *PostgresRepository) FindMany(ctx context.Context, ids []string) (map[string]*Book, error) {
	found := make(map[string]*Book, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1::uuid[])`,
		selectColumns(), schema.CoreBook.Table, schema.CoreBook.ID)

	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "Book", "find_many_books")
	}
	defer rows.Close()

	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Book", "scan_book")
		}
		found[book.ID] = book
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Book", "iterate_books")
	}
	return found, nil
}

// List returns one page of the catalogue ordered by title.
func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Book, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.CoreBook.Table)
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Book", "count_books")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC LIMIT $1 OFFSET $2`,
		selectColumns(), schema.CoreBook.Table, schema.CoreBook.Title, schema.CoreBook.ID)

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Book", "list_books")
	}
	defer rows.Close()

	books := make([]*Book, 0, limit)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Book", "scan_book")
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Book", "iterate_books")
	}
	return books, total, nil
}

// Create inserts a new catalogue record. A zero PageCount is stored as NULL.
func (repository *PostgresRepository) Create(ctx context.Context, book *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`,
		schema.CoreBook.Table,
		schema.CoreBook.ID, schema.CoreBook.Title, schema.CoreBook.Authors,
		schema.CoreBook.CoverURL, schema.CoreBook.PageCount,
		schema.CoreBook.CreatedAt,
	)

	pageCount := pointer.NilIfZero(int32(max(book.PageCount, 0)))

	err := repository.pool.QueryRow(ctx, query,
		book.ID, book.Title, book.Authors, book.CoverURL, pageCount,
	).Scan(&book.CreatedAt)

	return dberr.Wrap(err, "Book", "create_book")
}
