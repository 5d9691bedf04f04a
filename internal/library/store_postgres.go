// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/database/schema"
	"github.com/taibuivan/readmate/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a library repository over pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func entryColumns() string {
	e := schema.LibraryEntry
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		e.UserID, e.BookID, e.AddedAt, e.TotalReadTime, e.AutoProgress, e.ManualProgress, e.UpdatedAt)
}

func scanEntry(row pgx.Row) (*Entry, error) {
	entry := &Entry{}
	err := row.Scan(
		&entry.UserID, &entry.BookID, &entry.AddedAt, &entry.TotalReadTime,
		&entry.AutoProgress, &entry.ManualProgress, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// # Entries

// ListByUser returns the entries of userID, oldest first.
func (repository *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		entryColumns(), schema.LibraryEntry.Table, schema.LibraryEntry.UserID,
		schema.LibraryEntry.AddedAt, schema.LibraryEntry.BookID)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "Reading list", "list_entries")
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Reading list", "scan_entry")
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Reading list", "iterate_entries")
	}
	return entries, nil
}

// Get returns one entry.
func (repository *PostgresRepository) Get(ctx context.Context, userID, bookID string) (*Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		entryColumns(), schema.LibraryEntry.Table, schema.LibraryEntry.UserID, schema.LibraryEntry.BookID)

	entry, err := scanEntry(repository.pool.QueryRow(ctx, query, userID, bookID))
	if err != nil {
		return nil, dberr.Wrap(err, "Reading list entry", "get_entry")
	}
	return entry, nil
}

/*
Add inserts a new entry with auto progress enabled and no read time.

Returns:
  - *Entry: The stored entry
  - error: apperr.Conflict if the book is already listed, apperr.NotFound for an unknown book
*/
func (repository *PostgresRepository) Add(ctx context.Context, userID, bookID string) (*Entry, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s`,
		schema.LibraryEntry.Table, schema.LibraryEntry.UserID, schema.LibraryEntry.BookID,
		entryColumns(),
	)

	entry, err := scanEntry(repository.pool.QueryRow(ctx, query, userID, bookID))
	if err != nil {
		return nil, dberr.Wrap(err, "Reading list entry", "add_entry")
	}
	return entry, nil
}

// Delete removes one entry.
func (repository *PostgresRepository) Delete(ctx context.Context, userID, bookID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryEntry.Table, schema.LibraryEntry.UserID, schema.LibraryEntry.BookID)

	return repository.execOne(ctx, "delete_entry", query, userID, bookID)
}

// SetManualProgress writes manualprogress only.
func (repository *PostgresRepository) SetManualProgress(ctx context.Context, userID, bookID string, ratio float64) error {
	return repository.updateColumn(ctx, "set_manual_progress", schema.LibraryEntry.ManualProgress, userID, bookID, ratio)
}

// SetAutoProgress writes autoprogress only.
func (repository *PostgresRepository) SetAutoProgress(ctx context.Context, userID, bookID string, enabled bool) error {
	return repository.updateColumn(ctx, "set_auto_progress", schema.LibraryEntry.AutoProgress, userID, bookID, enabled)
}

// AddReadTime increments totalreadtime in place.
func (repository *PostgresRepository) AddReadTime(ctx context.Context, userID, bookID string, minutes float64) error {
	e := schema.LibraryEntry
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + $3, %s = NOW() WHERE %s = $1 AND %s = $2`,
		e.Table, e.TotalReadTime, e.TotalReadTime, e.UpdatedAt, e.UserID, e.BookID)

	return repository.execOne(ctx, "add_read_time", query, userID, bookID, minutes)
}

func (repository *PostgresRepository) updateColumn(ctx context.Context, action, column, userID, bookID string, value any) error {
	e := schema.LibraryEntry
	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = NOW() WHERE %s = $1 AND %s = $2`,
		e.Table, column, e.UpdatedAt, e.UserID, e.BookID)

	return repository.execOne(ctx, action, query, userID, bookID, value)
}

// execOne runs a statement that must touch exactly one entry row.
func (repository *PostgresRepository) execOne(ctx context.Context, action, query string, args ...any) error {
	tag, err := repository.pool.Exec(ctx, query, args...)
	if err != nil {
		return dberr.Wrap(err, "Reading list entry", action)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Reading list entry")
	}
	return nil
}

// # Reading Pointer

// SetReadingPointer stores bookID as the user's active book.
func (repository *PostgresRepository) SetReadingPointer(ctx context.Context, userID, bookID string) error {
	u := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		u.Table, u.IsReading, u.UpdatedAt, u.ID, u.DeletedAt)

	tag, err := repository.pool.Exec(ctx, query, userID, bookID)
	if err != nil {
		return dberr.Wrap(err, "User", "set_reading_pointer")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

/*
ClearReadingPointerIf empties isreading in a single conditional statement, so
a pointer moved to another book in the meantime is left alone.

Returns:
  - bool: true when the pointer was equal to bookID and has been cleared
  - error: Database execution failure
*/
func (repository *PostgresRepository) ClearReadingPointerIf(ctx context.Context, userID, bookID string) (bool, error) {
	u := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = '', %s = NOW() WHERE %s = $1 AND %s = $2`,
		u.Table, u.IsReading, u.UpdatedAt, u.ID, u.IsReading)

	tag, err := repository.pool.Exec(ctx, query, userID, bookID)
	if err != nil {
		return false, dberr.Wrap(err, "User", "clear_reading_pointer")
	}
	return tag.RowsAffected() > 0, nil
}
