// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/database/schema"
	"github.com/taibuivan/readmate/pkg/pointer"
	"github.com/taibuivan/readmate/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a session repository over pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func sessionColumns() string {
	s := schema.SocialSession
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		s.ID, s.OwnerID, s.GuestID, s.StartAt, s.EndAt, s.Duration, s.OwnerBookID, s.CreatedAt)
}

func scanSession(row pgx.Row) (*Session, error) {
	session := &Session{}
	var ownerBookID *string

	err := row.Scan(
		&session.ID, &session.OwnerID, &session.GuestID, &session.StartAt,
		&session.EndAt, &session.DurationMinutes, &ownerBookID, &session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	session.OwnerBookID = pointer.Val(ownerBookID)
	return session, nil
}

// Create inserts a session and fills CreatedAt.
func (repository *PostgresRepository) Create(ctx context.Context, session *Session) error {
	s := schema.SocialSession
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`,
		s.Table, s.ID, s.OwnerID, s.GuestID, s.StartAt, s.EndAt, s.Duration, s.OwnerBookID,
		s.CreatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		session.ID, session.OwnerID, session.GuestID, session.StartAt, session.EndAt,
		session.DurationMinutes, pointer.NilIfZero(session.OwnerBookID),
	).Scan(&session.CreatedAt)

	return dberr.Wrap(err, "Session", "create_session")
}

// FindByID returns one session.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Session, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		sessionColumns(), schema.SocialSession.Table, schema.SocialSession.ID)

	session, err := scanSession(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Session", "find_session")
	}
	return session, nil
}

// ListByUser returns sessions where userID is owner or guest, by start time.
func (repository *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Session, error) {
	s := schema.SocialSession
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 OR %s = $1 ORDER BY %s ASC`,
		sessionColumns(), s.Table, s.OwnerID, s.GuestID, s.StartAt)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "Session", "list_sessions")
	}
	defer rows.Close()

	sessions := make([]*Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Session", "scan_session")
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Session", "iterate_sessions")
	}
	return sessions, nil
}

// SetOwnerBook stores the owner's planned book.
func (repository *PostgresRepository) SetOwnerBook(ctx context.Context, sessionID, bookID string) error {
	s := schema.SocialSession
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, s.Table, s.OwnerBookID, s.ID)

	tag, err := repository.pool.Exec(ctx, query, sessionID, pointer.NilIfZero(bookID))
	if err != nil {
		return dberr.Wrap(err, "Session", "set_owner_book")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Session")
	}
	return nil
}

// DeleteEndedBefore removes sessions that ended before cutoff.
func (repository *PostgresRepository) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s := schema.SocialSession
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s < $1`, s.Table, s.EndAt)

	tag, err := repository.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, dberr.Wrap(err, "Session", "sweep_sessions")
	}
	return tag.RowsAffected(), nil
}
