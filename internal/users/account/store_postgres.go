// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/database/schema"
	"github.com/taibuivan/readmate/internal/platform/dberr"
	"github.com/taibuivan/readmate/internal/users/auth"
)

// PostgresRepository implements [AccountRepository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates an account repository over pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByID retrieves an active user by primary key.

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	u := schema.UserAccount
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		auth.UserColumns(), u.Table, u.ID, u.DeletedAt)

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User", "find_user_by_id")
	}
	return user, nil
}

// UpdateProfile persists the display name and avatar URL.
func (repository *PostgresRepository) UpdateProfile(context context.Context, user *auth.User) error {
	u := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1 AND %s IS NULL`,
		u.Table, u.DisplayName, u.AvatarURL, u.UpdatedAt, u.ID, u.DeletedAt)

	user.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query, user.ID, user.DisplayName, user.AvatarURL, user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "User", "update_profile")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// SoftDelete stamps deletedat. Already deleted accounts are left untouched.
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	u := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		u.Table, u.DeletedAt, u.ID, u.DeletedAt)

	_, err := repository.pool.Exec(context, query, id)
	return dberr.Wrap(err, "User", "soft_delete_user")
}
