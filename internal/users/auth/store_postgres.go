// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/readmate/internal/platform/database/schema"
	"github.com/taibuivan/readmate/internal/platform/dberr"
)

// PostgresUserRepository stores accounts in users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// UserColumns lists the users.account columns scanned by [ScanUser], in order.
func UserColumns() string {
	u := schema.UserAccount
	return strings.Join([]string{
		u.ID, u.Username, u.Email, u.Password, u.DisplayName, u.AvatarURL,
		u.Role, u.IsReading, u.CreatedAt, u.UpdatedAt,
	}, ", ")
}

// ScanUser hydrates a [User] from a row selected with [UserColumns].
func ScanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.AvatarURL,
		&user.Role,
		&user.IsReading,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts user and fills its timestamps from the database defaults.
// A duplicate username or email is a CONFLICT.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	u := schema.UserAccount
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s, %s`,
		u.Table,
		strings.Join([]string{u.ID, u.Username, u.Email, u.Password, u.DisplayName, u.Role}, ", "),
		u.CreatedAt, u.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.DisplayName, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return dberr.Wrap(err, "User", "create_user")
}

// FindByEmail retrieves an active user by email address.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.UserAccount.Email, email)
}

// FindByUsername retrieves an active user by username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, schema.UserAccount.Username, username)
}

func (repository *PostgresUserRepository) findBy(ctx context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		UserColumns(), schema.UserAccount.Table, column, schema.UserAccount.DeletedAt)

	user, err := ScanUser(repository.pool.QueryRow(ctx, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, "User", "find_user_by_"+column)
	}
	return user, nil
}
