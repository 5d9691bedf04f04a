// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Repository Contracts

// UserRepository defines the persistence contract for account enrolment and lookup.
type UserRepository interface {
	/*
		Create persists a new user record.

		Parameters:
		  - context: context.Context
		  - user: *User (Entity to persist)

		Returns:
		  - error: apperr.Conflict when the username or email is taken
	*/
	Create(context context.Context, user *User) error

	/*
		FindByEmail retrieves a user by email address.

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername retrieves a user by username.

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)
}

// LoginGuard counts failed password attempts per login identifier.
type LoginGuard interface {
	// Failures returns the number of failures still inside the window.
	Failures(context context.Context, login string) (int, error)

	// RecordFailure increments the counter and (re)starts its window.
	RecordFailure(context context.Context, login string, window time.Duration) error

	// Reset forgets all failures for login.
	Reset(context context.Context, login string) error
}
