// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sessions

import (
	"context"
	"time"

	"github.com/taibuivan/readmate/internal/users/account"
)

// Repository persists sessions.
type Repository interface {
	Create(ctx context.Context, session *Session) error

	// FindByID returns one session or apperr.NotFound.
	FindByID(ctx context.Context, id string) (*Session, error)

	// ListByUser returns every session userID owns or is invited to.
	ListByUser(ctx context.Context, userID string) ([]*Session, error)

	// SetOwnerBook stores the owner's planned book ("" clears it).
	SetOwnerBook(ctx context.Context, sessionID, bookID string) error

	// DeleteEndedBefore removes sessions whose end is before cutoff.
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ProfileLookup resolves the public profile shown on a call tile.
type ProfileLookup interface {
	PublicProfile(ctx context.Context, userID string) (*account.PublicProfile, error)
}
