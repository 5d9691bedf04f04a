// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles the authenticated user's own record: the profile shown
to reading partners and the reading pointer carried on the user.

# Architecture

  - Entities: PublicProfile (DTO).
  - Domain: This package depends on the auth package for the User entity.
  - Cache: user records are read through the remote data accessor and
    invalidated by every write that changes them, including reading-pointer
    moves made by the library package.
*/
package account

import (
	"context"

	"github.com/taibuivan/readmate/internal/users/auth"
)

// # Domain Entities

// PublicProfile is the part of a user visible to other readers, e.g. on call tiles.
type PublicProfile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// ProfileOf projects user onto its public fields.
func ProfileOf(user *auth.User) *PublicProfile {
	return &PublicProfile{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}
}

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		UpdateProfile writes the display name and avatar of an existing user.

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	UpdateProfile(context context.Context, user *auth.User) error

	// SoftDelete flags an account as logically deleted.
	SoftDelete(context context.Context, id string) error
}
