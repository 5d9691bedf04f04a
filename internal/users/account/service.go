// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/readmate/internal/fetch"
	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/constants"
	"github.com/taibuivan/readmate/internal/users/auth"
)

// Service owns profile reads and writes and the cached user records.
type Service struct {
	accountRepository AccountRepository
	users             *fetch.Accessor[*auth.User]
	logger            *slog.Logger
}

// NewService constructs a new [Service]. users caches user records by id.
func NewService(accountRepo AccountRepository, users *fetch.Accessor[*auth.User], logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		users:             users,
		logger:            logger,
	}
}

// UserKey is the cache key of one user record.
func UserKey(userID string) fetch.Key {
	return fetch.KeyFor("users", userID)
}

// GetProfile reads userID through the cache. A missing id is NOT_FOUND.
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, ok, err := service.users.Get(context, UserKey(userID), func(context context.Context) (*auth.User, error) {
		return service.accountRepository.FindByID(context, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

// PublicProfile returns the fields of userID other readers may see.
func (service *Service) PublicProfile(context context.Context, userID string) (*PublicProfile, error) {
	user, err := service.GetProfile(context, userID)
	if err != nil {
		return nil, err
	}
	return ProfileOf(user), nil
}

// ReadingPointer returns the id of the book userID is reading, or "".
func (service *Service) ReadingPointer(context context.Context, userID string) (string, error) {
	user, err := service.GetProfile(context, userID)
	if err != nil {
		return "", err
	}
	return user.IsReading, nil
}

// InvalidateUser drops the cached record of userID.
func (service *Service) InvalidateUser(context context.Context, userID string) error {
	return service.users.Invalidate(context, UserKey(userID))
}

// UpdateProfileInput defines the mutable subset of user profile fields.
type UpdateProfileInput struct {
	DisplayName *string
	AvatarURL   *string
}

/*
UpdateProfile applies a partial set of changes to a user's profile.

The current record is read from the store, not the cache, so the update never
writes back a stale reading pointer.
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}

	if err := service.accountRepository.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.invalidate(context, userID)
	service.logger.InfoContext(context, "user_profile_updated", slog.String(constants.FieldUserID, userID))

	return user, nil
}

// DeleteAccount performs an idempotent soft-deletion of a user account.
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if err := service.accountRepository.SoftDelete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.invalidate(context, userID)
	service.logger.WarnContext(context, "user_account_deleted", slog.String(constants.FieldUserID, userID))

	return nil
}

func (service *Service) invalidate(context context.Context, userID string) {
	if err := service.InvalidateUser(context, userID); err != nil {
		service.logger.WarnContext(context, "account_cache_invalidate_failed",
			slog.String(constants.FieldUserID, userID), slog.Any("error", err))
	}
}
