// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/constants"
	"github.com/taibuivan/readmate/pkg/uuid"
)

// MaxDurationMinutes bounds a single session.
const MaxDurationMinutes = 240

// Service implements the session use cases.
type Service struct {
	repository Repository
	profiles   ProfileLookup
	logger     *slog.Logger

	now func() time.Time
}

// NewService constructs a session [Service].
func NewService(repository Repository, profiles ProfileLookup, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		profiles:   profiles,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for partitioning. Intended for tests.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// CreateInput describes a new session.
type CreateInput struct {
	OwnerID         string
	GuestID         string
	StartAt         time.Time
	DurationMinutes int
	OwnerBookID     string
}

/*
Create schedules a session between the owner and a guest.

Returns:
  - *Session: The stored session
  - error: Validation failure, or apperr.NotFound when the guest does not exist
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Session, error) {
	if input.GuestID == input.OwnerID {
		return nil, apperr.ValidationError("Invalid session", apperr.FieldError{Field: "guest_id", Message: "Cannot invite yourself"})
	}
	if input.DurationMinutes < 1 || input.DurationMinutes > MaxDurationMinutes {
		return nil, apperr.ValidationError("Invalid session", apperr.FieldError{
			Field:   "duration_minutes",
			Message: fmt.Sprintf("Must be between 1 and %d", MaxDurationMinutes),
		})
	}

	if _, err := service.profiles.PublicProfile(ctx, input.GuestID); err != nil {
		return nil, fmt.Errorf("sessions_service_guest_lookup_failed: %w", err)
	}

	start := input.StartAt.UTC()
	session := &Session{
		ID:              uuid.New(),
		OwnerID:         input.OwnerID,
		GuestID:         input.GuestID,
		StartAt:         start,
		EndAt:           start.Add(time.Duration(input.DurationMinutes) * time.Minute),
		DurationMinutes: input.DurationMinutes,
		OwnerBookID:     input.OwnerBookID,
	}

	if err := service.repository.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("sessions_service_create_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "session_created",
		slog.String(constants.FieldSessionID, session.ID),
		slog.String(constants.FieldUserID, session.OwnerID),
	)

	return session, nil
}

// Get returns a session visible to userID. Outsiders get NotFound.
func (service *Service) Get(ctx context.Context, sessionID, userID string) (*Session, error) {
	session, err := service.repository.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("sessions_service_get_failed: %w", err)
	}
	if session.RoleOf(userID) == "" {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

// ListForUser returns the sessions of userID split into upcoming, ongoing and past.
func (service *Service) ListForUser(ctx context.Context, userID string) (Partitioned, error) {
	sessions, err := service.repository.ListByUser(ctx, userID)
	if err != nil {
		return Partitioned{}, fmt.Errorf("sessions_service_list_failed: %w", err)
	}
	return Partition(sessions, service.now()), nil
}

// SelectBookInput sets the book the owner plans to read during the session.
type SelectBookInput struct {
	SessionID string
	UserID    string
	BookID    string
}

// SelectBook stores the owner's planned book. Only the owner may change it.
func (service *Service) SelectBook(ctx context.Context, input SelectBookInput) (*Session, error) {
	session, err := service.Get(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}
	if session.RoleOf(input.UserID) != RoleOwner {
		return nil, apperr.Forbidden("Only the session owner can pick the book")
	}

	if err := service.repository.SetOwnerBook(ctx, input.SessionID, input.BookID); err != nil {
		return nil, fmt.Errorf("sessions_service_select_book_failed: %w", err)
	}

	session.OwnerBookID = input.BookID
	return session, nil
}

/*
Participants builds the call tiles of a session, owner first.

Only the profile fields the video layer renders are exposed.
*/
func (service *Service) Participants(ctx context.Context, sessionID, userID string) ([]Tile, error) {
	session, err := service.Get(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	tiles := make([]Tile, 0, 2)
	for _, participantID := range []string{session.OwnerID, session.GuestID} {
		profile, err := service.profiles.PublicProfile(ctx, participantID)
		if err != nil {
			return nil, fmt.Errorf("sessions_service_participant_failed: %w", err)
		}

		tiles = append(tiles, Tile{
			UserID:      profile.ID,
			DisplayName: profile.DisplayName,
			AvatarURL:   profile.AvatarURL,
			Role:        session.RoleOf(participantID),
			IsSelf:      participantID == userID,
		})
	}
	return tiles, nil
}
