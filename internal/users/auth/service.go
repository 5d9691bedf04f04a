// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/constants"
	"github.com/taibuivan/readmate/internal/platform/sec"
	"github.com/taibuivan/readmate/pkg/uuid"
)

// TokenProvider signs access tokens. [sec.TokenService] implements it.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, ttl time.Duration) (string, error)
}

// Service registers readers and exchanges credentials for access tokens.
type Service struct {
	users  UserRepository
	guard  LoginGuard
	tokens TokenProvider
	logger *slog.Logger
}

func NewService(users UserRepository, guard LoginGuard, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{users: users, guard: guard, tokens: tokens, logger: logger}
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// Register stores a new member. Email is normalised to lower case and the
// display name defaults to the username. A taken email or username is a
// CONFLICT.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := normaliseEmail(input.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        email,
		PasswordHash: hash,
		DisplayName:  cmp.Or(strings.TrimSpace(input.DisplayName), input.Username),
		Role:         sec.RoleMember,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register_failed: %w", err)
	}

	s.logger.InfoContext(ctx, "user_registered", slog.String(constants.FieldUserID, user.ID))
	return user, nil
}

// LoginInput.Login is a username or an email.
type LoginInput struct {
	Login    string
	Password string
}

// LoginSession is the bearer token handed out by a successful login.
type LoginSession struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *User
}

// Login verifies credentials and signs a token valid for [constants.AccessTokenTTL].
//
// After [MaxFailedLogins] wrong attempts for one identifier the login is refused
// with RATE_LIMITED, right password or not, until [FailedLoginWindow] passes.
// Unknown users and wrong passwords get the same 401.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	login := strings.TrimSpace(input.Login)

	failures, err := s.guard.Failures(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("login_guard_failed: %w", err)
	}
	if failures >= MaxFailedLogins {
		return nil, apperr.RateLimited(int(FailedLoginWindow.Seconds()))
	}

	user, ok := s.lookup(ctx, login)
	if !ok || !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		if err := s.guard.RecordFailure(ctx, login, FailedLoginWindow); err != nil {
			s.logger.WarnContext(ctx, "login_guard_record_failed", slog.Any("error", err))
		}
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if err := s.guard.Reset(ctx, login); err != nil {
		s.logger.WarnContext(ctx, "login_guard_reset_failed", slog.Any("error", err))
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("login_token_failed: %w", err)
	}

	s.logger.InfoContext(ctx, "user_logged_in", slog.String(constants.FieldUserID, user.ID))
	return &LoginSession{AccessToken: token, ExpiresIn: constants.AccessTokenTTL, User: user}, nil
}

// lookup tries login as an email, then as a username.
func (s *Service) lookup(ctx context.Context, login string) (*User, bool) {
	if user, err := s.users.FindByEmail(ctx, normaliseEmail(login)); err == nil {
		return user, true
	}
	user, err := s.users.FindByUsername(ctx, login)
	return user, err == nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
