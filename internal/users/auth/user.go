// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account enrolment and credential checks.

It defines the User entity shared by the account package and issues the bearer
tokens every other endpoint authenticates with.
*/
package auth

import (
	"time"

	"github.com/taibuivan/readmate/internal/platform/sec"
)

// # Domain Entities

// User represents a registered reader.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Role         sec.UserRole `json:"role"`

	// IsReading is the id of the book the user marked as active, or "".
	IsReading string `json:"is_reading"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Request field names reported in validation details.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldLogin       = "login"
)
