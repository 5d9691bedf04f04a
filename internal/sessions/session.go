// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sessions schedules reading sessions: video calls between an owner and a
guest, optionally around a book the owner plans to read.

Only the data shown around the call is modelled here. Connecting the call is
left to the video provider; the API hands it the participant tiles.
*/
package sessions

import "time"

// Participant roles on a call tile.
const (
	RoleOwner = "owner"
	RoleGuest = "guest"
)

// Session is one scheduled reading call.
type Session struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	GuestID         string    `json:"guest_id"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	DurationMinutes int       `json:"duration_minutes"`
	OwnerBookID     string    `json:"owner_book_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// RoleOf returns the role userID plays in the session, or "" for outsiders.
func (s *Session) RoleOf(userID string) string {
	switch userID {
	case "":
		return ""
	case s.OwnerID:
		return RoleOwner
	case s.GuestID:
		return RoleGuest
	default:
		return ""
	}
}

// Tile is what the video layer renders for one participant.
type Tile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Role        string `json:"role"`
	IsSelf      bool   `json:"is_self"`
}
