// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sessions

import (
	"slices"
	"time"

	"github.com/taibuivan/readmate/pkg/slice"
)

// Partitioned groups sessions by their position relative to a reference time.
type Partitioned struct {
	// Upcoming sessions start at or after now, soonest first.
	Upcoming []*Session `json:"upcoming"`

	// Ongoing sessions started before now and end after it.
	Ongoing []*Session `json:"ongoing"`

	// Past sessions ended at or before now, most recent first.
	Past []*Session `json:"past"`
}

// Partition splits sessions into upcoming, ongoing and past relative to now.
// Every session lands in exactly one group.
func Partition(sessions []*Session, now time.Time) Partitioned {
	upcoming := slice.Filter(sessions, func(s *Session) bool { return !s.StartAt.Before(now) })
	ongoing := slice.Filter(sessions, func(s *Session) bool { return s.StartAt.Before(now) && s.EndAt.After(now) })
	past := slice.Filter(sessions, func(s *Session) bool { return s.StartAt.Before(now) && !s.EndAt.After(now) })

	slices.SortStableFunc(upcoming, func(a, b *Session) int { return a.StartAt.Compare(b.StartAt) })
	slices.SortStableFunc(ongoing, func(a, b *Session) int { return a.StartAt.Compare(b.StartAt) })
	slices.SortStableFunc(past, func(a, b *Session) int { return b.EndAt.Compare(a.EndAt) })

	return Partitioned{
		Upcoming: orEmpty(upcoming),
		Ongoing:  orEmpty(ongoing),
		Past:     orEmpty(past),
	}
}

func orEmpty(list []*Session) []*Session {
	if list == nil {
		return []*Session{}
	}
	return list
}
