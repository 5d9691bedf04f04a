// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/taibuivan/readmate/internal/library"
	"github.com/taibuivan/readmate/internal/sessions"
)

const progressBarWidth = 10

func cardTitle(card library.Card) string {
	if card.Book == nil {
		return card.BookID
	}
	if len(card.Book.Authors) == 0 {
		return card.Book.Title
	}
	return card.Book.Title + " (" + strings.Join(card.Book.Authors, ", ") + ")"
}

// progressCell renders a clamped bar. Overshooting estimates show as finished.
func (a *app) progressCell(card library.Card) string {
	if !card.Progress.Measurable {
		return a.label("unknown_progress")
	}

	ratio, fullyRead := card.Progress.Display()
	filled := int(ratio * progressBarWidth)
	bar := "[" + strings.Repeat("#", filled) + strings.Repeat(".", progressBarWidth-filled) + "]"
	if fullyRead {
		return bar + " " + a.label("fully_read")
	}
	return fmt.Sprintf("%s %3.0f%%", bar, ratio*100)
}

func (a *app) renderShelf(shelf *library.Shelf) error {
	fmt.Fprintln(a.out, a.label("title"))
	if len(shelf.Cards) == 0 {
		fmt.Fprintln(a.out, a.label("empty"))
		return nil
	}

	table := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for i, card := range shelf.Cards {
		marker := " "
		if card.IsReading {
			marker = "*"
		}

		remaining := ""
		if card.Book != nil && card.Progress.Mode == library.ModeAuto {
			if minutes, ok := library.RemainingMinutes(card.TotalReadTime, card.Book.PageCount); ok && minutes > 0 {
				remaining = fmt.Sprintf("%.0f %s", minutes, a.label("minutes_left"))
			}
		}

		fmt.Fprintf(table, "%s %d\t%s\t%s\t%s\n", marker, i+1, cardTitle(card), a.progressCell(card), remaining)
	}
	if err := table.Flush(); err != nil {
		return err
	}

	if active, ok := shelf.Active(); ok {
		fmt.Fprintf(a.out, "\n%s: %s\n", a.label("reading_now"), cardTitle(active))
	}
	return nil
}

func (a *app) renderSessions(partitioned sessions.Partitioned) error {
	groups := []struct {
		label string
		list  []*sessions.Session
	}{
		{"ongoing", partitioned.Ongoing},
		{"upcoming", partitioned.Upcoming},
		{"past", partitioned.Past},
	}

	table := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, group := range groups {
		if len(group.list) == 0 {
			continue
		}
		fmt.Fprintf(table, "%s\n", a.label(group.label))
		for _, session := range group.list {
			fmt.Fprintf(table, "  %s\t%s\t%d min\t%s\n",
				session.ID,
				session.StartAt.Local().Format(time.DateTime),
				session.DurationMinutes,
				session.OwnerBookID,
			)
		}
	}
	return table.Flush()
}

func (a *app) renderTiles(tiles []sessions.Tile) error {
	table := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, tile := range tiles {
		name := tile.DisplayName
		if tile.IsSelf {
			name += " *"
		}
		fmt.Fprintf(table, "%s\t%s\n", a.label(tile.Role), name)
	}
	return table.Flush()
}
