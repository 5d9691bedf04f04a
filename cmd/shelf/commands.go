// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/readmate/internal/library"
)

func (a *app) loginCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username-or-email>",
		Short: "Sign in and print an access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			if password == "" {
				fmt.Fprint(a.out, "Password: ")
				line, _ := a.in.ReadString('\n')
				password = strings.TrimSpace(line)
			}

			result, err := a.api.Login(ctx, args[0], password)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "export READMATE_TOKEN=%s\n", result.AccessToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password (read from stdin when empty)")
	return cmd
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show your reading list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			shelf, err := a.requireShelf(ctx)
			if err != nil {
				return err
			}
			a.loadLabels(ctx, "shelf")

			return a.renderShelf(shelf)
		},
	}
}

func (a *app) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <book-id>",
		Short: "Put a book on your list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()
			return a.api.AddToList(ctx, args[0])
		},
	}
}

func (a *app) readCommand() *cobra.Command {
	var clearPointer bool

	cmd := &cobra.Command{
		Use:   "read [position|book-id]",
		Short: "Mark a book as the one you are reading",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			if clearPointer {
				return a.api.SetReading(ctx, "")
			}
			if len(args) == 0 {
				return fmt.Errorf("pass a book or --clear")
			}

			shelf, err := a.requireShelf(ctx)
			if err != nil {
				return err
			}
			index, err := cardIndex(shelf, args[0])
			if err != nil {
				return err
			}
			return a.api.SetReading(ctx, shelf.Cards[index].BookID)
		},
	}
	cmd.Flags().BoolVar(&clearPointer, "clear", false, "Stop reading any book")
	return cmd
}

/*
removeCommand selects the card, asks for confirmation, and only then sends the
delete. Declining cancels the selection; a failed delete keeps it and reports
the error.
*/
func (a *app) removeCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <position|book-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a book from your list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			shelf, err := a.requireShelf(ctx)
			if err != nil {
				return err
			}
			a.loadLabels(ctx, "shelf")

			index, err := cardIndex(shelf, args[0])
			if err != nil {
				return err
			}

			selection := &library.Selection{}
			selection.Sync(shelf.Version, len(shelf.Cards))
			if err := selection.Toggle(index, true); err != nil {
				return err
			}
			overlay := library.NewOverlay(selection)

			fmt.Fprintf(a.out, "%s\n", cardTitle(shelf.Cards[index]))
			if !yes && !a.confirm(a.label("remove_prompt")) {
				return overlay.Cancel(index)
			}

			var result library.RemoveResult
			err = overlay.Commit(ctx, index, func(ctx context.Context) error {
				var err error
				result, err = a.api.RemoveFromList(ctx, shelf.Cards[index].BookID)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, a.label("removed"))
			if result.PointerCleared {
				a.logger.DebugContext(ctx, "reading_pointer_cleared", slog.String("book_id", shelf.Cards[index].BookID))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (a *app) progressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <position|book-id> <ratio>",
		Short: "Set manual progress (0, 0.2, 0.4, 0.7 or 1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ratio, err := strconv.ParseFloat(args[1], 64)
			if err != nil || !library.IsManualStep(ratio) {
				return fmt.Errorf("ratio must be one of %v", library.ManualSteps)
			}

			return a.onCard(cmd, args[0], func(ctx context.Context, bookID string) error {
				return a.api.SetManualProgress(ctx, bookID, ratio)
			})
		},
	}
}

func (a *app) autoCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "auto <position|book-id> <on|off>",
		Short:     "Switch automatic progress from reading time",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[1] {
			case "on":
				return a.onCard(cmd, args[0], a.api.EnableAutoProgress)
			case "off":
				return a.onCard(cmd, args[0], a.api.DisableAutoProgress)
			default:
				return fmt.Errorf("expected on or off, got %q", args[1])
			}
		},
	}
}

func (a *app) logCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "log <position|book-id> <minutes>",
		Short: "Record reading time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.ParseFloat(args[1], 64)
			if err != nil || minutes <= 0 {
				return fmt.Errorf("minutes must be a positive number")
			}

			return a.onCard(cmd, args[0], func(ctx context.Context, bookID string) error {
				return a.api.RecordReading(ctx, bookID, minutes)
			})
		},
	}
}

func (a *app) sessionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List your reading sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			partitioned, ok, err := a.api.Sessions(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("not signed in: pass --token or set READMATE_TOKEN")
			}
			a.loadLabels(ctx, "sessions")

			return a.renderSessions(partitioned)
		},
	}
}

func (a *app) participantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "participants <session-id>",
		Short: "Show who is in a session call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			tiles, err := a.api.Participants(ctx, args[0])
			if err != nil {
				return err
			}
			a.loadLabels(ctx, "sessions")

			return a.renderTiles(tiles)
		},
	}
}

// onCard resolves a card argument and runs a mutation on its book.
func (a *app) onCard(cmd *cobra.Command, arg string, mutate func(ctx context.Context, bookID string) error) error {
	ctx, cancel := a.context(cmd)
	defer cancel()

	shelf, err := a.requireShelf(ctx)
	if err != nil {
		return err
	}
	index, err := cardIndex(shelf, arg)
	if err != nil {
		return err
	}
	return mutate(ctx, shelf.Cards[index].BookID)
}
