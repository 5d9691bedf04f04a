// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/taibuivan/readmate/internal/client"
	"github.com/taibuivan/readmate/internal/fetch"
	"github.com/taibuivan/readmate/internal/library"
)

// settings holds the global flags. Environment values are the flag defaults.
type settings struct {
	APIURL  string        `env:"READMATE_API"     envDefault:"http://localhost:8080"`
	Token   string        `env:"READMATE_TOKEN"`
	Lang    string        `env:"READMATE_LANG"    envDefault:"en"`
	Timeout time.Duration `env:"READMATE_TIMEOUT" envDefault:"30s"`
	Verbose bool          `env:"READMATE_VERBOSE"`
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	settings settings
	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer

	api    *client.Client
	logger *slog.Logger
	labels map[string]string
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: bufio.NewReader(in), out: out, errOut: errOut}

	// A malformed environment only loses the defaults; flags still work.
	_ = env.Parse(&a.settings)

	root := &cobra.Command{
		Use:           "shelf",
		Short:         "Readmate reading list in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if a.settings.Verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

			a.api = client.New(client.Options{
				BaseURL: a.settings.APIURL,
				Token:   a.settings.Token,
				Policy:  fetch.DefaultPolicy(),
				Logger:  a.logger,
			})
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.settings.APIURL, "api", a.settings.APIURL, "Readmate API base URL (READMATE_API)")
	flags.StringVar(&a.settings.Token, "token", a.settings.Token, "Access token (READMATE_TOKEN)")
	flags.StringVar(&a.settings.Lang, "lang", a.settings.Lang, "Interface language (READMATE_LANG)")
	flags.DurationVar(&a.settings.Timeout, "timeout", a.settings.Timeout, "Timeout per command")
	flags.BoolVarP(&a.settings.Verbose, "verbose", "v", a.settings.Verbose, "Log fetches and retries")

	root.AddCommand(
		a.loginCommand(),
		a.listCommand(),
		a.addCommand(),
		a.readCommand(),
		a.removeCommand(),
		a.progressCommand(),
		a.autoCommand(),
		a.logCommand(),
		a.sessionsCommand(),
		a.participantsCommand(),
	)

	return root
}

// # Helpers

func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.settings.Timeout)
}

// loadLabels fetches one locale section. Missing labels render as their key.
func (a *app) loadLabels(ctx context.Context, section string) {
	table, err := a.api.Strings(ctx, section, a.settings.Lang)
	if err != nil {
		a.logger.DebugContext(ctx, "labels_unavailable", slog.String("section", section), slog.Any("error", err))
		a.labels = map[string]string{}
		return
	}
	a.labels = table.Entries
}

func (a *app) label(key string) string {
	if text, ok := a.labels[key]; ok {
		return text
	}
	return key
}

// requireShelf loads the shelf or explains why there is none.
func (a *app) requireShelf(ctx context.Context) (*library.Shelf, error) {
	shelf, ok, err := a.api.Shelf(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("not signed in: pass --token or set READMATE_TOKEN")
	}
	return shelf, nil
}

// cardIndex resolves a 1-based position or a book id to a card index.
func cardIndex(shelf *library.Shelf, arg string) (int, error) {
	if position, err := strconv.Atoi(arg); err == nil {
		if position < 1 || position > len(shelf.Cards) {
			return -1, fmt.Errorf("no book at position %d", position)
		}
		return position - 1, nil
	}

	if index := shelf.IndexOf(arg); index >= 0 {
		return index, nil
	}
	return -1, fmt.Errorf("book %q is not on your list", arg)
}

// confirm asks a yes/no question; anything but y/yes is a no.
func (a *app) confirm(question string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", question)
	answer, _ := a.in.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
