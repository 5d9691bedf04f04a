// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/taibuivan/readmate/internal/fetch"
	"github.com/taibuivan/readmate/internal/library"
	"github.com/taibuivan/readmate/internal/locale"
	"github.com/taibuivan/readmate/internal/sessions"
	"github.com/taibuivan/readmate/internal/users/auth"
)

// # Reads

// Me returns the caller's user record. ok is false without a token.
func (c *Client) Me(ctx context.Context) (*auth.User, bool, error) {
	return c.users.Get(ctx, c.userKey(), func(ctx context.Context) (*auth.User, error) {
		var user auth.User
		if err := c.do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
			return nil, err
		}
		return &user, nil
	})
}

/*
Shelf returns the caller's cards.

The list key depends on the user id, so the shelf stays unresolved (ok=false,
no error) until [Client.Me] resolves. The reading pointer is taken from the user
record, which is the key a pointer change invalidates.
*/
func (c *Client) Shelf(ctx context.Context) (*library.Shelf, bool, error) {
	user, ok, err := c.Me(ctx)
	if err != nil || !ok {
		return nil, false, err
	}

	shelf, ok, err := c.lists.Get(ctx, c.listKey(user.ID), func(ctx context.Context) (*library.Shelf, error) {
		var shelf library.Shelf
		if err := c.do(ctx, http.MethodGet, "/me/list", nil, &shelf); err != nil {
			return nil, err
		}
		return &shelf, nil
	})
	if err != nil || !ok {
		return nil, false, err
	}

	shelf.IsReading = user.IsReading
	for i := range shelf.Cards {
		shelf.Cards[i].IsReading = user.IsReading != "" && shelf.Cards[i].BookID == user.IsReading
	}
	return shelf, true, nil
}

// Sessions returns the caller's sessions, partitioned by the server clock.
func (c *Client) Sessions(ctx context.Context) (sessions.Partitioned, bool, error) {
	user, ok, err := c.Me(ctx)
	if err != nil || !ok {
		return sessions.Partitioned{}, false, err
	}

	return c.sessions.Get(ctx, c.sessionsKey(user.ID), func(ctx context.Context) (sessions.Partitioned, error) {
		var partitioned sessions.Partitioned
		err := c.do(ctx, http.MethodGet, "/sessions", nil, &partitioned)
		return partitioned, err
	})
}

// Participants returns the call tiles of a session. Tiles are not cached.
func (c *Client) Participants(ctx context.Context, sessionID string) ([]sessions.Tile, error) {
	var tiles []sessions.Tile
	if err := c.do(ctx, http.MethodGet, "/sessions/"+url.PathEscape(sessionID)+"/participants", nil, &tiles); err != nil {
		return nil, err
	}
	return tiles, nil
}

// Strings returns a locale section. An empty lang means the fallback language.
func (c *Client) Strings(ctx context.Context, section, lang string) (locale.Strings, error) {
	if lang == "" {
		lang = locale.FallbackLanguage
	}

	strings, _, err := c.locales.Get(ctx, fetch.KeyFor("locales", section, lang), func(ctx context.Context) (locale.Strings, error) {
		var strings locale.Strings
		query := url.Values{"lang": {lang}}
		err := c.do(ctx, http.MethodGet, "/locales/"+url.PathEscape(section)+"?"+query.Encode(), nil, &strings)
		return strings, err
	})
	return strings, err
}

// # Mutations

// LoginResult is the answer of [Client.Login].
type LoginResult struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"`
	User        *auth.User `json:"user"`
}

// Login exchanges credentials for an access token. The client keeps its own token.
func (c *Client) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	var result LoginResult
	body := map[string]string{"login": login, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddToList puts a book on the caller's list.
func (c *Client) AddToList(ctx context.Context, bookID string) error {
	if err := c.do(ctx, http.MethodPost, "/me/list", map[string]string{"book_id": bookID}, nil); err != nil {
		return err
	}
	c.invalidateList(ctx)
	return nil
}

// SetReading marks bookID as the active book; "" clears the pointer.
func (c *Client) SetReading(ctx context.Context, bookID string) error {
	if err := c.do(ctx, http.MethodPut, "/me/reading", map[string]string{"book_id": bookID}, nil); err != nil {
		return err
	}
	c.invalidate(ctx, func(ctx context.Context) error { return c.users.Invalidate(ctx, c.userKey()) })
	return nil
}

// RemoveFromList deletes a book from the list. The server clears the reading
// pointer first when it referenced the book.
func (c *Client) RemoveFromList(ctx context.Context, bookID string) (library.RemoveResult, error) {
	var result library.RemoveResult
	if err := c.do(ctx, http.MethodDelete, entryPath(bookID, ""), nil, &result); err != nil {
		return result, err
	}

	c.invalidateList(ctx)
	if result.PointerCleared {
		c.invalidate(ctx, func(ctx context.Context) error { return c.users.Invalidate(ctx, c.userKey()) })
	}
	return result, nil
}

// SetManualProgress stores one of [library.ManualSteps].
func (c *Client) SetManualProgress(ctx context.Context, bookID string, ratio float64) error {
	return c.mutateEntry(ctx, http.MethodPut, entryPath(bookID, "/progress"), map[string]float64{"ratio": ratio})
}

func (c *Client) EnableAutoProgress(ctx context.Context, bookID string) error {
	return c.mutateEntry(ctx, http.MethodPost, entryPath(bookID, "/auto-progress"), nil)
}

func (c *Client) DisableAutoProgress(ctx context.Context, bookID string) error {
	return c.mutateEntry(ctx, http.MethodDelete, entryPath(bookID, "/auto-progress"), nil)
}

// RecordReading adds minutes of reading time to a listed book.
func (c *Client) RecordReading(ctx context.Context, bookID string, minutes float64) error {
	return c.mutateEntry(ctx, http.MethodPost, entryPath(bookID, "/reading-time"), map[string]float64{"minutes": minutes})
}

func (c *Client) mutateEntry(ctx context.Context, method, path string, body any) error {
	if err := c.do(ctx, method, path, body, nil); err != nil {
		return err
	}
	c.invalidateList(ctx)
	return nil
}

// invalidateList drops the list key of the cached user. Without a cached user
// there is no list key to drop.
func (c *Client) invalidateList(ctx context.Context) {
	user, ok, err := c.Me(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "client_invalidate_failed", slog.String("key", "list"), slog.Any("error", err))
		return
	}
	if !ok {
		return
	}
	c.invalidate(ctx, func(ctx context.Context) error { return c.lists.Invalidate(ctx, c.listKey(user.ID)) })
}

func entryPath(bookID, suffix string) string {
	return "/me/list/" + url.PathEscape(bookID) + suffix
}
