// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the shelf terminal's view of the Readmate API.

Reads go through [fetch.Accessor] instances backed by an in-memory store, keyed
by resource path plus the caller's token. Mutations are sent once, never retried,
and invalidate the keys they affect only after the server confirms them:

  - SetReading invalidates the user key.
  - RemoveFromList invalidates the list key, plus the user key when the server
    reports that the reading pointer was cleared.
  - Progress, auto-progress, reading-time and add invalidate the list key.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/readmate/internal/fetch"
	"github.com/taibuivan/readmate/internal/library"
	"github.com/taibuivan/readmate/internal/locale"
	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/respond"
	"github.com/taibuivan/readmate/internal/sessions"
	"github.com/taibuivan/readmate/internal/users/auth"
)

const (
	apiPrefix      = "/api/v1"
	defaultTimeout = 15 * time.Second
)

// Options configures a [Client].
type Options struct {
	BaseURL    string
	Token      string
	Policy     fetch.Policy
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to one Readmate API on behalf of one token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger

	users    *fetch.Accessor[*auth.User]
	lists    *fetch.Accessor[*library.Shelf]
	sessions *fetch.Accessor[sessions.Partitioned]
	locales  *fetch.Accessor[locale.Strings]
}

// New creates a client. A zero Policy means the default ten attempts.
func New(options Options) *Client {
	if options.Policy.MaxAttempts == 0 {
		options.Policy = fetch.DefaultPolicy()
	}
	if options.HTTPClient == nil {
		options.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	store := fetch.NewMemoryStore()

	return &Client{
		baseURL:  strings.TrimRight(options.BaseURL, "/"),
		token:    options.Token,
		http:     options.HTTPClient,
		logger:   options.Logger,
		users:    fetch.NewAccessor[*auth.User](store, options.Policy, options.Logger),
		lists:    fetch.NewAccessor[*library.Shelf](store, options.Policy, options.Logger),
		sessions: fetch.NewAccessor[sessions.Partitioned](store, options.Policy, options.Logger),
		locales:  fetch.NewAccessor[locale.Strings](store, options.Policy, options.Logger),
	}
}

// # Transport

/*
do sends one request and decodes the "data" member of the success envelope
into out (when non-nil).

Error envelopes are decoded back into [*apperr.AppError] with the response
status, so 4xx answers stop the fetch policy and keep their code.
*/
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client_encode_failed: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("client_request_failed: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("client_transport_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return decodeError(response)
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}

	envelope := respond.SuccessEnvelope{Data: out}
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("client_decode_failed: %w", err)
	}
	return nil
}

func decodeError(response *http.Response) error {
	var envelope respond.ErrorEnvelope
	raw, _ := io.ReadAll(io.LimitReader(response.Body, 64<<10))

	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Code == "" {
		return &apperr.AppError{
			Code:       "HTTP_" + fmt.Sprint(response.StatusCode),
			Message:    strings.TrimSpace(string(raw)),
			HTTPStatus: response.StatusCode,
		}
	}

	return &apperr.AppError{
		Code:       envelope.Code,
		Message:    envelope.Error,
		HTTPStatus: response.StatusCode,
		Details:    envelope.Details,
	}
}

// # Keys

func (c *Client) userKey() fetch.Key {
	return fetch.KeyFor("me").WithToken(c.token)
}

func (c *Client) listKey(userID string) fetch.Key {
	return fetch.KeyFor("users", userID, "list").WithToken(c.token)
}

func (c *Client) sessionsKey(userID string) fetch.Key {
	return fetch.KeyFor("users", userID, "sessions").WithToken(c.token)
}

// invalidate drops keys after a confirmed write. A cache failure here only
// costs a stale read, so it is logged.
func (c *Client) invalidate(ctx context.Context, drop func(context.Context) error) {
	if err := drop(ctx); err != nil {
		c.logger.WarnContext(ctx, "client_invalidate_failed", slog.Any("error", err))
	}
}
