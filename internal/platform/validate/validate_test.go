// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/internal/platform/validate"
)

func TestRules(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	steps := []float64{0, 0.2, 0.4, 0.7, 1}

	tests := []struct {
		name string
		rule func(v *validate.Validator)
		ok   bool
	}{
		{"required", func(v *validate.Validator) { v.Required("title", "Dune") }, true},
		{"required_blank", func(v *validate.Validator) { v.Required("title", "   ") }, false},
		{"max_len_runes", func(v *validate.Validator) { v.MaxLen("name", "Đặng", 4) }, true},
		{"min_len", func(v *validate.Validator) { v.MinLen("name", "A", 2) }, false},
		{"range_edge", func(v *validate.Validator) { v.Range("minutes", 240, 1, 240) }, true},
		{"range_out", func(v *validate.Validator) { v.Range("minutes", 0, 1, 240) }, false},
		{"email", func(v *validate.Validator) { v.Email("email", "ada@readmate.app") }, true},
		{"email_no_domain", func(v *validate.Validator) { v.Email("email", "ada@") }, false},
		{"uuid", func(v *validate.Validator) { v.UUID("id", "0195f0a4-7c1e-7b3a-9c1d-2f4e5a6b7c8d") }, true},
		{"uuid_short", func(v *validate.Validator) { v.UUID("id", "B1") }, false},
		{"url_https", func(v *validate.Validator) { v.URL("cover", "https://cdn.readmate.app/a.png") }, true},
		{"url_relative", func(v *validate.Validator) { v.URL("cover", "/covers/a.png") }, false},
		{"url_ftp", func(v *validate.Validator) { v.URL("cover", "ftp://example.com/a.png") }, false},
		{"step", func(v *validate.Validator) { v.OneOfFloat("ratio", 0.7, steps...) }, true},
		{"off_step", func(v *validate.Validator) { v.OneOfFloat("ratio", 0.5, steps...) }, false},
		{"future", func(v *validate.Validator) { v.Future("start_at", now.Add(time.Minute), now) }, true},
		{"now_is_not_future", func(v *validate.Validator) { v.Future("start_at", now, now) }, false},
		{"custom", func(v *validate.Validator) { v.Custom("authors", true, "At least one author is required") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.rule(v)
			assert.Equal(t, !tt.ok, v.HasErrors())
		})
	}
}

func TestErr_AccumulatesDetails(t *testing.T) {
	err := (&validate.Validator{}).
		Required("username", "").
		MinLen("username", "a", 3).
		Email("email", "not-an-email").
		Err()

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	require.Len(t, appErr.Details, 3)
	assert.Equal(t, "username", appErr.Details[0].Field)
	assert.Equal(t, "email", appErr.Details[2].Field)
}

func TestErr_NilWhenClean(t *testing.T) {
	assert.NoError(t, (&validate.Validator{}).Required("username", "ada").Err())
}
