// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field errors from request payloads into a single
// VALIDATION_ERROR. Handlers check shape here; services keep the business rules
// they own, such as the manual progress steps.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/readmate/internal/platform/apperr"
	"github.com/taibuivan/readmate/pkg/uuid"
)

// ErrInvalidJSON is returned when a request body does not decode.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates failures through chained rules. Use one per request.
type Validator struct {
	errs []apperr.FieldError
}

// check records message for field unless ok holds.
func (v *Validator) check(ok bool, field, message string) *Validator {
	if !ok {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

func (v *Validator) Required(field, value string) *Validator {
	return v.check(strings.TrimSpace(value) != "", field, "This field is required")
}

// MaxLen and MinLen count runes, not bytes.
func (v *Validator) MaxLen(field, value string, n int) *Validator {
	return v.check(utf8.RuneCountInString(value) <= n, field, fmt.Sprintf("Maximum %d characters", n))
}

func (v *Validator) MinLen(field, value string, n int) *Validator {
	return v.check(utf8.RuneCountInString(value) >= n, field, fmt.Sprintf("Minimum %d characters", n))
}

// Range is inclusive on both ends.
func (v *Validator) Range(field string, value, lo, hi int) *Validator {
	return v.check(value >= lo && value <= hi, field, fmt.Sprintf("Must be between %d and %d", lo, hi))
}

func (v *Validator) Email(field, value string) *Validator {
	_, err := mail.ParseAddress(value)
	return v.check(err == nil, field, "Must be a valid email address")
}

func (v *Validator) UUID(field, value string) *Validator {
	return v.check(uuid.Valid(value), field, "Must be a valid UUID")
}

// URL accepts absolute http and https URLs only.
func (v *Validator) URL(field, value string) *Validator {
	parsed, err := url.ParseRequestURI(value)
	ok := err == nil && parsed.Host != "" && (parsed.Scheme == "http" || parsed.Scheme == "https")
	return v.check(ok, field, "Must be a valid http(s) URL")
}

// OneOfFloat requires an exact match against allowed.
func (v *Validator) OneOfFloat(field string, value float64, allowed ...float64) *Validator {
	return v.check(slices.Contains(allowed, value), field, fmt.Sprintf("Must be one of: %v", allowed))
}

// Future requires value to be strictly after now.
func (v *Validator) Future(field string, value, now time.Time) *Validator {
	return v.check(value.After(now), field, "Must be in the future")
}

// Custom records message when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	return v.check(!failed, field, message)
}

// Err returns the accumulated failures as one [apperr.AppError], or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any rule failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}
