// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/readmate/internal/platform/apperr"
)

func TestAs_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("remove_from_list_failed: %w", apperr.NotFound("Entry"))

	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "Entry not found", apperr.As(err).Message)
	assert.Nil(t, apperr.As(errors.New("plain")))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, apperr.IsClientError(apperr.Forbidden("no")))
	assert.True(t, apperr.IsClientError(apperr.RateLimited(1)))
	assert.False(t, apperr.IsClientError(apperr.Internal(errors.New("db down"))))
	assert.False(t, apperr.IsClientError(errors.New("connection reset")))
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("db down")
	err := apperr.Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "db down")
}
