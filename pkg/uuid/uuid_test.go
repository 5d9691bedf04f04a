// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/readmate/pkg/uuid"
)

func TestNew_IsSortable(t *testing.T) {
	first, second := uuid.New(), uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first[:13], second[:13], "the timestamp prefix never goes backwards")
}

func TestValid(t *testing.T) {
	assert.True(t, uuid.Valid("0190a0b4-7f3e-7c2a-9d1e-2b3c4d5e6f70"))
	assert.True(t, uuid.Valid("0190A0B4-7F3E-7C2A-9D1E-2B3C4D5E6F70"))
	assert.False(t, uuid.Valid(""))
	assert.False(t, uuid.Valid("B1"))
	assert.False(t, uuid.Valid("urn:uuid:0190a0b4-7f3e-7c2a-9d1e-2b3c4d5e6f70"))
}
