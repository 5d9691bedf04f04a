// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readmate/internal/locale"
	"github.com/taibuivan/readmate/internal/platform/apperr"
)

func newService(t *testing.T) *locale.Service {
	t.Helper()
	dictionary, err := locale.Embedded()
	require.NoError(t, err)
	return locale.NewService(dictionary, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMatch(t *testing.T) {
	service := newService(t)

	tests := []struct {
		name        string
		preferences []string
		want        string
	}{
		{"exact", []string{"vi"}, "vi"},
		{"regional_variant", []string{"en-GB"}, "en"},
		{"regional_french", []string{"fr-CA"}, "fr"},
		{"unsupported_falls_back", []string{"de"}, "en"},
		{"empty", []string{""}, "en"},
		{"none", nil, "en"},
		{"accept_language_header", []string{"", "de-DE,ja;q=0.8,en;q=0.5"}, "ja"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.Match(tt.preferences...))
		})
	}
}

func TestLookup(t *testing.T) {
	service := newService(t)

	strings, err := service.Lookup("shelf", "fr")
	require.NoError(t, err)
	assert.Equal(t, "fr", strings.Language)
	assert.Equal(t, "Mes livres", strings.Entries["title"])

	strings, err = service.Lookup("shelf", "ja")
	require.NoError(t, err)
	assert.Equal(t, "私の本", strings.Entries["title"])
	assert.Equal(t, "Book removed", strings.Entries["removed"], "missing translation uses English")

	english, err := service.Lookup("shelf", "en")
	require.NoError(t, err)
	assert.Len(t, strings.Entries, len(english.Entries))
}

func TestLookup_UnknownSection(t *testing.T) {
	_, err := newService(t).Lookup("settings", "en")
	assert.True(t, apperr.IsNotFound(err))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "languages: [\n"},
		{"no_languages", "sections: {}\n"},
		{"fallback_not_first", "languages:\n  - code: fr\n  - code: en\n"},
		{"key_without_fallback", "languages:\n  - code: en\nsections:\n  shelf:\n    title:\n      fr: Livres\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := locale.Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestHandler_Lookup(t *testing.T) {
	router := locale.NewHandler(newService(t)).Routes()

	request := httptest.NewRequest(http.MethodGet, "/sessions?lang=vi", nil)
	request.Header.Set("Accept-Language", "fr")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "vi", recorder.Header().Get("Content-Language"))

	var body struct {
		Data locale.Strings `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Khách", body.Data.Entries["guest"])

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
