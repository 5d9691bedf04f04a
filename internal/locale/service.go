// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/taibuivan/readmate/internal/platform/apperr"
)

type Service struct {
	dictionary *Dictionary
	matcher    language.Matcher
	logger     *slog.Logger
}

func NewService(dictionary *Dictionary, logger *slog.Logger) *Service {
	tags := make([]language.Tag, 0, len(dictionary.Languages))
	for _, lang := range dictionary.Languages {
		tags = append(tags, language.Make(lang.Code))
	}

	return &Service{
		dictionary: dictionary,
		matcher:    language.NewMatcher(tags),
		logger:     logger,
	}
}

func (service *Service) Languages() []Language {
	return service.dictionary.Languages
}

// Match resolves language preferences (plain tags or Accept-Language values)
// to a supported language code. The first supported language wins on no match.
func (service *Service) Match(preferences ...string) string {
	_, index := language.MatchStrings(service.matcher, preferences...)
	return service.dictionary.Languages[index].Code
}

/*
Lookup returns every string of a section in the best matching language.

Keys without a translation use the fallback text.

Returns:
  - Strings: The resolved table
  - error: apperr.NotFound when the section does not exist
*/
func (service *Service) Lookup(section string, preferences ...string) (Strings, error) {
	keys, ok := service.dictionary.Sections[section]
	if !ok {
		return Strings{}, apperr.NotFound("Locale section")
	}

	code := service.Match(preferences...)
	entries := make(map[string]string, len(keys))
	for key, texts := range keys {
		if text, ok := texts[code]; ok && text != "" {
			entries[key] = text
			continue
		}
		entries[key] = texts[FallbackLanguage]
	}

	return Strings{Section: section, Language: code, Entries: entries}, nil
}
