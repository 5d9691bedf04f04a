// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FallbackLanguage is used for unmatched tags and missing translations.
const FallbackLanguage = "en"

//go:embed dictionary.yaml
var embeddedDictionary []byte

// Dictionary is the parsed string table.
type Dictionary struct {
	Languages []Language                                `yaml:"languages"`
	Sections  map[string]map[string]map[string]string `yaml:"sections"`
}

// Embedded parses the dictionary compiled into the binary.
func Embedded() (*Dictionary, error) {
	return Parse(embeddedDictionary)
}

// Parse decodes a YAML dictionary and checks that the fallback language is
// declared and that every key has a fallback text.
func Parse(data []byte) (*Dictionary, error) {
	var dictionary Dictionary
	if err := yaml.Unmarshal(data, &dictionary); err != nil {
		return nil, fmt.Errorf("locale_dictionary_parse_failed: %w", err)
	}

	if len(dictionary.Languages) == 0 || dictionary.Languages[0].Code != FallbackLanguage {
		return nil, fmt.Errorf("locale_dictionary_invalid: %q must be the first language", FallbackLanguage)
	}

	for section, keys := range dictionary.Sections {
		for key, texts := range keys {
			if texts[FallbackLanguage] == "" {
				return nil, fmt.Errorf("locale_dictionary_invalid: %s.%s has no %q text", section, key, FallbackLanguage)
			}
		}
	}

	return &dictionary, nil
}
