// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package locale serves the UI string tables of the shelf client.

The dictionary is embedded at build time and organised as
section → key → language → text. Lookups resolve the caller's language tag
against the supported set, and any key without a translation falls back to
English.
*/
package locale

// Language represents a language the dictionary carries translations for.
type Language struct {
	Code       string `json:"code"       yaml:"code"`
	Name       string `json:"name"       yaml:"name"`
	NativeName string `json:"native_name" yaml:"native_name"`
}

// Strings is the flattened key → text table of one section in one language.
type Strings struct {
	Section  string            `json:"section"`
	Language string            `json:"language"`
	Entries  map[string]string `json:"strings"`
}
