// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid issues the identifiers of Readmate records.

Ids are UUIDv7 strings, so primary keys of users, books and sessions sort by
creation time and stay compatible with PostgreSQL's uuid type.
*/
package uuid

import "github.com/google/uuid"

// New returns a fresh UUIDv7 string. It panics only if the system entropy
// source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s is a UUID in its canonical 36-character form.
func Valid(s string) bool {
	if len(s) != 36 {
		return false
	}
	return uuid.Validate(s) == nil
}
