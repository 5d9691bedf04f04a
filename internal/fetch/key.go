// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key identifies one cached resource: a path-like string, optionally paired with
// the caller's auth token. The zero Key means "identifier unresolved" and never
// triggers a fetch.
type Key struct {
	Path  string
	Token string
}

// KeyFor joins identifier segments into a resource path ("/users/42/list").
//
// If any segment is empty the zero [Key] is returned, so callers can pass ids
// straight from possibly-unauthenticated state without checking them first.
func KeyFor(segments ...string) Key {
	if len(segments) == 0 {
		return Key{}
	}
	for _, segment := range segments {
		if segment == "" {
			return Key{}
		}
	}
	return Key{Path: "/" + strings.Join(segments, "/")}
}

// WithToken pairs the key with an auth token. An empty token yields the zero Key.
func (k Key) WithToken(token string) Key {
	if k.IsZero() || token == "" {
		return Key{}
	}
	return Key{Path: k.Path, Token: token}
}

// IsZero reports whether the key is unresolved.
func (k Key) IsZero() bool {
	return k.Path == ""
}

// String returns the storage identifier. Tokens are digested so raw credentials
// never end up in a cache backend.
func (k Key) String() string {
	if k.Token == "" {
		return k.Path
	}
	sum := sha256.Sum256([]byte(k.Token))
	return k.Path + "#" + hex.EncodeToString(sum[:8])
}
