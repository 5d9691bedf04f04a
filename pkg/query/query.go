// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-style URL query parameters.
package query

import "strings"

// StringSlice splits a comma-separated parameter ("a, b,,a") into trimmed,
// de-duplicated values in first-seen order. An empty input yields nil.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}

	var res []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(val, ",") {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		res = append(res, clean)
	}
	return res
}
