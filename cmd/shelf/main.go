// Copyright (c) 2026 Readmate. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command shelf is the terminal client of the Readmate API.
//
// It renders the caller's reading list, switches the active book, records
// progress, and lists reading sessions. Defaults for the global flags come from
// READMATE_API, READMATE_TOKEN and READMATE_LANG.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
