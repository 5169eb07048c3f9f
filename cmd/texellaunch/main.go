// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texellaunch/main.go
// Summary: Entry point for the texellaunch application launcher.
// Usage: texellaunch [run|dmenu|list|history|dump] [flags]

package main

import (
	"errors"
	"fmt"
	"os"
)

// exitError carries a process exit status without an error message, as
// dmenu does when the user cancels.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	err := newRootCmd().Execute()
	if err == nil {
		return
	}
	var ee *exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	fmt.Fprintln(os.Stderr, "texellaunch:", err)
	os.Exit(1)
}
