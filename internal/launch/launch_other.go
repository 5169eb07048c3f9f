// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/launch/launch_other.go
// Summary: Fallbacks for platforms without sessions or SIGWINCH.

//go:build !unix

package launch

import (
	"os"
	"os/exec"
)

func detach(cmd *exec.Cmd) {}

func watchResize(tty, ptmx *os.File) func() { return func() {} }
