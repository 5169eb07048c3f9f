// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/launch/launch_unix.go
// Summary: Session detachment and window size forwarding on unix.

//go:build unix

package launch

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
)

func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

// watchResize copies the size of tty to ptmx now and on every SIGWINCH.
func watchResize(tty, ptmx *os.File) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				_ = pty.InheritSize(tty, ptmx)
			case <-done:
				return
			}
		}
	}()
	ch <- syscall.SIGWINCH
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
