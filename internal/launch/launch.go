// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/launch/launch.go
// Summary: Starts chosen entries, detached or attached to a pseudo terminal.
// Usage: The launcher resolves a Command from the registry and hands it to a Runner.

package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/framegrace/texellaunch/internal/logging"
)

// Command describes a process to start.
type Command struct {
	Path string
	Args []string
	Env  map[string]string
	Dir  string

	// Terminal commands need a tty: they run inside the configured terminal
	// emulator, or attached to the current one through a pty.
	Terminal bool
}

func (c Command) String() string {
	return strings.TrimSpace(strings.Join(append([]string{c.Path}, c.Args...), " "))
}

// Environ returns the process environment with c.Env applied on top.
func (c Command) Environ() []string {
	env := os.Environ()
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+c.Env[k])
	}
	return env
}

// Runner starts commands.
type Runner struct {
	// Emulator is the terminal emulator argv prefix for terminal commands
	// (e.g. ["foot", "-e"]). Empty attaches them to In/Out through a pty.
	Emulator []string

	In  *os.File
	Out io.Writer
}

// NewRunner returns a Runner on the process's stdin and stdout.
func NewRunner(emulator []string) *Runner {
	return &Runner{
		Emulator: emulator,
		In:       os.Stdin,
		Out:      os.Stdout,
	}
}

// Run starts c the way its kind requires. Detached commands return once
// started; attached ones block until they exit.
func (r *Runner) Run(ctx context.Context, c Command) error {
	if c.Path == "" {
		return errors.New("launch: empty command")
	}
	if !c.Terminal {
		return r.Start(ctx, c)
	}
	if len(r.Emulator) > 0 {
		wrapped := c
		wrapped.Path = r.Emulator[0]
		wrapped.Args = append(append(append([]string(nil), r.Emulator[1:]...), c.Path), c.Args...)
		wrapped.Terminal = false
		return r.Start(ctx, wrapped)
	}
	return r.Attach(ctx, c)
}

// Start runs c in its own session with no stdio and returns once the
// process exists.
func (r *Runner) Start(ctx context.Context, c Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Env = c.Environ()
	cmd.Dir = c.Dir
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", c.Path, err)
	}
	log := logging.Component("launch")
	log.Info().Str("cmd", c.String()).Int("pid", cmd.Process.Pid).Msg("started")
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debug().Err(err).Str("cmd", c.String()).Msg("detached process exited")
		}
	}()
	return nil
}

// Attach runs c on a pty wired to r.In and r.Out and waits for it. When
// r.In is a terminal it is put in raw mode and its size is forwarded.
func (r *Runner) Attach(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Env = c.Environ()
	cmd.Dir = c.Dir

	size := &pty.Winsize{Rows: 24, Cols: 80}
	interactive := r.In != nil && term.IsTerminal(int(r.In.Fd()))
	if interactive {
		if w, h, err := term.GetSize(int(r.In.Fd())); err == nil {
			size = &pty.Winsize{Rows: uint16(h), Cols: uint16(w)}
		}
	}

	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	log := logging.Component("launch")
	log.Info().Str("cmd", c.String()).Int("pid", cmd.Process.Pid).Msg("attached")

	if interactive {
		state, err := term.MakeRaw(int(r.In.Fd()))
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		defer term.Restore(int(r.In.Fd()), state)

		stop := watchResize(r.In, ptmx)
		defer stop()
	}

	if r.In != nil {
		go func() { _, _ = io.Copy(ptmx, r.In) }()
	}

	var wg sync.WaitGroup
	if r.Out != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// EIO marks the end of output once the child exits.
			_, _ = io.Copy(r.Out, ptmx)
		}()
	}

	waitErr := cmd.Wait()
	wg.Wait()
	if waitErr != nil {
		return fmt.Errorf("%s: %w", c.Path, waitErr)
	}
	return nil
}
