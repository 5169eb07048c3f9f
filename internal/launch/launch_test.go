// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build unix

package launch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCommandStringAndEnv(t *testing.T) {
	c := Command{Path: "echo", Args: []string{"a", "b"}, Env: map[string]string{"B": "2", "A": "1"}}
	assert.Equal(t, "echo a b", c.String())
	env := c.Environ()
	require.GreaterOrEqual(t, len(env), 2)
	assert.Equal(t, []string{"A=1", "B=2"}, env[len(env)-2:])
}

func TestRunRejectsEmptyCommand(t *testing.T) {
	r := &Runner{}
	assert.Error(t, r.Run(context.Background(), Command{}))
}

func TestStartDetached(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	r := &Runner{}
	err := r.Run(context.Background(), Command{
		Path: "/bin/sh",
		Args: []string{"-c", "echo \"$GREETING\" > " + out},
		Env:  map[string]string{"GREETING": "hello"},
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && strings.TrimSpace(string(data)) == "hello"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestStartMissingBinary(t *testing.T) {
	r := &Runner{}
	err := r.Start(context.Background(), Command{Path: "/nonexistent/texellaunch-test"})
	assert.Error(t, err)
}

func TestStartHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{}
	assert.ErrorIs(t, r.Start(ctx, Command{Path: "/bin/true"}), context.Canceled)
}

func TestTerminalUsesEmulator(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	r := &Runner{Emulator: []string{"/bin/sh", "-c", "echo \"$0 $1\" > " + out}}
	err := r.Run(context.Background(), Command{Path: "htop", Args: []string{"-d"}, Terminal: true})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && strings.TrimSpace(string(data)) == "htop -d"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestAttachCapturesOutput(t *testing.T) {
	out := &syncBuffer{}
	r := &Runner{Out: out}
	err := r.Attach(context.Background(), Command{Path: "/bin/sh", Args: []string{"-c", "echo attached"}, Terminal: true})
	if err != nil && strings.Contains(err.Error(), "start pty") {
		t.Skipf("no pty available: %v", err)
	}
	require.NoError(t, err)
	assert.Contains(t, out.String(), "attached")
}
