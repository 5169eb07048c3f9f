// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texellaunch/main_test.go
// Summary: Drives the CLI with a scripted host in place of a terminal.

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texellaunch/apps/launcher"
	"github.com/framegrace/texellaunch/config"
	"github.com/framegrace/texellaunch/internal/launch"
	"github.com/framegrace/texellaunch/texelui/core"
)

// setupEnv points every config, cache and data directory at a temp dir
// and leaves one executable on PATH.
func setupEnv(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("SHELL", "/bin/sh")

	bin := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "hello-tool"), []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("PATH", bin)

	require.NoError(t, config.Reload())
	return root
}

// enableDmenuHistory turns history on in the dmenu mode config.
func enableDmenuHistory(t *testing.T, root string) {
	t.Helper()
	dir := filepath.Join(root, "config", "texellaunch", "apps", "dmenu")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"launcher":{"history":true}}`), 0o644))
	require.NoError(t, config.Reload())
	require.True(t, config.Effective("dmenu").GetBool("launcher", "history", false))
}

func writeManifest(t *testing.T, root, name, body string) {
	t.Helper()
	dir := filepath.Join(root, "data", "texellaunch", "entries", name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(body), 0o644))
}

// scriptHost replaces the terminal host with fn, which drives the launcher.
func scriptHost(t *testing.T, fn func(l *launcher.Launcher)) {
	t.Helper()
	prev := hostApp
	hostApp = func(ctx context.Context, host string, app core.App, stdoutIsResult bool) error {
		l, ok := app.(*launcher.Launcher)
		require.True(t, ok)
		l.Resize(60, 20)
		fn(l)
		return nil
	}
	t.Cleanup(func() { hostApp = prev })
}

func recordLaunches(t *testing.T) *[]launch.Command {
	t.Helper()
	var got []launch.Command
	prev := launchCommand
	launchCommand = func(ctx context.Context, r *launch.Runner, c launch.Command) error {
		got = append(got, c)
		return nil
	}
	t.Cleanup(func() { launchCommand = prev })
	return &got
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDmenuPrintsSelection(t *testing.T) {
	setupEnv(t)
	scriptHost(t, func(l *launcher.Launcher) {
		l.SetInput("bet")
		l.Do(launcher.ActionAccept)
	})

	out, err := execute(t, "alpha\nbeta\ngamma\n", "dmenu")
	require.NoError(t, err)
	assert.Equal(t, "beta\n", out)
}

func TestDmenuPrintsCustomInput(t *testing.T) {
	setupEnv(t)
	scriptHost(t, func(l *launcher.Launcher) {
		l.SetInput("delta")
		l.Do(launcher.ActionAccept)
	})

	out, err := execute(t, "alpha\nbeta\n", "dmenu")
	require.NoError(t, err)
	assert.Equal(t, "delta\n", out)
}

func TestDmenuCancelExitsOne(t *testing.T) {
	setupEnv(t)
	scriptHost(t, func(l *launcher.Launcher) { l.Do(launcher.ActionCancel) })

	out, err := execute(t, "alpha\n", "dmenu")
	var ee *exitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 1, ee.code)
	assert.Empty(t, out)
}

func TestDmenuMultiSelectFlag(t *testing.T) {
	setupEnv(t)
	scriptHost(t, func(l *launcher.Launcher) {
		l.Do(launcher.ActionToggleSelect)
		l.Do(launcher.ActionRowDown)
		l.Do(launcher.ActionRowDown)
		l.Do(launcher.ActionToggleSelect)
		l.Do(launcher.ActionAccept)
	})

	out, err := execute(t, "alpha\nbeta\ngamma\n", "dmenu", "--multi-select")
	require.NoError(t, err)
	assert.Equal(t, "alpha\ngamma\n", out)
}

func TestDmenuHistoryRanksRepeatedChoice(t *testing.T) {
	root := setupEnv(t)
	enableDmenuHistory(t, root)
	scriptHost(t, func(l *launcher.Launcher) {
		l.SetInput("gamma")
		l.Do(launcher.ActionAccept)
	})
	_, err := execute(t, "alpha\nbeta\ngamma\n", "dmenu")
	require.NoError(t, err)

	scriptHost(t, func(l *launcher.Launcher) { l.Do(launcher.ActionAccept) })
	out, err := execute(t, "alpha\nbeta\ngamma\n", "dmenu")
	require.NoError(t, err)
	assert.Equal(t, "gamma\n", out)
}

func TestDmenuHistoryOffByDefault(t *testing.T) {
	setupEnv(t)
	scriptHost(t, func(l *launcher.Launcher) {
		l.SetInput("gamma")
		l.Do(launcher.ActionAccept)
	})
	_, err := execute(t, "alpha\nbeta\ngamma\n", "dmenu")
	require.NoError(t, err)

	scriptHost(t, func(l *launcher.Launcher) { l.Do(launcher.ActionAccept) })
	out, err := execute(t, "alpha\nbeta\ngamma\n", "dmenu")
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", out)
}

func TestRunLaunchesManifestEntry(t *testing.T) {
	root := setupEnv(t)
	writeManifest(t, root, "notes", `{"name":"notes","displayName":"Notes","command":"/usr/bin/vi","args":["-R"],"terminal":true}`)
	launches := recordLaunches(t)
	scriptHost(t, func(l *launcher.Launcher) {
		l.SetInput("notes")
		l.Do(launcher.ActionAccept)
	})

	_, err := execute(t, "", "run")
	require.NoError(t, err)
	require.Len(t, *launches, 1)
	c := (*launches)[0]
	assert.Equal(t, "/usr/bin/vi", c.Path)
	assert.Equal(t, []string{"-R"}, c.Args)
	assert.True(t, c.Terminal)
}

func TestRunLaunchesPathExecutable(t *testing.T) {
	root := setupEnv(t)
	launches := recordLaunches(t)
	scriptHost(t, func(l *launcher.Launcher) {
		l.SetInput("hello")
		l.Do(launcher.ActionAccept)
	})

	_, err := execute(t, "", "run")
	require.NoError(t, err)
	require.Len(t, *launches, 1)
	assert.Equal(t, filepath.Join(root, "bin", "hello-tool"), (*launches)[0].Path)
}

func TestRunCustomInputUsesShell(t *testing.T) {
	setupEnv(t)
	launches := recordLaunches(t)
	scriptHost(t, func(l *launcher.Launcher) {
		l.SetInput("echo hi")
		l.Do(launcher.ActionAcceptCustom)
	})

	_, err := execute(t, "", "run")
	require.NoError(t, err)
	require.Len(t, *launches, 1)
	assert.Equal(t, "/bin/sh", (*launches)[0].Path)
	assert.Equal(t, []string{"-c", "echo hi"}, (*launches)[0].Args)
}

func TestRunCancelLaunchesNothing(t *testing.T) {
	setupEnv(t)
	launches := recordLaunches(t)
	scriptHost(t, func(l *launcher.Launcher) { l.Do(launcher.ActionCancel) })

	_, err := execute(t, "", "run")
	require.NoError(t, err)
	assert.Empty(t, *launches)
}

func TestListPrintsEntries(t *testing.T) {
	root := setupEnv(t)
	writeManifest(t, root, "notes", `{"name":"notes","displayName":"Notes","description":"Take notes","command":"vi","category":"dev"}`)

	out, err := execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "notes\tcommand\tNotes\tTake notes\n")
	assert.Contains(t, out, "hello-tool\tpath\thello-tool\n")

	out, err = execute(t, "", "list", "--by-category")
	require.NoError(t, err)
	assert.Contains(t, out, "[dev]\nnotes\t")
}

func TestHistoryListsAndForgets(t *testing.T) {
	setupEnv(t)
	recordLaunches(t)
	scriptHost(t, func(l *launcher.Launcher) {
		l.SetInput("hello")
		l.Do(launcher.ActionAccept)
	})
	_, err := execute(t, "", "run")
	require.NoError(t, err)

	out, err := execute(t, "", "history")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1\t"), out)
	assert.True(t, strings.HasSuffix(out, "\thello-tool\n"), out)

	out, err = execute(t, "", "history", "--mode", "dmenu")
	assert.Error(t, err, "dmenu history is disabled by default")
	assert.Empty(t, out)

	_, err = execute(t, "", "history", "--mode", "ssh")
	assert.ErrorContains(t, err, "unknown mode")

	_, err = execute(t, "", "history", "--forget", "hello-tool")
	require.NoError(t, err)
	out, err = execute(t, "", "history")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDumpRendersFrame(t *testing.T) {
	setupEnv(t)
	out, err := execute(t, "alpha\nbeta\n", "dump", "--stdin", "--width", "30", "--height", "8", "--query", "bet")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 8)
	assert.Contains(t, out, "beta")
	assert.NotContains(t, out, "alpha")
	assert.Contains(t, out, "1/2")
}

func TestBadFlagValueRejected(t *testing.T) {
	setupEnv(t)
	_, err := execute(t, "alpha\n", "dump", "--stdin", "--matching", "telepathy")
	assert.Error(t, err)
}

func TestUnknownHostRejected(t *testing.T) {
	setupEnv(t)
	_, err := execute(t, "alpha\n", "dmenu", "--host", "curses")
	assert.ErrorContains(t, err, "unknown host")
}

func TestConfigSetAndShow(t *testing.T) {
	root := setupEnv(t)

	out, err := execute(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "config", "texellaunch")+"\n", out)

	_, err = execute(t, "", "config", "set", "--mode", "dmenu", "listview.lines", "4")
	require.NoError(t, err)
	_, err = execute(t, "", "config", "set", "launcher.terminal", `["foot","-e"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"foot", "-e"}, config.System().GetStrings("launcher", "terminal"))

	out, err = execute(t, "", "config", "show", "--mode", "dmenu", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "lines: 4")
	assert.Contains(t, out, "prompt: dmenu")

	out, err = execute(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"lines": 15`)

	_, err = execute(t, "", "config", "show", "--format", "toml")
	assert.ErrorContains(t, err, "unknown format")
	_, err = execute(t, "", "config", "set", "--mode", "ssh", "launcher.prompt", "x")
	assert.ErrorContains(t, err, "unknown mode")
}
