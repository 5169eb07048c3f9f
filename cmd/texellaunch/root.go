// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texellaunch/root.go
// Summary: Root cobra command, persistent flags and logging setup.

package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texellaunch/apps/launcher"
	"github.com/framegrace/texellaunch/config"
	"github.com/framegrace/texellaunch/filter"
	"github.com/framegrace/texellaunch/internal/devshell"
	"github.com/framegrace/texellaunch/internal/logging"
	"github.com/framegrace/texellaunch/internal/teahost"
	"github.com/framegrace/texellaunch/texelui/core"
)

const fullscreenAnnotation = "fullscreen"

// rootOptions holds the persistent flags. View flags only override the
// configuration when set on the command line.
type rootOptions struct {
	debug    bool
	host     string
	lines    int
	columns  int
	cycle    bool
	scroll   string
	reverse  bool
	multi    bool
	matching string
	sort     bool
}

// hostApp runs app until it finishes. Tests replace it to drive the
// launcher without a terminal.
var hostApp = func(ctx context.Context, host string, app core.App, stdoutIsResult bool) error {
	switch host {
	case "", "tcell":
		return devshell.Run(ctx, app)
	case "tea":
		var opts []tea.ProgramOption
		if stdoutIsResult {
			opts = append(opts, tea.WithInputTTY(), tea.WithOutput(os.Stderr))
		}
		return teahost.Run(ctx, app, opts...)
	}
	return fmt.Errorf("unknown host %q", host)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "texellaunch",
		Short:         "Keyboard driven application launcher and dmenu replacement",
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{fullscreenAnnotation: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd, opts.debug)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logging.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode := config.System().GetString("", "defaultMode", "run")
			if mode == "dmenu" {
				return runDmenu(cmd, opts)
			}
			return runLauncher(cmd, opts, mode)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	pf.StringVar(&opts.host, "host", "tcell", "terminal host: tcell or tea")
	pf.IntVar(&opts.lines, "lines", 0, "number of visible list rows")
	pf.IntVar(&opts.columns, "columns", 0, "number of list columns")
	pf.BoolVar(&opts.cycle, "cycle", true, "wrap navigation past the first and last rows")
	pf.StringVar(&opts.scroll, "scroll", "", "scroll method: per-page or continuous")
	pf.BoolVar(&opts.reverse, "reverse", false, "draw the list bottom to top with the input last")
	pf.BoolVar(&opts.multi, "multi-select", false, "allow marking several entries")
	pf.StringVar(&opts.matching, "matching", "", "matching method: normal, prefix, fuzzy, glob or regex")
	pf.BoolVar(&opts.sort, "sort", false, "sort matches by closeness to the query")

	cmd.AddCommand(
		newRunCmd(opts),
		newDmenuCmd(opts),
		newListCmd(),
		newHistoryCmd(),
		newDumpCmd(opts),
		newConfigCmd(),
	)
	return cmd
}

// setupLogging configures zerolog from the logging section. Full screen
// commands only log to a file; the others may log to stderr.
func setupLogging(cmd *cobra.Command, debug bool) error {
	cfg := config.System()
	lo := logging.Options{
		Level: cfg.GetString("logging", "level", "info"),
		File:  cfg.GetString("logging", "file", ""),
	}
	if debug {
		lo.Level = "debug"
		if lo.File == "" && isFullscreen(cmd) {
			lo.File = logging.DefaultFile()
		}
	}
	lo.Console = !isFullscreen(cmd)
	if err := logging.Init(lo); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	if err := config.Err(); err != nil {
		log := logging.Component("config")
		log.Warn().Err(err).Msg("using defaults for unreadable configuration")
	}
	return nil
}

func isFullscreen(cmd *cobra.Command) bool {
	return cmd.Annotations[fullscreenAnnotation] == "true"
}

// launcherOptions reads the effective configuration for mode and applies
// the view flags that were set explicitly.
func launcherOptions(cmd *cobra.Command, ro *rootOptions, mode string) (launcher.Options, error) {
	o, err := launcher.OptionsFromConfig(mode, config.Effective(mode))
	if err != nil {
		return o, err
	}
	flags := cmd.Flags()
	if flags.Changed("lines") {
		o.List.Lines = ro.lines
		if o.List.MaxLines < ro.lines {
			o.List.MaxLines = ro.lines
		}
	}
	if flags.Changed("columns") {
		o.List.Columns = ro.columns
	}
	if flags.Changed("cycle") {
		o.List.Cycle = ro.cycle
	}
	if flags.Changed("scroll") {
		st, err := launcher.ParseScrollMethod(ro.scroll)
		if err != nil {
			return o, err
		}
		o.List.Scroll = st
	}
	if flags.Changed("reverse") {
		o.List.Reverse = ro.reverse
	}
	if flags.Changed("multi-select") {
		o.MultiSelect = ro.multi
	}
	if flags.Changed("matching") {
		m, err := filter.ParseMethod(ro.matching)
		if err != nil {
			return o, err
		}
		o.Matching = m
	}
	if flags.Changed("sort") {
		o.Sort = ro.sort
	}
	return o, nil
}
