// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texellaunch/dump.go
// Summary: Renders one launcher frame to stdout without taking over the terminal.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texellaunch/apps/launcher"
	"github.com/framegrace/texellaunch/config"
	"github.com/framegrace/texellaunch/internal/teahost"
)

func newDumpCmd(ro *rootOptions) *cobra.Command {
	var (
		width, height int
		query         string
		stdin         bool
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print a single launcher frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			mode := "run"
			var entries []launcher.Entry
			if stdin {
				mode = "dmenu"
				lines, err := launcher.ReadLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
				entries = lines
			} else {
				reg, err := loadRegistry(config.Effective(mode))
				if err != nil {
					return err
				}
				entries = launcher.EntriesFromRegistry(reg)
			}

			opts, err := launcherOptions(cmd, ro, mode)
			if err != nil {
				return err
			}
			l, err := launcher.New(ctx, entries, opts)
			if err != nil {
				return err
			}
			if query != "" {
				l.SetInput(query)
			}

			w, h := dumpSize(width, height)
			fmt.Fprintln(cmd.OutOrStdout(), teahost.RenderString(l, w, h))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "frame width (default: terminal width or 80)")
	cmd.Flags().IntVar(&height, "height", 0, "frame height (default: 20)")
	cmd.Flags().StringVar(&query, "query", "", "filter text to type before rendering")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "read entries from stdin as dmenu does")
	return cmd
}

// dumpSize fills unset dimensions from the terminal on stdout.
func dumpSize(w, h int) (int, int) {
	if w <= 0 {
		w = 80
		if isTerminal(os.Stdout) {
			if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
				w = tw
			}
		}
	}
	if h <= 0 {
		h = 20
	}
	return w, h
}
