// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texellaunch/dmenu.go
// Summary: The dmenu mode: choose among stdin lines and print the choice.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framegrace/texellaunch/apps/launcher"
	"github.com/framegrace/texellaunch/config"
)

func newDmenuCmd(ro *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dmenu",
		Short: "Read entries from stdin and print the chosen ones",
		Long: `Read one entry per line from stdin and print the chosen entries to stdout.
With no match, or with accept-custom, the typed text is printed instead.
Exits with status 1 when cancelled.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{fullscreenAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDmenu(cmd, ro)
		},
	}
}

func runDmenu(cmd *cobra.Command, ro *rootOptions) error {
	ctx := cmd.Context()

	entries, err := launcher.ReadLines(cmd.InOrStdin())
	if err != nil {
		return err
	}
	opts, err := launcherOptions(cmd, ro, "dmenu")
	if err != nil {
		return err
	}
	if store := openHistory(ctx, config.Effective("dmenu"), "dmenu"); store != nil {
		defer store.Close()
		opts.History = store
	}

	l, err := launcher.New(ctx, entries, opts)
	if err != nil {
		return err
	}
	if err := hostApp(ctx, ro.host, l, true); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	res := l.Result()
	switch res.Outcome {
	case launcher.Accepted:
		for _, e := range res.Entries {
			fmt.Fprintln(out, e.Name)
		}
	case launcher.AcceptedCustom:
		fmt.Fprintln(out, res.Input)
	default:
		return &exitError{code: 1}
	}
	return nil
}
