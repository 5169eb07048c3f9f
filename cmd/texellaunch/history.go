// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texellaunch/history.go
// Summary: Shows and prunes the launch history of a mode.

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/framegrace/texellaunch/config"
)

func newHistoryCmd() *cobra.Command {
	var (
		mode   string
		limit  int
		forget string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recently launched entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !config.KnownMode(mode) {
				return fmt.Errorf("unknown mode %q (have %s)", mode, strings.Join(config.Modes(), ", "))
			}
			ctx := cmd.Context()
			store := openHistory(ctx, config.Effective(mode), mode)
			if store == nil {
				return errors.New("history is disabled or unavailable")
			}
			defer store.Close()

			if forget != "" {
				return store.Forget(ctx, forget)
			}
			entries, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%d\t%s\t%s\n", e.Count, e.LastUsed.Format(time.DateTime), e.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "run", "mode whose history is shown")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of entries")
	cmd.Flags().StringVar(&forget, "forget", "", "remove the named entry instead of listing")
	return cmd
}
