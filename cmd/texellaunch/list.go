// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texellaunch/list.go
// Summary: Prints the entries the run mode would offer.

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/framegrace/texellaunch/config"
	"github.com/framegrace/texellaunch/registry"
)

func newListCmd() *cobra.Command {
	var byCategory bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List launchable entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry(config.Effective("run"))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !byCategory {
				for _, app := range reg.List() {
					printEntry(cmd, app)
				}
				return nil
			}
			groups := reg.ListByCategory()
			names := make([]string, 0, len(groups))
			for name := range groups {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "[%s]\n", name)
				for _, app := range groups[name] {
					printEntry(cmd, app)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&byCategory, "by-category", false, "group entries by category")
	return cmd
}

func printEntry(cmd *cobra.Command, app *registry.AppEntry) {
	m := app.Manifest
	line := fmt.Sprintf("%s\t%s\t%s", m.Name, m.Type, m.DisplayName)
	if m.Description != "" {
		line += "\t" + m.Description
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
}
