// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texellaunch/configcmd.go
// Summary: Shows and edits the config files from the command line.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/framegrace/texellaunch/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}
	cmd.AddCommand(newConfigPathCmd(), newConfigShowCmd(), newConfigSetCmd())
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := config.Dir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	var mode, format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the settings a mode runs with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !config.KnownMode(mode) {
				return fmt.Errorf("unknown mode %q", mode)
			}
			cfg := config.Effective(mode)
			var (
				data []byte
				err  error
			)
			switch format {
			case "json":
				data, err = json.MarshalIndent(cfg, "", "  ")
				data = append(data, '\n')
			case "yaml":
				data, err = yaml.Marshal(map[string]interface{}(cfg))
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "run", "mode whose settings are shown")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a setting, e.g. set launcher.terminal '[\"foot\",\"-e\"]'",
		Long: "Store a setting in texellaunch.json, or in the mode's file with --mode.\n" +
			"VALUE is read as JSON when it parses and as a plain string otherwise.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Set(mode, args[0], parseValue(args[1]))
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "write the mode's file instead of texellaunch.json")
	return cmd
}

// parseValue reads s as JSON so numbers, booleans and lists keep their
// type. Anything else is a string.
func parseValue(s string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v
	}
	return s
}
