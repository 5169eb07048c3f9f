// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/launcher/register.go
// Summary: Registers the launcher's built-in entries with the registry.

package launcher

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/framegrace/texellaunch/config"
	"github.com/framegrace/texellaunch/internal/launch"
	"github.com/framegrace/texellaunch/registry"
)

func init() {
	registry.RegisterBuiltInProvider(func(reg *registry.Registry) (*registry.Manifest, registry.AppFactory) {
		return &registry.Manifest{
			Name:        "texellaunch-config",
			DisplayName: "Edit launcher settings",
			Description: "Open texellaunch.json in $EDITOR",
			Icon:        "⚙",
			Category:    "system",
			Terminal:    true,
		}, editConfig
	})
}

func editConfig() (launch.Command, error) {
	dir, err := config.Dir()
	if err != nil {
		return launch.Command{}, fmt.Errorf("config dir: %w", err)
	}
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}
	return launch.Command{
		Path:     editor,
		Args:     []string{filepath.Join(dir, "texellaunch.json")},
		Terminal: true,
	}, nil
}
