// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texellaunch configuration and data.

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texellaunch"), nil
}

// Dir returns the directory holding texellaunch's configuration.
func Dir() (string, error) { return configRoot() }

func systemConfigPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

func appConfigPath(app string) (string, error) {
	if app == "" {
		return "", fmt.Errorf("app name is required")
	}
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "apps", app, "config.json"), nil
}

// HistoryPath is the default location of the launch history database.
func HistoryPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "texellaunch", "history.db"), nil
}

// AppDirs lists directories scanned for application manifests, most
// specific first.
func AppDirs() []string {
	var dirs []string
	if root, err := configRoot(); err == nil {
		dirs = append(dirs, filepath.Join(root, "entries"))
	}
	if data := os.Getenv("XDG_DATA_HOME"); data != "" {
		dirs = append(dirs, filepath.Join(data, "texellaunch", "entries"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "texellaunch", "entries"))
	}
	return dirs
}
