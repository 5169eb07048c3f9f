// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Shipped texellaunch.json and per-mode config files.

package defaults

import (
	"embed"
	"errors"
	"io/fs"
	"path"
	"sort"
)

const systemFile = "texellaunch.json"

//go:embed texellaunch.json apps/*/config.json
var files embed.FS

// ErrNoMode is returned by ModeConfig for modes that ship no defaults.
var ErrNoMode = errors.New("no shipped config for mode")

// SystemConfig returns the shipped texellaunch.json.
func SystemConfig() ([]byte, error) {
	return files.ReadFile(systemFile)
}

// ModeConfig returns the shipped apps/<mode>/config.json.
func ModeConfig(mode string) ([]byte, error) {
	if mode == "" || mode != path.Base(mode) {
		return nil, ErrNoMode
	}
	data, err := files.ReadFile(path.Join("apps", mode, "config.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoMode
	}
	return data, err
}

// Modes lists the modes that ship a config file, sorted.
func Modes() []string {
	dirs, err := files.ReadDir("apps")
	if err != nil {
		return nil
	}
	var out []string
	for _, d := range dirs {
		if d.IsDir() {
			out = append(out, d.Name())
		}
	}
	sort.Strings(out)
	return out
}
