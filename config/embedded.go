// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Parses the shipped defaults once and hands out copies.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/framegrace/texellaunch/defaults"
	"github.com/framegrace/texellaunch/internal/logging"
)

type shippedFile struct {
	cfg Config
	err error
}

var (
	shippedMu sync.Mutex
	// Keyed by mode; "" is texellaunch.json.
	shippedCache = make(map[string]shippedFile)
)

func parseShipped(mode string) (Config, error) {
	shippedMu.Lock()
	defer shippedMu.Unlock()
	if s, ok := shippedCache[mode]; ok {
		return s.cfg, s.err
	}

	var (
		data []byte
		err  error
	)
	if mode == "" {
		data, err = defaults.SystemConfig()
	} else {
		data, err = defaults.ModeConfig(mode)
	}
	var cfg Config
	if err == nil {
		if jerr := json.Unmarshal(data, &cfg); jerr != nil {
			err = fmt.Errorf("shipped config %q: %w", mode, jerr)
		}
	}
	shippedCache[mode] = shippedFile{cfg: cfg, err: err}
	return cfg, err
}

// defaultSystemConfig returns a private copy of the shipped system config,
// or nil if it cannot be parsed.
func defaultSystemConfig() Config {
	cfg, err := parseShipped("")
	if err != nil {
		return nil
	}
	return Clone(cfg)
}

// defaultAppConfig returns a private copy of a mode's shipped config. Modes
// that ship nothing return nil and are never written to disk.
func defaultAppConfig(mode string) Config {
	cfg, err := parseShipped(mode)
	if err != nil {
		if !errors.Is(err, defaults.ErrNoMode) {
			logging.Component("config").Warn().Err(err).Str("mode", mode).Msg("bad shipped config")
		}
		return nil
	}
	return Clone(cfg)
}

// Modes lists the modes with shipped defaults.
func Modes() []string {
	return defaults.Modes()
}

// KnownMode reports whether mode ships defaults.
func KnownMode(mode string) bool {
	for _, m := range defaults.Modes() {
		if m == mode {
			return true
		}
	}
	return false
}
