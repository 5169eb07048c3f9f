// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Reading, seeding and writing the JSON config files.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/framegrace/texellaunch/internal/logging"
)

func loadSystem() (Config, error) {
	log := logging.Component("config")
	path, err := systemConfigPath()
	if err != nil {
		log.Warn().Err(err).Msg("no config directory")
		cfg := make(Config)
		applySystemDefaults(cfg)
		return cfg, err
	}

	cfg, err := loadFile(path, defaultSystemConfig(), applySystemDefaults, true)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("system config")
	} else {
		log.Debug().Str("path", path).Msg("loaded system config")
	}
	return cfg, err
}

func loadMode(name string) (Config, error) {
	apply := func(cfg Config) { applyAppDefaults(name, cfg) }
	path, err := appConfigPath(name)
	if err != nil {
		cfg := make(Config)
		apply(cfg)
		return cfg, err
	}
	shipped := defaultAppConfig(name)
	// Modes without shipped defaults are never written to disk.
	return loadFile(path, shipped, apply, shipped != nil)
}

// loadFile reads path and fills gaps with apply. A missing or empty file
// starts from shipped and is written back when seed is set. A file that
// does not parse is left alone so the user can fix it.
func loadFile(path string, shipped Config, apply func(Config), seed bool) (Config, error) {
	cfg, exists, err := readConfig(path)
	fresh := !exists || len(cfg) == 0
	if fresh {
		cfg = shipped
	}
	if cfg == nil {
		cfg = make(Config)
	}
	apply(cfg)
	if fresh && seed && err == nil {
		err = writeConfig(path, cfg)
	}
	return cfg, err
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
