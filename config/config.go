// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Process-wide cache of texellaunch.json and the per-mode files.
// Usage: Effective(mode) is what the launcher reads; Set edits a file on disk.

package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/framegrace/texellaunch/internal/logging"
)

const systemConfigName = "texellaunch.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

type store struct {
	mu     sync.RWMutex
	system Config
	err    error
	modes  map[string]Config
}

var (
	once   sync.Once
	active *store
)

func current() *store {
	once.Do(func() {
		active = &store{}
		active.load()
	})
	return active
}

// load rereads the system file and drops cached modes. Callers hold mu or
// own s exclusively.
func (s *store) load() {
	s.system, s.err = loadSystem()
	s.modes = make(map[string]Config)
}

func (s *store) mode(name string) Config {
	s.mu.RLock()
	cfg, ok := s.modes[name]
	s.mu.RUnlock()
	if ok {
		return cfg
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg, ok := s.modes[name]; ok {
		return cfg
	}
	cfg, err := loadMode(name)
	if err != nil {
		logging.Component("config").Warn().Err(err).Str("mode", name).Msg("mode config unusable, using defaults")
	}
	s.modes[name] = cfg
	return cfg
}

// Err returns the error from the last system config load, if any.
func Err() error {
	s := current()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// System returns texellaunch.json with defaults filled in.
func System() Config {
	s := current()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.system
}

// App returns apps/<mode>/config.json with defaults filled in. Modes are
// loaded on first use.
func App(mode string) Config {
	if mode == "" {
		return nil
	}
	return current().mode(mode)
}

// Reload rereads the system file and forgets every cached mode.
func Reload() error {
	s := current()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.err
}

// Effective returns the system config with the named mode's sections laid
// over it key by key. The result is a copy.
func Effective(mode string) Config {
	out := Clone(System())
	if out == nil {
		out = make(Config)
	}
	overlay(out, App(mode))
	return out
}

// Set writes value under key in the system file, or in the mode's file when
// mode is not empty. key is "section.name", or a bare name for top-level
// keys such as defaultMode. A file that does not parse is not rewritten.
func Set(mode, key string, value interface{}) error {
	section, name, found := strings.Cut(key, ".")
	if !found {
		section, name = "", key
	}
	if name == "" || strings.Contains(name, ".") {
		return fmt.Errorf("config key %q: want section.name or name", key)
	}

	var (
		path    string
		err     error
		shipped Config
	)
	if mode == "" {
		path, err = systemConfigPath()
		shipped = defaultSystemConfig()
	} else {
		if !KnownMode(mode) {
			return fmt.Errorf("unknown mode %q", mode)
		}
		path, err = appConfigPath(mode)
		shipped = defaultAppConfig(mode)
	}
	if err != nil {
		return err
	}

	s := current()
	s.mu.Lock()
	defer s.mu.Unlock()

	disk, exists, err := readConfig(path)
	if err != nil {
		return fmt.Errorf("not rewriting %s: %w", path, err)
	}
	if !exists || len(disk) == 0 {
		disk = shipped
	}
	if disk == nil {
		disk = make(Config)
	}
	if section == "" {
		disk[name] = value
	} else {
		sec := disk.Section(section)
		if sec == nil {
			sec = make(Section)
			disk[section] = sec
		}
		sec[name] = value
	}
	if err := writeConfig(path, disk); err != nil {
		return err
	}

	if mode == "" {
		s.load()
		return s.err
	}
	delete(s.modes, mode)
	return nil
}
