// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/builtins.go
// Summary: Supports init-time registration of built-in entries and wrappers.

package registry

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/framegrace/texellaunch/internal/launch"
)

// BuiltInProvider returns a manifest and factory for a registry instance.
type BuiltInProvider func(reg *Registry) (*Manifest, AppFactory)

var (
	builtInMu        sync.RWMutex
	builtInProviders []BuiltInProvider
)

// RegisterBuiltInProvider registers an init-time built-in provider.
func RegisterBuiltInProvider(provider BuiltInProvider) {
	if provider == nil {
		return
	}
	builtInMu.Lock()
	builtInProviders = append(builtInProviders, provider)
	builtInMu.Unlock()
}

// RegisterBuiltIns registers all init-time built-ins and the standard
// wrapper factories into the provided registry.
func RegisterBuiltIns(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterWrapperFactory("terminal", terminalWrapper)
	reg.RegisterWrapperFactory("shell", shellWrapper)

	builtInMu.RLock()
	providers := append([]BuiltInProvider(nil), builtInProviders...)
	builtInMu.RUnlock()

	for _, provider := range providers {
		manifest, factory := provider(reg)
		if manifest == nil || factory == nil {
			continue
		}
		reg.RegisterBuiltIn(manifest, factory)
	}
}

// terminalWrapper runs the manifest command attached to a pty.
func terminalWrapper(m *Manifest) (launch.Command, error) {
	return launch.Command{
		Path:     m.Command,
		Args:     append([]string(nil), m.Args...),
		Env:      m.Env,
		Terminal: true,
	}, nil
}

// shellWrapper runs the manifest command line through $SHELL -c.
func shellWrapper(m *Manifest) (launch.Command, error) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	line := strings.TrimSpace(strings.Join(append([]string{m.Command}, m.Args...), " "))
	if line == "" {
		return launch.Command{}, fmt.Errorf("shell wrapper for %s has no command", m.Name)
	}
	return launch.Command{
		Path:     shell,
		Args:     []string{"-c", line},
		Env:      m.Env,
		Terminal: m.Terminal,
	}, nil
}
