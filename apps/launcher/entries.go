// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/launcher/entries.go
// Summary: Builds launcher entries from the registry or from plain lines.

package launcher

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/framegrace/texellaunch/registry"
)

// EntriesFromRegistry lists every registry entry.
func EntriesFromRegistry(reg *registry.Registry) []Entry {
	if reg == nil {
		return nil
	}
	apps := reg.List()
	out := make([]Entry, 0, len(apps))
	for _, app := range apps {
		m := app.Manifest
		cmd := m.Command
		if m.Type == registry.AppTypeExternal {
			cmd = m.BinaryPath(app.Dir)
		}
		out = append(out, Entry{
			Name:        m.Name,
			Display:     m.DisplayName,
			Description: m.Description,
			Icon:        m.Icon,
			Command:     cmd,
			Args:        m.Args,
			Terminal:    m.Terminal,
			Urgent:      m.Urgent,
			Active:      m.Active,
		})
	}
	return out
}

// ReadLines turns each non-empty line of r into an entry, as dmenu does.
func ReadLines(r io.Reader) ([]Entry, error) {
	var out []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		out = append(out, Entry{Name: line, Display: line})
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("read entries: %w", err)
	}
	return out, nil
}
