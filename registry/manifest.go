// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/manifest.go
// Summary: Defines the launcher entry manifest and its loading and validation.
// Usage: Entry directories carry a manifest.json or manifest.yaml file.

package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// AppType specifies how an entry is started.
type AppType string

const (
	// AppTypeBuiltIn is registered in code and computes its command at launch.
	AppTypeBuiltIn AppType = "built-in"

	// AppTypeWrapper runs Command through another entry's wrapper factory.
	// Example: htop = terminal wrapper with "htop" command
	AppTypeWrapper AppType = "wrapper"

	// AppTypeCommand runs Command, resolved through $PATH.
	AppTypeCommand AppType = "command"

	// AppTypeExternal runs a binary shipped next to the manifest.
	AppTypeExternal AppType = "external"

	// AppTypePath is an executable discovered on $PATH.
	AppTypePath AppType = "path"
)

var manifestNames = []string{"manifest.json", "manifest.yaml", "manifest.yml"}

// Manifest describes a launchable entry.
type Manifest struct {
	// Name is the unique identifier for this entry (e.g., "htop", "firefox")
	Name string `json:"name" yaml:"name"`

	// DisplayName is shown in the list; defaults to Name.
	DisplayName string `json:"displayName" yaml:"displayName"`

	Description string `json:"description" yaml:"description"`

	// Version follows semantic versioning. When two manifests share a name
	// the higher version wins.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	Type AppType `json:"type,omitempty" yaml:"type,omitempty"`

	// Wraps names the wrapper factory used for wrapper entries (e.g., "terminal").
	Wraps string `json:"wraps,omitempty" yaml:"wraps,omitempty"`

	Command string            `json:"command,omitempty" yaml:"command,omitempty"`
	Args    []string          `json:"args,omitempty" yaml:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`

	// Binary is relative to the manifest directory (external entries only).
	Binary string `json:"binary,omitempty" yaml:"binary,omitempty"`

	// Terminal entries run attached to a pseudo terminal.
	Terminal bool `json:"terminal,omitempty" yaml:"terminal,omitempty"`

	Icon     string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Urgent and Active select the row highlight in the list.
	Urgent bool `json:"urgent,omitempty" yaml:"urgent,omitempty"`
	Active bool `json:"active,omitempty" yaml:"active,omitempty"`
}

// LoadManifest reads the first manifest file found in dir.
func LoadManifest(dir string) (*Manifest, error) {
	for _, name := range manifestNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
		return ParseManifest(name, data)
	}
	return nil, fmt.Errorf("no manifest in %s: %w", dir, fs.ErrNotExist)
}

// ParseManifest decodes manifest data; the format follows the file extension.
func ParseManifest(name string, data []byte) (*Manifest, error) {
	var m Manifest
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
	}

	if m.Name == "" {
		return nil, fmt.Errorf("manifest missing required field: name")
	}
	if m.DisplayName == "" {
		m.DisplayName = m.Name
	}
	if m.Type == "" {
		if m.Command != "" {
			m.Type = AppTypeCommand
		} else {
			m.Type = AppTypeExternal
		}
	}
	return &m, nil
}

// SemVer parses Version. Manifests without a version compare as 0.0.0.
func (m *Manifest) SemVer() (*semver.Version, error) {
	if m.Version == "" {
		return semver.NewVersion("0.0.0")
	}
	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", m.Version, err)
	}
	return v, nil
}

// Validate checks that the manifest is well-formed.
func (m *Manifest) Validate(dir string) error {
	if m.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if _, err := m.SemVer(); err != nil {
		return err
	}

	switch m.Type {
	case AppTypeWrapper:
		if m.Wraps == "" {
			return fmt.Errorf("wrapper entry must specify 'wraps' field")
		}
		if m.Command == "" {
			return fmt.Errorf("wrapper entry must specify 'command' field")
		}

	case AppTypeCommand:
		if m.Command == "" {
			return fmt.Errorf("command entry must specify 'command' field")
		}

	case AppTypeExternal:
		if m.Binary == "" {
			return fmt.Errorf("external entry must specify 'binary' field")
		}
		if _, err := os.Stat(m.BinaryPath(dir)); err != nil {
			return fmt.Errorf("binary not found: %s (%w)", m.Binary, err)
		}

	case AppTypeBuiltIn, AppTypePath:
		// Only created in code.

	default:
		return fmt.Errorf("unknown entry type: %s", m.Type)
	}

	return nil
}

// BinaryPath returns the absolute path to the entry's binary.
func (m *Manifest) BinaryPath(dir string) string {
	return filepath.Join(dir, m.Binary)
}
