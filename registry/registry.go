// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: Implements the entry registry: built-ins, manifest directories and $PATH.
// Usage: The launcher scans config.AppDirs() and, in run mode, $PATH.

package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/framegrace/texellaunch/internal/launch"
	"github.com/framegrace/texellaunch/internal/logging"
)

// AppFactory computes the command that starts an entry.
type AppFactory func() (launch.Command, error)

// AppEntry represents a discovered entry with its metadata and factory.
type AppEntry struct {
	Manifest *Manifest
	Dir      string
	Factory  AppFactory
}

// WrapperFactory builds the command for a wrapper manifest.
type WrapperFactory func(manifest *Manifest) (launch.Command, error)

// Registry manages the collection of launchable entries.
type Registry struct {
	mu               sync.RWMutex
	apps             map[string]*AppEntry      // name -> entry (manifest dirs)
	builtIn          map[string]*AppEntry      // name -> entry (built-ins)
	path             map[string]*AppEntry      // name -> entry ($PATH)
	wrapperFactories map[string]WrapperFactory // wraps -> factory
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		apps:             make(map[string]*AppEntry),
		builtIn:          make(map[string]*AppEntry),
		path:             make(map[string]*AppEntry),
		wrapperFactories: make(map[string]WrapperFactory),
	}
}

// RegisterWrapperFactory registers a factory for wrapper entries.
// For example, "terminal" wrappers run their command in a pty.
func (r *Registry) RegisterWrapperFactory(wrapsType string, factory WrapperFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wrapperFactories[wrapsType] = factory
	log := logging.Component("registry")
	log.Debug().Str("wraps", wrapsType).Msg("registered wrapper factory")
}

// RegisterBuiltIn registers an entry compiled into the binary.
// Built-ins have priority over scanned entries with the same name.
func (r *Registry) RegisterBuiltIn(manifest *Manifest, factory AppFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if manifest.Type == "" {
		manifest.Type = AppTypeBuiltIn
	}
	if manifest.DisplayName == "" {
		manifest.DisplayName = manifest.Name
	}
	r.builtIn[manifest.Name] = &AppEntry{
		Manifest: manifest,
		Factory:  factory,
	}
}

// Scan searches the given directories for entries. Each subdirectory holds
// one manifest. Directories are listed most specific first; when two
// manifests share a name the higher version wins, then the earlier directory.
func (r *Registry) Scan(baseDirs ...string) error {
	log := logging.Component("registry")
	found := make(map[string]*AppEntry)

	for _, baseDir := range baseDirs {
		if _, err := os.Stat(baseDir); os.IsNotExist(err) {
			log.Debug().Str("dir", baseDir).Msg("entry directory does not exist")
			continue
		}

		entries, err := os.ReadDir(baseDir)
		if err != nil {
			return fmt.Errorf("read entry directory: %w", err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			appDir := filepath.Join(baseDir, entry.Name())
			app, err := r.loadApp(appDir)
			if err != nil {
				log.Warn().Err(err).Str("dir", appDir).Msg("failed to load entry")
				continue
			}
			if existing, ok := found[app.Manifest.Name]; ok && !newer(app.Manifest, existing.Manifest) {
				continue
			}
			found[app.Manifest.Name] = app
		}
	}

	r.mu.Lock()
	r.apps = found
	builtIns := len(r.builtIn)
	r.mu.Unlock()

	log.Info().Int("entries", len(found)).Int("builtins", builtIns).Msg("scanned entry directories")
	return nil
}

func newer(a, b *Manifest) bool {
	va, errA := a.SemVer()
	vb, errB := b.SemVer()
	if errA != nil || errB != nil {
		return false
	}
	return va.GreaterThan(vb)
}

// loadApp attempts to load a single entry from a directory.
func (r *Registry) loadApp(dir string) (*AppEntry, error) {
	manifest, err := LoadManifest(dir)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	if err := manifest.Validate(dir); err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}

	var factory AppFactory
	switch manifest.Type {
	case AppTypeWrapper:
		factory = r.createWrapperFactory(manifest)
	case AppTypeCommand:
		factory = commandFactory(manifest, manifest.Command)
	case AppTypeExternal:
		factory = commandFactory(manifest, manifest.BinaryPath(dir))
	default:
		return nil, fmt.Errorf("unsupported entry type: %s", manifest.Type)
	}

	return &AppEntry{
		Manifest: manifest,
		Dir:      dir,
		Factory:  factory,
	}, nil
}

func commandFactory(m *Manifest, path string) AppFactory {
	return func() (launch.Command, error) {
		return launch.Command{
			Path:     path,
			Args:     append([]string(nil), m.Args...),
			Env:      m.Env,
			Terminal: m.Terminal,
		}, nil
	}
}

// createWrapperFactory creates a factory function for wrapper entries.
func (r *Registry) createWrapperFactory(manifest *Manifest) AppFactory {
	return func() (launch.Command, error) {
		r.mu.RLock()
		wrapperFactory, ok := r.wrapperFactories[manifest.Wraps]
		r.mu.RUnlock()
		if !ok {
			return launch.Command{}, fmt.Errorf("no wrapper %q for %s", manifest.Wraps, manifest.Name)
		}
		return wrapperFactory(manifest)
	}
}

// ScanPath adds every executable found in the colon separated dirs list.
// Earlier directories shadow later ones, as the shell would.
func (r *Registry) ScanPath(pathList string) int {
	found := make(map[string]*AppEntry)
	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if _, ok := found[name]; ok || strings.HasPrefix(name, ".") {
				continue
			}
			full := filepath.Join(dir, name)
			info, err := os.Stat(full)
			if err != nil || info.IsDir() || info.Mode().Perm()&0o111 == 0 {
				continue
			}
			m := &Manifest{Name: name, DisplayName: name, Type: AppTypePath}
			found[name] = &AppEntry{
				Manifest: m,
				Dir:      dir,
				Factory:  commandFactory(m, full),
			}
		}
	}

	r.mu.Lock()
	r.path = found
	r.mu.Unlock()

	log := logging.Component("registry")
	log.Info().Int("executables", len(found)).Msg("scanned PATH")
	return len(found)
}

// Get retrieves an entry by name: built-ins, then manifests, then $PATH.
// Returns nil if the entry doesn't exist.
func (r *Registry) Get(name string) *AppEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.builtIn[name]; ok {
		return entry
	}
	if entry, ok := r.apps[name]; ok {
		return entry
	}
	return r.path[name]
}

// List returns all entries sorted by display name. Names shadowed by a
// higher priority source appear once.
func (r *Registry) List() []*AppEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var entries []*AppEntry
	for _, src := range []map[string]*AppEntry{r.builtIn, r.apps, r.path} {
		for name, entry := range src {
			if seen[name] {
				continue
			}
			seen[name] = true
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Manifest.DisplayName), strings.ToLower(entries[j].Manifest.DisplayName)
		if a != b {
			return a < b
		}
		return entries[i].Manifest.Name < entries[j].Manifest.Name
	})

	return entries
}

// ListByCategory returns entries grouped by category.
func (r *Registry) ListByCategory() map[string][]*AppEntry {
	categories := make(map[string][]*AppEntry)
	for _, entry := range r.List() {
		category := entry.Manifest.Category
		if category == "" {
			category = "other"
		}
		categories[category] = append(categories[category], entry)
	}
	return categories
}

// Command resolves the launch command for the named entry.
func (r *Registry) Command(name string) (launch.Command, error) {
	entry := r.Get(name)
	if entry == nil {
		return launch.Command{}, fmt.Errorf("entry not found: %s", name)
	}
	if entry.Factory == nil {
		return launch.Command{}, fmt.Errorf("entry %q has no factory", name)
	}
	return entry.Factory()
}

// Count returns the number of distinct entries.
func (r *Registry) Count() int {
	return len(r.List())
}
