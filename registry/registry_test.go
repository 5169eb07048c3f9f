// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texellaunch/internal/launch"
)

func writeManifest(t *testing.T, base, dir, name, body string) string {
	t.Helper()
	full := filepath.Join(base, dir)
	require.NoError(t, os.MkdirAll(full, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(full, name), []byte(body), 0o644))
	return full
}

func TestLoadManifestJSONAndYAML(t *testing.T) {
	base := t.TempDir()
	dir := writeManifest(t, base, "htop", "manifest.json",
		`{"name":"htop","displayName":"Htop","command":"htop","terminal":true,"version":"1.2.0"}`)
	m, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "Htop", m.DisplayName)
	assert.Equal(t, AppTypeCommand, m.Type)
	assert.True(t, m.Terminal)
	require.NoError(t, m.Validate(dir))

	dir = writeManifest(t, base, "vim", "manifest.yaml",
		"name: vim\ntype: wrapper\nwraps: terminal\ncommand: vim\nargs: [\"-p\"]\n")
	m, err = LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "vim", m.DisplayName)
	assert.Equal(t, AppTypeWrapper, m.Type)
	assert.Equal(t, []string{"-p"}, m.Args)
}

func TestManifestValidation(t *testing.T) {
	_, err := ParseManifest("manifest.json", []byte(`{"displayName":"x"}`))
	assert.Error(t, err)

	m, err := ParseManifest("manifest.json", []byte(`{"name":"x","command":"x","version":"not-a-version"}`))
	require.NoError(t, err)
	assert.Error(t, m.Validate(""))

	m, err = ParseManifest("manifest.json", []byte(`{"name":"x","type":"wrapper","command":"x"}`))
	require.NoError(t, err)
	assert.Error(t, m.Validate(""))

	m, err = ParseManifest("manifest.json", []byte(`{"name":"x","binary":"missing"}`))
	require.NoError(t, err)
	assert.Equal(t, AppTypeExternal, m.Type)
	assert.Error(t, m.Validate(t.TempDir()))

	_, err = LoadManifest(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScanKeepsHighestVersion(t *testing.T) {
	user := t.TempDir()
	system := t.TempDir()
	writeManifest(t, user, "tool", "manifest.json", `{"name":"tool","command":"tool-old","version":"1.0.0"}`)
	writeManifest(t, system, "tool", "manifest.yaml", "name: tool\ncommand: tool-new\nversion: 1.4.2\n")
	writeManifest(t, system, "broken", "manifest.json", `{not json`)

	reg := New()
	require.NoError(t, reg.Scan(user, system, filepath.Join(user, "missing")))

	cmd, err := reg.Command("tool")
	require.NoError(t, err)
	assert.Equal(t, "tool-new", cmd.Path)
	assert.Nil(t, reg.Get("broken"))
}

func TestScanEqualVersionsPreferEarlierDir(t *testing.T) {
	user := t.TempDir()
	system := t.TempDir()
	writeManifest(t, user, "tool", "manifest.json", `{"name":"tool","command":"user"}`)
	writeManifest(t, system, "tool", "manifest.json", `{"name":"tool","command":"system"}`)

	reg := New()
	require.NoError(t, reg.Scan(user, system))
	cmd, err := reg.Command("tool")
	require.NoError(t, err)
	assert.Equal(t, "user", cmd.Path)
}

func TestWrapperFactories(t *testing.T) {
	base := t.TempDir()
	writeManifest(t, base, "top", "manifest.json", `{"name":"top","type":"wrapper","wraps":"terminal","command":"top"}`)
	writeManifest(t, base, "odd", "manifest.json", `{"name":"odd","type":"wrapper","wraps":"nope","command":"x"}`)

	reg := New()
	RegisterBuiltIns(reg)
	require.NoError(t, reg.Scan(base))

	cmd, err := reg.Command("top")
	require.NoError(t, err)
	assert.True(t, cmd.Terminal)
	assert.Equal(t, "top", cmd.Path)

	_, err = reg.Command("odd")
	assert.Error(t, err)
	_, err = reg.Command("missing")
	assert.Error(t, err)
}

func TestBuiltInsShadowScanned(t *testing.T) {
	base := t.TempDir()
	writeManifest(t, base, "edit", "manifest.json", `{"name":"edit","command":"scanned"}`)

	reg := New()
	reg.RegisterBuiltIn(&Manifest{Name: "edit"}, func() (launch.Command, error) {
		return launch.Command{Path: "builtin"}, nil
	})
	require.NoError(t, reg.Scan(base))

	assert.Equal(t, AppTypeBuiltIn, reg.Get("edit").Manifest.Type)
	assert.Equal(t, 1, reg.Count())
	cmd, err := reg.Command("edit")
	require.NoError(t, err)
	assert.Equal(t, "builtin", cmd.Path)
}

func TestScanPath(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(a, "zed"), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(a, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(b, "zed"), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(b, "Alpha"), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(b, "subdir"), 0o755))

	reg := New()
	n := reg.ScanPath(a + string(os.PathListSeparator) + b + string(os.PathListSeparator) + "/nonexistent")
	assert.Equal(t, 2, n)

	cmd, err := reg.Command("zed")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(a, "zed"), cmd.Path)

	var names []string
	for _, e := range reg.List() {
		names = append(names, e.Manifest.Name)
	}
	assert.Equal(t, []string{"Alpha", "zed"}, names)
	assert.Equal(t, AppTypePath, reg.Get("Alpha").Manifest.Type)
}

func TestListByCategory(t *testing.T) {
	reg := New()
	noop := func() (launch.Command, error) { return launch.Command{Path: "x"}, nil }
	reg.RegisterBuiltIn(&Manifest{Name: "a", Category: "dev"}, noop)
	reg.RegisterBuiltIn(&Manifest{Name: "b"}, noop)

	cats := reg.ListByCategory()
	assert.Len(t, cats["dev"], 1)
	assert.Len(t, cats["other"], 1)
}
