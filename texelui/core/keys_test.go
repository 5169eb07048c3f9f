// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/keys_test.go
// Summary: Key binding grammar.

package core

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	cases := []struct {
		in   string
		want KeyEvent
	}{
		{"Control+p", KeyEvent{Key: KeyRune, Rune: 'p', Mods: ModMaskControl}},
		{"Control+P", KeyEvent{Key: KeyRune, Rune: 'p', Mods: ModMaskControl}},
		{"Shift+Return", KeyEvent{Key: KeyEnter, Mods: ModMaskShift}},
		{"Page_Down", KeyEvent{Key: KeyPgDn}},
		{"Alt+space", KeyEvent{Key: KeyRune, Rune: ' ', Mods: ModMaskAlt}},
		{"Control++", KeyEvent{Key: KeyRune, Rune: '+', Mods: ModMaskControl}},
		{"ISO_Left_Tab", KeyEvent{Key: KeyBacktab}},
	}
	for _, tc := range cases {
		got, err := ParseKey(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseKeyErrors(t *testing.T) {
	for _, in := range []string{"", "Banana+p", "F13x"} {
		_, err := ParseKey(in)
		assert.Error(t, err, in)
	}
}

func TestParseKeyList(t *testing.T) {
	got, err := ParseKeyList("Up, Control+k ,comma")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, KeyUp, got[0].Key)
	assert.Equal(t, 'k', got[1].Rune)
	assert.Equal(t, ',', got[2].Rune)
}

func TestKeyEventStringRoundTrips(t *testing.T) {
	ev := KeyEvent{Key: KeyPgUp, Mods: ModMaskControl | ModMaskShift}
	back, err := ParseKey(ev.String())
	require.NoError(t, err)
	assert.Equal(t, ev, back)
}

func TestKeyFromTcell(t *testing.T) {
	ev := KeyFromTcell(tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModShift))
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'Q'}, ev)

	ev = KeyFromTcell(tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl))
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: 'n', Mods: ModMaskControl}, ev)

	ev = KeyFromTcell(tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModShift))
	assert.Equal(t, KeyEvent{Key: KeyEnter, Mods: ModMaskShift}, ev)

	ev = KeyFromTcell(tcell.NewEventKey(tcell.KeyCtrlSpace, 0, tcell.ModCtrl))
	assert.Equal(t, KeyEvent{Key: KeyRune, Rune: ' ', Mods: ModMaskControl}, ev)
}
