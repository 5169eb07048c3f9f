// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/teahost/teahost_test.go
// Summary: Exercises the bubbletea host against a real launcher.

package teahost

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texellaunch/apps/launcher"
	"github.com/framegrace/texellaunch/texelui/core"
)

func newLauncher(t *testing.T, mutate func(*launcher.Options)) *launcher.Launcher {
	t.Helper()
	opts := launcher.DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	l, err := launcher.New(context.Background(), []launcher.Entry{
		{Name: "firefox", Display: "Firefox", Description: "Web browser"},
		{Name: "foot", Display: "Foot", Description: "Terminal"},
		{Name: "gimp", Display: "GIMP"},
	}, opts)
	require.NoError(t, err)
	return l
}

func normalised(msg tea.KeyMsg) []core.KeyEvent {
	var out []core.KeyEvent
	for _, ev := range KeyEvents(msg) {
		out = append(out, core.KeyFromTcell(ev))
	}
	return out
}

func TestKeyEventsRunes(t *testing.T) {
	evs := normalised(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	require.Len(t, evs, 2)
	assert.Equal(t, core.KeyEvent{Key: core.KeyRune, Rune: 'a'}, evs[0])
	assert.Equal(t, core.KeyEvent{Key: core.KeyRune, Rune: 'b'}, evs[1])

	evs = normalised(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true})
	require.Len(t, evs, 1)
	assert.Equal(t, core.KeyEvent{Key: core.KeyRune, Rune: 'x', Mods: core.ModMaskAlt}, evs[0])
}

func TestKeyEventsSpecialKeys(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		want core.KeyEvent
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, core.KeyEvent{Key: core.KeyEnter}},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.KeyEvent{Key: core.KeyEscape}},
		{tea.KeyMsg{Type: tea.KeyTab}, core.KeyEvent{Key: core.KeyTab}},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, core.KeyEvent{Key: core.KeyBacktab}},
		{tea.KeyMsg{Type: tea.KeyBackspace}, core.KeyEvent{Key: core.KeyBackspace}},
		{tea.KeyMsg{Type: tea.KeyCtrlU}, core.KeyEvent{Key: core.KeyRune, Rune: 'u', Mods: core.ModMaskControl}},
		{tea.KeyMsg{Type: tea.KeyCtrlAt}, core.KeyEvent{Key: core.KeyRune, Rune: ' ', Mods: core.ModMaskControl}},
		{tea.KeyMsg{Type: tea.KeyCtrlA}, core.KeyEvent{Key: core.KeyRune, Rune: 'a', Mods: core.ModMaskControl}},
		{tea.KeyMsg{Type: tea.KeyCtrlN}, core.KeyEvent{Key: core.KeyRune, Rune: 'n', Mods: core.ModMaskControl}},
		{tea.KeyMsg{Type: tea.KeyCtrlP}, core.KeyEvent{Key: core.KeyRune, Rune: 'p', Mods: core.ModMaskControl}},
		{tea.KeyMsg{Type: tea.KeySpace}, core.KeyEvent{Key: core.KeyRune, Rune: ' '}},
		{tea.KeyMsg{Type: tea.KeyPgDown}, core.KeyEvent{Key: core.KeyPgDn}},
		{tea.KeyMsg{Type: tea.KeyCtrlPgUp}, core.KeyEvent{Key: core.KeyPgUp, Mods: core.ModMaskControl}},
		{tea.KeyMsg{Type: tea.KeyHome}, core.KeyEvent{Key: core.KeyHome}},
	}
	for _, tc := range cases {
		evs := normalised(tc.msg)
		require.Len(t, evs, 1, tc.msg.String())
		assert.Equal(t, tc.want, evs[0], tc.msg.String())
	}
}

func TestKeyEventsControlCodesUseTcellCtrlKeys(t *testing.T) {
	cases := map[tea.KeyType]tcell.Key{
		tea.KeyCtrlAt: tcell.KeyCtrlSpace,
		tea.KeyCtrlA:  tcell.KeyCtrlA,
		tea.KeyCtrlU:  tcell.KeyCtrlU,
		tea.KeyCtrlZ:  tcell.KeyCtrlZ,
		tea.KeyTab:    tcell.KeyTab,
		tea.KeyEnter:  tcell.KeyEnter,
		tea.KeyEsc:    tcell.KeyEscape,
	}
	for in, want := range cases {
		evs := KeyEvents(tea.KeyMsg{Type: in})
		require.Len(t, evs, 1, in.String())
		assert.Equal(t, want, evs[0].Key(), in.String())
	}
}

func TestKeyEventsUnknownDropped(t *testing.T) {
	assert.Empty(t, KeyEvents(tea.KeyMsg{Type: tea.KeyF5}))
}

func TestModelDrivesLauncher(t *testing.T) {
	l := newLauncher(t, nil)
	m := NewModel(l)
	assert.Equal(t, "", m.View())

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	assert.Contains(t, m.View(), "Firefox - Web browser")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("foo")})
	assert.Equal(t, "foo", l.Input())
	view := m.View()
	assert.Contains(t, view, "Foot - Terminal")
	assert.NotContains(t, view, "GIMP")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	res := l.Result()
	assert.Equal(t, launcher.Accepted, res.Outcome)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "foot", res.Entries[0].Name)

	msg := m.waitDone()
	require.IsType(t, doneMsg{}, msg)
	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModelPasteGoesToInput(t *testing.T) {
	l := newLauncher(t, nil)
	m := NewModel(l)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("gim\nrest"), Paste: true})
	assert.Equal(t, "gim", l.Input())
	assert.Len(t, l.Matches(), 1)
}

func TestModelCtrlCQuits(t *testing.T) {
	m := NewModel(newLauncher(t, nil))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModelMouseClickAccepts(t *testing.T) {
	l := newLauncher(t, func(o *launcher.Options) { o.List.SingleClick = true })
	m := NewModel(l)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	m.View()

	m.Update(tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	res := l.Result()
	assert.Equal(t, launcher.Accepted, res.Outcome)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "foot", res.Entries[0].Name)
}

func TestMouseEventTracksButtons(t *testing.T) {
	m := &Model{}
	ev := m.mouseEvent(tea.MouseEvent{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, tcell.Button1, ev.Buttons())
	x, y := ev.Position()
	assert.Equal(t, 1, x)
	assert.Equal(t, 2, y)

	ev = m.mouseEvent(tea.MouseEvent{X: 3, Y: 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, tcell.Button1, ev.Buttons())

	ev = m.mouseEvent(tea.MouseEvent{X: 3, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	assert.Equal(t, tcell.ButtonNone, ev.Buttons())

	ev = m.mouseEvent(tea.MouseEvent{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, tcell.WheelDown, ev.Buttons())
}

func TestRenderStringComposesFrame(t *testing.T) {
	frame := RenderString(newLauncher(t, nil), 30, 8)
	lines := strings.Split(frame, "\n")
	assert.Len(t, lines, 8)
	assert.Contains(t, frame, "GIMP")
}

func TestStyleForDefaultIsPlain(t *testing.T) {
	assert.Equal(t, "abc", styleFor(tcell.StyleDefault).Render("abc"))
}

func TestColorFor(t *testing.T) {
	_, ok := colorFor(tcell.ColorDefault)
	assert.False(t, ok)

	c, ok := colorFor(tcell.ColorRed)
	require.True(t, ok)
	assert.Equal(t, "9", string(c.(lipgloss.Color)))

	c, ok = colorFor(tcell.NewRGBColor(0x12, 0x34, 0x56))
	require.True(t, ok)
	assert.Equal(t, "#123456", string(c.(lipgloss.Color)))
}
