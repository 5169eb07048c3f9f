// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/keys.go
// Summary: Normalised key events and the key-binding grammar ("Control+p", "Shift+Return").

package core

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Key identifies a non-printing key; printable input uses KeyRune.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPgUp
	KeyPgDn
	KeyHome
	KeyEnd
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeyBacktab
	KeyInsert
)

var keyNames = map[string]Key{
	"up":           KeyUp,
	"down":         KeyDown,
	"left":         KeyLeft,
	"right":        KeyRight,
	"page_up":      KeyPgUp,
	"prior":        KeyPgUp,
	"pgup":         KeyPgUp,
	"page_down":    KeyPgDn,
	"next":         KeyPgDn,
	"pgdn":         KeyPgDn,
	"home":         KeyHome,
	"end":          KeyEnd,
	"return":       KeyEnter,
	"enter":        KeyEnter,
	"kp_enter":     KeyEnter,
	"escape":       KeyEscape,
	"esc":          KeyEscape,
	"backspace":    KeyBackspace,
	"delete":       KeyDelete,
	"tab":          KeyTab,
	"iso_left_tab": KeyBacktab,
	"backtab":      KeyBacktab,
	"insert":       KeyInsert,
	"space":        KeyRune,
}

var modNames = map[string]ModMask{
	"shift":   ModMaskShift,
	"control": ModMaskControl,
	"ctrl":    ModMaskControl,
	"alt":     ModMaskAlt,
	"mod1":    ModMaskAlt,
	"meta":    ModMaskMeta,
	"super":   ModMaskSuper,
	"mod4":    ModMaskSuper,
	"hyper":   ModMaskHyper,
}

// KeyEvent is a keyboard event independent of the terminal backend.
// For KeyRune, Rune is lower-cased when Control is held.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mods ModMask
}

// Matches reports whether ev is the chord described by binding.
func (ev KeyEvent) Matches(binding KeyEvent) bool {
	if ev.Key != binding.Key || ev.Mods != binding.Mods {
		return false
	}
	if ev.Key == KeyRune {
		return ev.Rune == binding.Rune
	}
	return true
}

func (ev KeyEvent) String() string {
	var parts []string
	for _, m := range []struct {
		mask ModMask
		name string
	}{
		{ModMaskControl, "Control"},
		{ModMaskAlt, "Alt"},
		{ModMaskShift, "Shift"},
		{ModMaskMeta, "Meta"},
		{ModMaskSuper, "Super"},
		{ModMaskHyper, "Hyper"},
	} {
		if ev.Mods.Has(m.mask) {
			parts = append(parts, m.name)
		}
	}
	if ev.Key == KeyRune {
		if ev.Rune == ' ' {
			parts = append(parts, "space")
		} else {
			parts = append(parts, string(ev.Rune))
		}
	} else {
		parts = append(parts, canonicalKeyName(ev.Key))
	}
	return strings.Join(parts, "+")
}

func canonicalKeyName(k Key) string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyPgUp:
		return "page_up"
	case KeyPgDn:
		return "page_down"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyEnter:
		return "return"
	case KeyEscape:
		return "escape"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyTab:
		return "tab"
	case KeyBacktab:
		return "iso_left_tab"
	case KeyInsert:
		return "insert"
	}
	return ""
}

// ParseKey parses a chord such as "Control+p", "Shift+Return" or "Page_Down".
// Names are case-insensitive except for single printable characters.
func ParseKey(spec string) (KeyEvent, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return KeyEvent{}, fmt.Errorf("empty key binding")
	}
	parts := strings.Split(spec, "+")
	// "Control++" binds the plus key.
	if strings.HasSuffix(spec, "++") {
		parts = append(strings.Split(strings.TrimSuffix(spec, "++"), "+"), "+")
	}
	var ev KeyEvent
	for i, part := range parts {
		last := i == len(parts)-1
		lower := strings.ToLower(part)
		if !last {
			mask, ok := modNames[lower]
			if !ok {
				return KeyEvent{}, fmt.Errorf("unknown modifier %q in %q", part, spec)
			}
			ev.Mods |= mask
			continue
		}
		if lower == "space" {
			ev.Key, ev.Rune = KeyRune, ' '
			continue
		}
		if k, ok := keyNames[lower]; ok {
			ev.Key = k
			continue
		}
		if utf8.RuneCountInString(part) == 1 {
			r, _ := utf8.DecodeRuneInString(part)
			ev.Key, ev.Rune = KeyRune, r
			if ev.Mods.Has(ModMaskControl) {
				ev.Rune = unicode.ToLower(r)
			}
			continue
		}
		return KeyEvent{}, fmt.Errorf("unknown key %q in %q", part, spec)
	}
	return ev, nil
}

// ParseKeyList parses a comma separated list of chords.
func ParseKeyList(spec string) ([]KeyEvent, error) {
	var out []KeyEvent
	for _, item := range strings.Split(spec, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		// A lone "," cannot be expressed; "comma" is accepted instead.
		if strings.EqualFold(strings.TrimSpace(item), "comma") {
			out = append(out, KeyEvent{Key: KeyRune, Rune: ','})
			continue
		}
		ev, err := ParseKey(item)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// KeyFromTcell normalises a tcell key event. Control letters arrive from
// tcell as dedicated key codes and are folded into KeyRune+Control here.
func KeyFromTcell(ev *tcell.EventKey) KeyEvent {
	mods := ModsFromTcell(ev.Modifiers())
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if mods.Has(ModMaskControl) {
			r = unicode.ToLower(r)
		}
		return KeyEvent{Key: KeyRune, Rune: r, Mods: mods &^ ModMaskShift}
	case tcell.KeyUp:
		return KeyEvent{Key: KeyUp, Mods: mods}
	case tcell.KeyDown:
		return KeyEvent{Key: KeyDown, Mods: mods}
	case tcell.KeyLeft:
		return KeyEvent{Key: KeyLeft, Mods: mods}
	case tcell.KeyRight:
		return KeyEvent{Key: KeyRight, Mods: mods}
	case tcell.KeyPgUp:
		return KeyEvent{Key: KeyPgUp, Mods: mods}
	case tcell.KeyPgDn:
		return KeyEvent{Key: KeyPgDn, Mods: mods}
	case tcell.KeyHome:
		return KeyEvent{Key: KeyHome, Mods: mods}
	case tcell.KeyEnd:
		return KeyEvent{Key: KeyEnd, Mods: mods}
	case tcell.KeyEnter:
		return KeyEvent{Key: KeyEnter, Mods: mods}
	case tcell.KeyEscape:
		return KeyEvent{Key: KeyEscape, Mods: mods &^ ModMaskControl}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyEvent{Key: KeyBackspace, Mods: mods &^ ModMaskControl}
	case tcell.KeyDelete:
		return KeyEvent{Key: KeyDelete, Mods: mods}
	case tcell.KeyTab:
		return KeyEvent{Key: KeyTab, Mods: mods &^ ModMaskControl}
	case tcell.KeyBacktab:
		return KeyEvent{Key: KeyBacktab, Mods: mods &^ ModMaskShift}
	case tcell.KeyInsert:
		return KeyEvent{Key: KeyInsert, Mods: mods}
	case tcell.KeyNUL:
		return KeyEvent{Key: KeyRune, Rune: ' ', Mods: mods | ModMaskControl}
	}
	k := ev.Key()
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyEvent{Key: KeyRune, Rune: rune('a' + (k - tcell.KeyCtrlA)), Mods: mods | ModMaskControl}
	}
	if k == tcell.KeyCtrlSpace {
		return KeyEvent{Key: KeyRune, Rune: ' ', Mods: mods | ModMaskControl}
	}
	return KeyEvent{Key: KeyNone, Mods: mods}
}
