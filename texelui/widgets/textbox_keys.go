// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/textbox_keys.go
// Summary: Default editing keys for an editable Textbox.

package widgets

import "github.com/framegrace/texellaunch/texelui/core"

// HandleKey implements line editing. Keys that do not edit are left to the caller.
func (t *Textbox) HandleKey(ev core.KeyEvent) bool {
	if !t.editable || !t.Enabled() {
		return false
	}
	if ev.Mods.Has(core.ModMaskControl) && ev.Key == core.KeyRune {
		switch ev.Rune {
		case 'a':
			t.MoveHome()
		case 'e':
			t.MoveEnd()
		case 'h':
			return t.DeleteBackward()
		case 'd':
			return t.DeleteForward()
		case 'w':
			return t.DeleteWordBackward()
		case 'u':
			return t.ClearLine()
		default:
			return false
		}
		return true
	}

	switch ev.Key {
	case core.KeyLeft:
		t.SetCaret(t.caret - 1)
	case core.KeyRight:
		t.SetCaret(t.caret + 1)
	case core.KeyHome:
		t.MoveHome()
	case core.KeyEnd:
		t.MoveEnd()
	case core.KeyBackspace:
		return t.DeleteBackward()
	case core.KeyDelete:
		return t.DeleteForward()
	case core.KeyRune:
		if ev.Mods.Has(core.ModMaskAlt) || ev.Mods.Has(core.ModMaskMeta) {
			return false
		}
		t.Insert(string(ev.Rune))
	default:
		return false
	}
	return true
}
