// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/teahost/style.go
// Summary: Converts tcell styles to lipgloss styles.

package teahost

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
)

func styleFor(st tcell.Style) lipgloss.Style {
	out := lipgloss.NewStyle()
	if st == tcell.StyleDefault {
		return out
	}
	fg, bg, attrs := st.Decompose()
	if c, ok := colorFor(fg); ok {
		out = out.Foreground(c)
	}
	if c, ok := colorFor(bg); ok {
		out = out.Background(c)
	}
	return out.
		Bold(attrs&tcell.AttrBold != 0).
		Italic(attrs&tcell.AttrItalic != 0).
		Underline(attrs&tcell.AttrUnderline != 0).
		Reverse(attrs&tcell.AttrReverse != 0).
		Faint(attrs&tcell.AttrDim != 0).
		Blink(attrs&tcell.AttrBlink != 0).
		Strikethrough(attrs&tcell.AttrStrikeThrough != 0)
}

// colorFor maps palette colours to their ANSI index and everything else to
// a hex value. The terminal default colour has no lipgloss equivalent.
func colorFor(c tcell.Color) (lipgloss.TerminalColor, bool) {
	if c == tcell.ColorDefault || !c.Valid() {
		return nil, false
	}
	if c&tcell.ColorIsRGB == 0 && c >= tcell.ColorBlack && c < tcell.ColorBlack+256 {
		return lipgloss.Color(fmt.Sprintf("%d", c-tcell.ColorBlack)), true
	}
	hex := c.Hex()
	if hex < 0 {
		return nil, false
	}
	return lipgloss.Color(fmt.Sprintf("#%06x", hex)), true
}
