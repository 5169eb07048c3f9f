// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/indicators.go
// Summary: Arrow marks at the ends of a track when rows are hidden past them.

package scroll

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texellaunch/texelui/core"
)

const (
	MoreAbove = '▲'
	MoreBelow = '▼'
)

// Overflow says which ends of the viewport have rows hidden beyond them.
type Overflow struct {
	Above, Below bool
}

// Overflow reports the hidden rows of s.
func (s State) Overflow() Overflow {
	return Overflow{Above: s.CanScrollUp(), Below: s.CanScrollDown()}
}

// Any reports whether either end has hidden rows.
func (o Overflow) Any() bool { return o.Above || o.Below }

// DrawOverflow marks column x of a track that spans rows top..top+h-1.
// Tracks shorter than three cells get no marks so the thumb stays visible.
func DrawOverflow(p *core.Painter, x, top, h int, o Overflow, style tcell.Style) {
	if h < 3 {
		return
	}
	if o.Above {
		p.SetCell(x, top, MoreAbove, style)
	}
	if o.Below {
		p.SetCell(x, top+h-1, MoreBelow, style)
	}
}
