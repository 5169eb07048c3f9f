// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/border.go
// Summary: Framed container holding a single child in its client area.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texellaunch/texelui/core"
)

// Border draws a frame around its Rect and lays its child out inside.
type Border struct {
	core.BaseWidget
	Style   tcell.Style
	Charset [6]rune // h, v, tl, tr, bl, br
	Title   string
	Child   core.Widget
}

func NewBorder(x, y, w, h int, style tcell.Style) *Border {
	b := &Border{Style: style}
	// default single-line charset
	b.Charset = [6]rune{'─', '│', '┌', '┐', '└', '┘'}
	b.Init(b)
	b.Move(x, y)
	b.Resize(w, h)
	return b
}

// ClientRect is the area inside the frame, in the border's own coordinates.
func (b *Border) ClientRect() core.Rect {
	r := b.Rect
	if r.W < 2 || r.H < 2 {
		return core.Rect{}
	}
	return core.Rect{X: 1, Y: 1, W: r.W - 2, H: r.H - 2}
}

func (b *Border) SetChild(w core.Widget) {
	b.Child = w
	b.Adopt(w)
	b.Layout()
	b.QueueRedraw()
}

func (b *Border) Layout() {
	if b.Child == nil {
		return
	}
	cr := b.ClientRect()
	b.Child.Move(cr.X, cr.Y)
	b.Child.Resize(cr.W, cr.H)
}

func (b *Border) VisitChildren(fn func(core.Widget)) {
	if b.Child != nil {
		fn(b.Child)
	}
}

func (b *Border) PreferredHeight() int {
	if b.Child == nil {
		return 2
	}
	return b.Child.DesiredHeight() + 2
}

func (b *Border) Render(p *core.Painter) {
	full := core.Rect{W: b.Width(), H: b.Height()}
	p.DrawBorder(full, b.Style, b.Charset)
	if b.Title != "" && full.W > 4 {
		p.WithClip(core.Rect{X: 1, W: full.W - 2, H: 1}).DrawText(2, 0, " "+b.Title+" ", b.Style)
	}
	if b.Child != nil {
		b.Child.Draw(p)
	}
}
