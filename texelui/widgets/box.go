// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/box.go
// Summary: Packs children vertically or horizontally, sharing spare space among expanding children.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texellaunch/texelui/core"
)

type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

type boxChild struct {
	w      core.Widget
	expand bool
	// width is the child's width when added. Horizontal boxes size fixed
	// children by it, so a narrow layout never shrinks it for good.
	width int
}

// Box lays its enabled children out in a row or column. Disabled children
// take no space.
type Box struct {
	core.BaseWidget
	Style   tcell.Style
	Spacing int

	orient   Orientation
	children []boxChild
}

func NewBox(orient Orientation, spacing int) *Box {
	b := &Box{orient: orient, Spacing: max(spacing, 0)}
	b.Init(b)
	return b
}

// Add appends a child. Expanding children share the space the others leave.
func (b *Box) Add(child core.Widget, expand bool) {
	if child == nil {
		return
	}
	b.children = append(b.children, boxChild{w: child, expand: expand, width: child.Width()})
	b.Adopt(child)
	b.Update()
}

func (b *Box) VisitChildren(fn func(core.Widget)) {
	for _, c := range b.children {
		fn(c.w)
	}
}

func (b *Box) active() []boxChild {
	out := make([]boxChild, 0, len(b.children))
	for _, c := range b.children {
		if c.w.Enabled() {
			out = append(out, c)
		}
	}
	return out
}

// PreferredHeight sums (vertical) or maximises (horizontal) the children's heights.
func (b *Box) PreferredHeight() int {
	kids := b.active()
	if len(kids) == 0 {
		return 0
	}
	if b.orient == Horizontal {
		h := 0
		for _, c := range kids {
			h = max(h, c.w.DesiredHeight())
		}
		return h
	}
	h := b.Spacing * (len(kids) - 1)
	for _, c := range kids {
		h += c.w.DesiredHeight()
	}
	return h
}

func (b *Box) Layout() {
	kids := b.active()
	if len(kids) == 0 {
		return
	}
	main := b.Height()
	if b.orient == Horizontal {
		main = b.Width()
	}
	fixed := b.Spacing * (len(kids) - 1)
	expanding := 0
	for _, c := range kids {
		switch {
		case c.expand:
			expanding++
		case b.orient == Vertical:
			fixed += c.w.DesiredHeight()
		default:
			fixed += c.width
		}
	}
	spare := max(main-fixed, 0)

	pos, seen := 0, 0
	for _, c := range kids {
		var size int
		switch {
		case c.expand:
			seen++
			size = spare / expanding
			if seen == expanding {
				size = spare - (spare/expanding)*(expanding-1)
			}
		case b.orient == Vertical:
			size = c.w.DesiredHeight()
		default:
			size = c.width
		}
		size = min(size, max(main-pos, 0))
		if b.orient == Vertical {
			c.w.Move(0, pos)
			c.w.Resize(b.Width(), size)
		} else {
			c.w.Move(pos, 0)
			c.w.Resize(size, b.Height())
		}
		pos += size + b.Spacing
	}
}

func (b *Box) Render(p *core.Painter) {
	p.Fill(core.Rect{W: b.Width(), H: b.Height()}, ' ', b.Style)
	core.DrawChildren(b, p)
}
