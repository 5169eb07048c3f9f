// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/painter.go
// Summary: Clipped, origin-relative drawing onto a cell buffer.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Painter draws into a cell buffer. Coordinates passed to its methods are
// relative to the painter's origin; anything outside the clip is dropped.
type Painter struct {
	buf    [][]Cell
	clip   Rect // absolute buffer coordinates
	ox, oy int
}

// NewPainter returns a painter with origin (0,0) clipped to clip and the buffer bounds.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	h := len(buf)
	w := 0
	if h > 0 {
		w = len(buf[0])
	}
	return &Painter{buf: buf, clip: clip.Intersect(Rect{W: w, H: h})}
}

// Sub returns a painter whose origin is r's top-left corner and whose clip
// is the intersection of r with the current clip. r is in local coordinates.
func (p *Painter) Sub(r Rect) *Painter {
	abs := r.Translate(p.ox, p.oy)
	return &Painter{
		buf:  p.buf,
		clip: p.clip.Intersect(abs),
		ox:   abs.X,
		oy:   abs.Y,
	}
}

// WithClip narrows the clip to r without moving the origin.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{
		buf:  p.buf,
		clip: p.clip.Intersect(r.Translate(p.ox, p.oy)),
		ox:   p.ox,
		oy:   p.oy,
	}
}

// Clip returns the current clip in local coordinates.
func (p *Painter) Clip() Rect {
	return p.clip.Translate(-p.ox, -p.oy)
}

// SetCell writes a single cell.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	ax, ay := x+p.ox, y+p.oy
	if !p.clip.Contains(ax, ay) {
		return
	}
	p.buf[ay][ax] = Cell{Ch: ch, Style: style}
}

// Fill paints every cell of r with ch.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	area := r.Translate(p.ox, p.oy).Intersect(p.clip)
	for y := area.Y; y < area.Y+area.H; y++ {
		row := p.buf[y]
		for x := area.X; x < area.X+area.W; x++ {
			row[x] = Cell{Ch: ch, Style: style}
		}
	}
}

// DrawText writes s starting at (x, y) and returns the number of columns used.
// Wide runes occupy two cells; the second is stored with Ch == 0.
func (p *Painter) DrawText(x, y int, s string, style tcell.Style) int {
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.SetCell(x+col, y, r, style)
		if w == 2 {
			p.SetCell(x+col+1, y, 0, style)
		}
		col += w
	}
	return col
}

// DrawBorder draws a frame around r using charset {h, v, tl, tr, bl, br}.
func (p *Painter) DrawBorder(r Rect, style tcell.Style, charset [6]rune) {
	if r.W < 2 || r.H < 2 {
		return
	}
	h, v, tl, tr, bl, br := charset[0], charset[1], charset[2], charset[3], charset[4], charset[5]
	right := r.X + r.W - 1
	bottom := r.Y + r.H - 1
	for x := r.X + 1; x < right; x++ {
		p.SetCell(x, r.Y, h, style)
		p.SetCell(x, bottom, h, style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		p.SetCell(r.X, y, v, style)
		p.SetCell(right, y, v, style)
	}
	p.SetCell(r.X, r.Y, tl, style)
	p.SetCell(right, r.Y, tr, style)
	p.SetCell(r.X, bottom, bl, style)
	p.SetCell(right, bottom, br, style)
}
