// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/geometry.go
// Summary: Rectangles and cells shared by widgets and the painter.

package core

import "github.com/gdamore/tcell/v2"

// Cell is one character cell of a rendered frame.
// Ch == 0 marks the trailing half of a wide rune.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Rect is an integer rectangle in cell units.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the overlap of r and o (zero-sized when disjoint).
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// NewBuffer allocates a w×h frame filled with blanks in the given style.
func NewBuffer(w, h int, style tcell.Style) [][]Cell {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	buf := make([][]Cell, h)
	for y := range buf {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: style}
		}
		buf[y] = row
	}
	return buf
}
