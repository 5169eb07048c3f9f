// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/scrollbar.go
// Summary: Vertical scrollbar with a proportional thumb and overflow indicators.

package widgets

import (
	"github.com/framegrace/texellaunch/texelui/core"
	"github.com/framegrace/texellaunch/texelui/scroll"
)

const thumbGlyph = '█'

// Scrollbar shows which part of a list is in view. Clicking it reports the
// row that corresponds to the clicked position.
type Scrollbar struct {
	core.BaseWidget
	Palette        Palette
	ShowIndicators bool
	OnSelect       func(row int)

	state scroll.State
}

func NewScrollbar(palette Palette) *Scrollbar {
	s := &Scrollbar{Palette: palette, ShowIndicators: true}
	s.Init(s)
	return s
}

// SetState updates the bar from the list's offset, page size and row count.
func (s *Scrollbar) SetState(offset, page, total int) {
	st := scroll.State{ContentHeight: max(total, 0), ViewportHeight: max(page, 0), Offset: max(offset, 0)}
	if st == s.state {
		return
	}
	s.state = st
	s.QueueRedraw()
}

func (s *Scrollbar) State() scroll.State { return s.state }

// thumb returns the thumb's first cell and length in a track of h cells.
func (s *Scrollbar) thumb(h int) (pos, length int) {
	total, page := s.state.ContentHeight, s.state.ViewportHeight
	if total <= page || total == 0 {
		return 0, h
	}
	length = max(h*page/total, 1)
	pos = min(s.state.Offset*h/total, h-length)
	return pos, length
}

// RowAt maps a local y coordinate to a row index, top of the track to the
// first row and bottom to the last.
func (s *Scrollbar) RowAt(y int) int {
	total := s.state.ContentHeight
	h := s.Height()
	if total <= 0 || h <= 1 {
		return 0
	}
	y = min(max(y, 0), h-1)
	return y * (total - 1) / (h - 1)
}

func (s *Scrollbar) Render(p *core.Painter) {
	w, h := s.Width(), s.Height()
	p.Fill(core.Rect{W: w, H: h}, ' ', s.Palette.Track)
	pos, length := s.thumb(h)
	p.Fill(core.Rect{Y: pos, W: w, H: length}, thumbGlyph, s.Palette.Thumb)
	if s.ShowIndicators {
		scroll.DrawOverflow(p, w-1, 0, h, s.state.Overflow(), s.Palette.Indicator)
	}
}

func (s *Scrollbar) HandleClick(ev *core.ButtonEvent) bool {
	if ev.Button != core.ButtonLeft || s.state.ContentHeight == 0 {
		return false
	}
	if s.OnSelect != nil {
		s.OnSelect(s.RowAt(ev.Y - s.Y()))
	}
	return true
}
