// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/state.go
// Summary: Immutable scroll position arithmetic shared by scrollable widgets.
// Every method returns a new State; offsets are always clamped to [0, MaxOffset].

package scroll

// State describes a viewport over a run of rows.
type State struct {
	ContentHeight  int
	ViewportHeight int
	Offset         int
}

// NewState returns a state scrolled to the top. Negative sizes clamp to zero.
func NewState(contentHeight, viewportHeight int) State {
	return State{
		ContentHeight:  max(contentHeight, 0),
		ViewportHeight: max(viewportHeight, 0),
	}
}

func (s State) clamp() State {
	s.ContentHeight = max(s.ContentHeight, 0)
	s.ViewportHeight = max(s.ViewportHeight, 0)
	s.Offset = min(max(s.Offset, 0), s.MaxOffset())
	return s
}

// WithContentHeight changes the content height, keeping the offset in range.
func (s State) WithContentHeight(h int) State {
	s.ContentHeight = h
	return s.clamp()
}

// WithViewportHeight changes the viewport height, keeping the offset in range.
func (s State) WithViewportHeight(h int) State {
	s.ViewportHeight = h
	return s.clamp()
}

// MaxOffset is the largest offset that still fills the viewport.
func (s State) MaxOffset() int {
	return max(s.ContentHeight-s.ViewportHeight, 0)
}

// ScrollBy moves the offset by delta rows.
func (s State) ScrollBy(delta int) State {
	s.Offset += delta
	return s.clamp()
}

// ScrollTo scrolls the minimum amount needed to make row visible.
func (s State) ScrollTo(row int) State {
	if s.ViewportHeight <= 0 {
		return s
	}
	if row < s.Offset {
		s.Offset = row
	} else if row >= s.Offset+s.ViewportHeight {
		s.Offset = row - s.ViewportHeight + 1
	}
	return s.clamp()
}

// ScrollToCentered keeps row at the middle line of the viewport while it is
// far enough from either end of the content. For an even viewport the middle
// is the upper of the two central lines.
func (s State) ScrollToCentered(row int) State {
	lines := s.ViewportHeight
	middle := lines / 2
	if lines%2 == 0 {
		middle = (lines - 1) / 2
	}
	switch {
	case row > middle && row < s.ContentHeight-(lines-middle):
		s.Offset = row - middle
	case s.ContentHeight > lines && row >= s.ContentHeight-(lines-middle):
		s.Offset = s.ContentHeight - lines
	default:
		s.Offset = 0
	}
	return s.clamp()
}

// PageFor keeps the offset when row is already visible and otherwise jumps
// to the start of the page containing row.
func (s State) PageFor(row int) State {
	if s.ViewportHeight <= 0 {
		s.Offset = max(row, 0)
		return s
	}
	if s.IsRowVisible(row) {
		return s
	}
	s.Offset = (row / s.ViewportHeight) * s.ViewportHeight
	// Page starts are not clamped to MaxOffset: the last page may be partial.
	if s.Offset < 0 {
		s.Offset = 0
	}
	return s
}

func (s State) ScrollToTop() State {
	s.Offset = 0
	return s
}

func (s State) ScrollToBottom() State {
	s.Offset = s.MaxOffset()
	return s
}

// IsRowVisible reports whether row lies inside the viewport.
func (s State) IsRowVisible(row int) bool {
	return row >= s.Offset && row < s.Offset+s.ViewportHeight
}

// VisibleRange returns the half-open range of content rows in view.
func (s State) VisibleRange() (start, end int) {
	return s.Offset, min(s.Offset+s.ViewportHeight, s.ContentHeight)
}

func (s State) CanScroll() bool { return s.ContentHeight > s.ViewportHeight }

func (s State) CanScrollUp() bool { return s.Offset > 0 }

func (s State) CanScrollDown() bool { return s.Offset+s.ViewportHeight < s.ContentHeight }
