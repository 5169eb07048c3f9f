// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/listview.go
// Summary: Virtual list: selection, paging, scrolling and mouse activation over an index range.
// Usage: Rows are painted on demand by a delegate; the view never stores row data.

package widgets

import (
	"sort"

	"github.com/framegrace/texellaunch/texelui/core"
	"github.com/framegrace/texellaunch/texelui/scroll"
)

// ScrollType selects how the view follows the selection.
type ScrollType int

const (
	// ScrollPerPage jumps a whole page when the selection leaves the view.
	ScrollPerPage ScrollType = iota
	// ScrollContinuous keeps the selection near the middle line.
	ScrollContinuous
)

const (
	defaultNumLines = 15
	// DoubleClickMillis is the window for the second press of an activation.
	DoubleClickMillis = 400
)

// RowDelegate paints row index into tb. style carries the variant the view
// chose; full is true when the set of visible rows changed since the last
// draw. The delegate must not call back into the view.
type RowDelegate func(tb *Textbox, index int, style RowStyle, full bool)

// ActivateHandler is called when a row is activated with the pointer.
type ActivateHandler func(lv *ListView, ev *core.ButtonEvent)

// ListView shows a window of rows [0, rows) and tracks the selected row,
// scroll offset and an optional multi-selection.
type ListView struct {
	core.BaseWidget
	Palette Palette

	delegate  RowDelegate
	rowHeight int
	reverse   bool

	rows     int
	selected int
	offset   int
	lines    int // visible line count per column
	columns  int

	numLines   int
	maxLines   int
	fixedLines bool

	cycle      bool
	scrollType ScrollType

	multiSelect bool
	marked      map[int]struct{}

	scrollbar     *Scrollbar
	showScrollbar bool
	scrollbarW    int

	slots []*Textbox

	onActivate     ActivateHandler
	singleClick    bool
	lastClickRow   int
	lastClickTime  uint32
	lastClickValid bool

	rchanged bool
}

// NewListView creates an empty view. rowHeight below one is treated as one.
func NewListView(delegate RowDelegate, rowHeight int, reverse bool) *ListView {
	lv := &ListView{
		Palette:    DefaultPalette(),
		delegate:   delegate,
		rowHeight:  max(rowHeight, 1),
		reverse:    reverse,
		columns:    1,
		numLines:   defaultNumLines,
		scrollbarW: 1,
		marked:     make(map[int]struct{}),
		rchanged:   true,
	}
	lv.Init(lv)
	lv.scrollbar = NewScrollbar(lv.Palette)
	lv.scrollbar.OnSelect = lv.SetSelected
	lv.scrollbar.Disable()
	lv.Adopt(lv.scrollbar)
	return lv
}

// SetPalette restyles the rows and the scrollbar.
func (lv *ListView) SetPalette(p Palette) {
	lv.Palette = p
	lv.scrollbar.Palette = p
	for _, tb := range lv.slots {
		tb.Palette = p
	}
	lv.QueueRedraw()
}

func (lv *ListView) NumElements() int { return lv.rows }

// SetNumElements changes the row count, clamping the selection and dropping
// multi-selected rows that no longer exist.
func (lv *ListView) SetNumElements(rows int) {
	rows = max(rows, 0)
	if rows != lv.rows {
		lv.rchanged = true
	}
	lv.rows = rows
	if lv.selected >= rows {
		lv.selected = max(rows-1, 0)
	}
	for i := range lv.marked {
		if i >= rows {
			delete(lv.marked, i)
		}
	}
	lv.changed()
}

func (lv *ListView) Selected() int { return lv.selected }

// SetSelected moves the selection, clamped to the existing rows.
func (lv *ListView) SetSelected(index int) {
	if lv.rows == 0 {
		return
	}
	lv.selected = min(max(index, 0), lv.rows-1)
	lv.changed()
}

// ScrollOffset is the index of the first visible row.
func (lv *ListView) ScrollOffset() int { return lv.offset }

// VisibleLines is the number of lines per column that show a row. In
// dynamic mode a list shorter than MaxLines reports only its rows; the
// empty slots below them stay allocated.
func (lv *ListView) VisibleLines() int {
	if !lv.fixedLines && (lv.maxLines == 0 || lv.rows < lv.maxLines) {
		return min(lv.lines, lv.rows)
	}
	return lv.lines
}

func (lv *ListView) pageSize() int { return lv.lines * lv.columns }

// NavUp moves up one row, wrapping from the first row to the last.
func (lv *ListView) NavUp() {
	if lv.rows == 0 {
		return
	}
	lv.selected = (lv.selected - 1 + lv.rows) % lv.rows
	lv.changed()
}

// NavDown moves down one row, wrapping from the last row to the first.
func (lv *ListView) NavDown() {
	if lv.rows == 0 {
		return
	}
	lv.selected = (lv.selected + 1) % lv.rows
	lv.changed()
}

// NavLeft moves one column left. It never wraps and is a no-op with a
// single column.
func (lv *ListView) NavLeft() {
	if lv.rows == 0 || lv.columns <= 1 || lv.lines == 0 {
		return
	}
	if lv.selected >= lv.lines {
		lv.selected -= lv.lines
		lv.changed()
	}
}

// NavRight moves one column right. When the next column is only partly
// filled it lands on the last row instead; it never wraps to the top.
func (lv *ListView) NavRight() {
	if lv.rows == 0 || lv.columns <= 1 || lv.lines == 0 {
		return
	}
	switch {
	case lv.selected+lv.lines < lv.rows:
		lv.selected += lv.lines
	case lv.selected < lv.rows-1:
		col := lv.selected / lv.lines
		ncol := lv.rows / lv.lines
		if col == ncol {
			return
		}
		lv.selected = lv.rows - 1
	default:
		return
	}
	lv.changed()
}

// NavPageNext moves down a page, clipping at the last row. With cycle on,
// a move that would run past the last row wraps to the first instead.
func (lv *ListView) NavPageNext() {
	if lv.rows == 0 {
		return
	}
	next := lv.selected + max(lv.pageSize(), 1)
	switch {
	case next < lv.rows:
		lv.selected = next
	case lv.cycle:
		lv.selected = 0
	default:
		lv.selected = lv.rows - 1
	}
	lv.changed()
}

// NavPagePrev moves up a page, clipping at the first row. With cycle on,
// a move that would run past the first row wraps to the last instead.
func (lv *ListView) NavPagePrev() {
	if lv.rows == 0 {
		return
	}
	prev := lv.selected - max(lv.pageSize(), 1)
	switch {
	case prev >= 0:
		lv.selected = prev
	case lv.cycle:
		lv.selected = lv.rows - 1
	default:
		lv.selected = 0
	}
	lv.changed()
}

func (lv *ListView) NavFirst() { lv.SetSelected(0) }

func (lv *ListView) NavLast() { lv.SetSelected(lv.rows - 1) }

func (lv *ListView) SetCycle(on bool) { lv.cycle = on }

func (lv *ListView) Cycle() bool { return lv.cycle }

func (lv *ListView) SetScrollType(t ScrollType) {
	lv.scrollType = t
	lv.changed()
}

func (lv *ListView) SetShowScrollbar(on bool) {
	if on == lv.showScrollbar {
		return
	}
	lv.showScrollbar = on
	lv.relayout()
}

func (lv *ListView) SetScrollbarWidth(w int) {
	w = max(w, 1)
	if w == lv.scrollbarW {
		return
	}
	lv.scrollbarW = w
	lv.relayout()
}

// SetColumns sets the number of columns; rows fill columns top to bottom.
func (lv *ListView) SetColumns(n int) {
	n = max(n, 1)
	if n == lv.columns {
		return
	}
	lv.columns = n
	lv.relayout()
}

func (lv *ListView) Columns() int { return lv.columns }

// SetMouseActivatedHandler installs the activation callback.
func (lv *ListView) SetMouseActivatedHandler(h ActivateHandler) { lv.onActivate = h }

// SetActivateOnSingleClick makes every left press on a row an activation.
func (lv *ListView) SetActivateOnSingleClick(on bool) { lv.singleClick = on }

// SetMultiSelect toggles multi-selection. Disabling clears the marked set.
func (lv *ListView) SetMultiSelect(on bool) {
	lv.multiSelect = on
	if !on && len(lv.marked) > 0 {
		clear(lv.marked)
		lv.QueueRedraw()
	}
}

func (lv *ListView) MultiSelect() bool { return lv.multiSelect }

// ToggleMultiSelected flips the mark on row i when multi-selection is on.
func (lv *ListView) ToggleMultiSelected(i int) {
	if !lv.multiSelect || i < 0 || i >= lv.rows {
		return
	}
	if _, ok := lv.marked[i]; ok {
		delete(lv.marked, i)
	} else {
		lv.marked[i] = struct{}{}
	}
	lv.QueueRedraw()
}

func (lv *ListView) IsMultiSelected(i int) bool {
	_, ok := lv.marked[i]
	return ok
}

// MultiSelected returns the marked rows in ascending order.
func (lv *ListView) MultiSelected() []int {
	out := make([]int, 0, len(lv.marked))
	for i := range lv.marked {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// SetNumLines sets the configured line count used in fixed mode and as the
// desired height.
func (lv *ListView) SetNumLines(n int) {
	lv.numLines = max(n, 0)
	lv.relayout()
}

func (lv *ListView) NumLines() int { return lv.numLines }

func (lv *ListView) FixedNumLines() bool { return lv.fixedLines }

// SetFixedNumLines pins the visible line count to NumLines regardless of height.
func (lv *ListView) SetFixedNumLines() {
	lv.fixedLines = true
	lv.relayout()
}

// SetMaxLines caps the visible line count in dynamic mode. Zero means no cap.
func (lv *ListView) SetMaxLines(n int) {
	lv.maxLines = max(n, 0)
	lv.relayout()
}

func (lv *ListView) MaxLines() int { return lv.maxLines }

// PreferredHeight is the height needed for the lines the view wants to show.
func (lv *ListView) PreferredHeight() int {
	lines := lv.numLines
	if !lv.fixedLines {
		lines = min(lines, lv.rows)
		if lv.maxLines > 0 {
			lines = min(lines, lv.maxLines)
		}
	}
	return lines * lv.rowHeight
}

func (lv *ListView) relayout() {
	lv.Layout()
	lv.QueueRedraw()
}

// changed recomputes the offset after a selection or size change.
func (lv *ListView) changed() {
	lv.recomputeOffset()
	lv.scrollbar.SetState(lv.offset, lv.pageSize(), lv.rows)
	lv.QueueRedraw()
}

func (lv *ListView) setOffset(o int) {
	if o != lv.offset {
		lv.offset = o
		lv.rchanged = true
	}
}

func (lv *ListView) recomputeOffset() {
	if lv.rows == 0 {
		lv.selected = 0
		lv.setOffset(0)
		return
	}
	page := lv.pageSize()
	if page <= 0 {
		lv.setOffset(lv.selected)
		return
	}
	st := scroll.State{ContentHeight: lv.rows, ViewportHeight: page, Offset: lv.offset}
	if lv.scrollType == ScrollContinuous && lv.columns == 1 {
		st = st.ScrollToCentered(lv.selected)
	} else {
		st = st.PageFor(lv.selected)
	}
	lv.setOffset(st.Offset)
}

func (lv *ListView) scrollbarShown() bool {
	return lv.showScrollbar && lv.scrollbarW < lv.Width()
}

func (lv *ListView) columnWidth() int {
	avail := lv.Width()
	if lv.scrollbarShown() {
		avail -= lv.scrollbarW
	}
	return max((avail-(lv.columns-1))/lv.columns, 0)
}

// Layout recomputes the visible line count and places the row slots.
func (lv *ListView) Layout() {
	lines := lv.numLines
	if !lv.fixedLines {
		lines = lv.Height() / lv.rowHeight
		if lv.maxLines > 0 {
			lines = min(lines, lv.maxLines)
		}
	}
	if lines != lv.lines {
		lv.lines = lines
		lv.rchanged = true
	}

	want := lv.lines * lv.columns
	if want != len(lv.slots) {
		for _, tb := range lv.slots {
			tb.Free()
		}
		lv.slots = make([]*Textbox, want)
		for i := range lv.slots {
			tb := NewTextbox(0, 0, 0, lv.rowHeight, lv.Palette)
			lv.Adopt(tb)
			lv.slots[i] = tb
		}
		lv.rchanged = true
	}

	cw := lv.columnWidth()
	for i, tb := range lv.slots {
		col, line := i/max(lv.lines, 1), i%max(lv.lines, 1)
		if lv.reverse {
			line = lv.lines - 1 - line
		}
		tb.Move(col*(cw+1), line*lv.rowHeight)
		tb.Resize(cw, lv.rowHeight)
	}

	if lv.scrollbarShown() {
		lv.scrollbar.Enable()
		lv.scrollbar.Move(lv.Width()-lv.scrollbarW, 0)
		lv.scrollbar.Resize(lv.scrollbarW, lv.Height())
	} else {
		lv.scrollbar.Disable()
	}
	lv.rchanged = true
	lv.recomputeOffset()
	lv.scrollbar.SetState(lv.offset, lv.pageSize(), lv.rows)
}

func (lv *ListView) VisitChildren(fn func(core.Widget)) {
	for _, tb := range lv.slots {
		fn(tb)
	}
	fn(lv.scrollbar)
}

func (lv *ListView) styleFor(i int) RowStyle {
	var s RowStyle
	if i%2 == 1 {
		s |= RowAlt
	}
	if i == lv.selected {
		s |= RowSelected
	}
	if lv.IsMultiSelected(i) {
		s |= RowMarked
	}
	return s
}

// Render asks the delegate to paint every visible row, then draws the slots.
func (lv *ListView) Render(p *core.Painter) {
	p.Fill(core.Rect{W: lv.Width(), H: lv.Height()}, ' ', lv.Palette.Normal)
	full := lv.rchanged
	lv.rchanged = false
	for k, tb := range lv.slots {
		idx := lv.offset + k
		if idx >= lv.rows {
			tb.Disable()
			tb.Draw(p)
			continue
		}
		tb.Enable()
		style := lv.styleFor(idx)
		tb.SetVariant(style)
		if lv.delegate != nil {
			lv.delegate(tb, idx, style, full)
		}
		tb.Draw(p)
	}
	if lv.scrollbarShown() {
		lv.scrollbar.Draw(p)
	}
}

// rowAt maps a local position to a row index, or -1 when no row is there.
func (lv *ListView) rowAt(x, y int) int {
	if lv.lines == 0 || y < 0 || x < 0 {
		return -1
	}
	line := y / lv.rowHeight
	if line >= lv.lines {
		return -1
	}
	if lv.reverse {
		line = lv.lines - 1 - line
	}
	col := x / (lv.columnWidth() + 1)
	if col >= lv.columns {
		return -1
	}
	idx := lv.offset + col*lv.lines + line
	if idx >= lv.rows {
		return -1
	}
	return idx
}

// HandleClick selects the row under the pointer and reports activations.
func (lv *ListView) HandleClick(ev *core.ButtonEvent) bool {
	switch ev.Button {
	case core.ButtonWheelUp:
		lv.NavUp()
		return true
	case core.ButtonWheelDown:
		lv.NavDown()
		return true
	case core.ButtonLeft:
	default:
		return false
	}

	local := ev.Translated(lv.X(), lv.Y())
	if lv.scrollbarShown() && lv.scrollbar.Intersect(local.X, local.Y) {
		return lv.scrollbar.Clicked(local)
	}
	idx := lv.rowAt(local.X, local.Y)
	if idx < 0 {
		return false
	}
	lv.SetSelected(idx)

	activate := lv.singleClick ||
		(lv.lastClickValid && lv.lastClickRow == idx && ev.Time-lv.lastClickTime <= DoubleClickMillis)
	if activate {
		lv.lastClickValid = false
		if lv.onActivate != nil {
			lv.onActivate(lv, ev)
		}
		return true
	}
	lv.lastClickRow, lv.lastClickTime, lv.lastClickValid = idx, ev.Time, true
	return true
}

func (lv *ListView) Release() {
	lv.delegate = nil
	lv.onActivate = nil
	lv.slots = nil
	lv.scrollbar = nil
}
