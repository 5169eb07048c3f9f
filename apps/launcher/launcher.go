// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/launcher/launcher.go
// Summary: Implements the launcher: a filter entry over a list of entries.
// Usage: Build with New, drive with a host, read Result once Run returns.

package launcher

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/framegrace/texellaunch/filter"
	"github.com/framegrace/texellaunch/internal/logging"
	"github.com/framegrace/texellaunch/texelui/adapter"
	"github.com/framegrace/texellaunch/texelui/core"
	"github.com/framegrace/texellaunch/texelui/widgets"
)

// Compile-time interface checks
var _ core.App = (*Launcher)(nil)
var _ core.MouseHandler = (*Launcher)(nil)
var _ core.Finisher = (*Launcher)(nil)

// Entry is one selectable item.
type Entry struct {
	Name        string
	Display     string
	Description string
	Icon        string
	Command     string
	Args        []string
	Terminal    bool
	Urgent      bool
	Active      bool
}

// Label is the text shown in the list.
func (e Entry) Label() string {
	var b strings.Builder
	if e.Icon != "" {
		b.WriteString(e.Icon)
		b.WriteString("  ")
	}
	if e.Display != "" {
		b.WriteString(e.Display)
	} else {
		b.WriteString(e.Name)
	}
	if e.Description != "" {
		b.WriteString(" - ")
		b.WriteString(e.Description)
	}
	return b.String()
}

func (e Entry) searchText() string {
	name := e.Display
	if name == "" {
		name = e.Name
	}
	if e.Description == "" {
		return name
	}
	return name + " " + e.Description
}

// Outcome says how the launcher finished.
type Outcome int

const (
	Pending Outcome = iota
	Accepted
	AcceptedCustom
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Accepted:
		return "accepted"
	case AcceptedCustom:
		return "accepted-custom"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result is what the user chose.
type Result struct {
	Outcome Outcome
	Entries []Entry
	// Input is the filter text at the time of acceptance.
	Input string
}

// Launcher shows entries filtered by the text typed into its entry line.
type Launcher struct {
	*adapter.UIApp

	opts     Options
	bindings []binding

	entries []Entry
	texts   []string
	matches []int
	marked  map[int]struct{} // entry indices

	root   core.Widget
	box    *widgets.Box
	input  *widgets.Textbox
	list   *widgets.ListView
	status *widgets.Textbox

	mu     sync.Mutex
	result Result
}

// New creates a launcher over entries. Entries are ranked by the history
// counts of opts.History, most used first; ties keep the given order.
func New(ctx context.Context, entries []Entry, opts Options) (*Launcher, error) {
	if opts.Keys == nil {
		opts.Keys = DefaultKeys()
	}
	bindings, err := parseBindings(opts.Keys)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}

	l := &Launcher{
		opts:     opts,
		bindings: bindings,
		entries:  append([]Entry(nil), entries...),
		marked:   make(map[int]struct{}),
	}
	l.rank(ctx)
	l.texts = make([]string, len(l.entries))
	for i, e := range l.entries {
		l.texts[i] = e.searchText()
	}

	ui := core.NewUIManager()
	ui.SetBackground(opts.Palette.Background)
	l.UIApp = adapter.NewUIApp(opts.Title, ui)
	l.buildUI()
	ui.SetKeyHandler(l.handleKey)
	l.refilter()
	return l, nil
}

// rank sorts entries by launch count.
func (l *Launcher) rank(ctx context.Context) {
	if l.opts.History == nil {
		return
	}
	counts, err := l.opts.History.Counts(ctx)
	if err != nil {
		log := logging.Component("launcher")
		log.Warn().Err(err).Msg("failed to load history")
		return
	}
	sort.SliceStable(l.entries, func(i, j int) bool {
		return counts[l.entries[i].Name] > counts[l.entries[j].Name]
	})
}

// buildUI constructs the widget tree.
func (l *Launcher) buildUI() {
	p := l.opts.Palette
	lo := l.opts.List

	l.input = widgets.NewEntry(l.opts.Prompt, p)
	l.input.Placeholder = l.opts.Placeholder
	l.input.OnChange = func(string) { l.refilter() }

	l.list = widgets.NewListView(l.drawRow, lo.RowHeight, lo.Reverse)
	l.list.SetPalette(p)
	l.list.SetNumLines(lo.Lines)
	l.list.SetMaxLines(lo.MaxLines)
	if lo.FixedNumLines {
		l.list.SetFixedNumLines()
	}
	l.list.SetColumns(lo.Columns)
	l.list.SetCycle(lo.Cycle)
	l.list.SetScrollType(lo.Scroll)
	l.list.SetShowScrollbar(lo.ShowScrollbar)
	l.list.SetScrollbarWidth(lo.ScrollbarWidth)
	l.list.SetActivateOnSingleClick(lo.SingleClick)
	l.list.SetMultiSelect(l.opts.MultiSelect)
	l.list.SetMouseActivatedHandler(func(*widgets.ListView, *core.ButtonEvent) { l.accept(false) })

	sp := p
	sp.Normal = p.Status
	l.status = widgets.NewTextbox(0, 0, 0, 1, sp)
	if !l.opts.ShowStatus {
		l.status.Disable()
	}

	l.box = widgets.NewBox(widgets.Vertical, 0)
	l.box.Style = p.Background
	if lo.Reverse {
		l.box.Add(l.status, false)
		l.box.Add(l.list, true)
		l.box.Add(l.input, false)
	} else {
		l.box.Add(l.input, false)
		l.box.Add(l.list, true)
		l.box.Add(l.status, false)
	}

	l.root = l.box
	if l.opts.Border {
		b := widgets.NewBorder(0, 0, 0, 0, p.Border)
		b.Title = l.opts.Title
		b.SetChild(l.box)
		l.root = b
	}
	l.UI().SetRoot(l.root)
}

// drawRow paints list row index. Rows map to entries through matches, so
// the text is refreshed on every draw.
func (l *Launcher) drawRow(tb *widgets.Textbox, index int, style widgets.RowStyle, _ bool) {
	if index < 0 || index >= len(l.matches) {
		return
	}
	e := l.entries[l.matches[index]]
	if e.Urgent {
		style |= widgets.RowUrgent
	}
	if e.Active {
		style |= widgets.RowActive
	}
	tb.SetVariant(style)
	tb.SetText(e.Label())
}

// refilter recomputes the matches for the current input and resets the
// selection to the first row.
func (l *Launcher) refilter() {
	m := filter.New(l.input.Text(), filter.Options{
		Method:        l.opts.Matching,
		CaseSensitive: l.opts.CaseSensitive,
		Sort:          l.opts.Sort,
	})
	if err := m.Err(); err != nil {
		log := logging.Component("launcher")
		log.Debug().Err(err).Msg("query does not compile")
	}
	l.matches = m.Filter(l.texts)

	// The view marks rows; the launcher marks entries.
	l.list.SetMultiSelect(false)
	l.list.SetMultiSelect(l.opts.MultiSelect)
	l.list.SetNumElements(len(l.matches))
	for row, idx := range l.matches {
		if _, ok := l.marked[idx]; ok {
			l.list.ToggleMultiSelected(row)
		}
	}
	l.list.SetSelected(0)
	l.updateStatus()
	l.box.Update()
}

func (l *Launcher) updateStatus() {
	s := fmt.Sprintf("%d/%d", len(l.matches), len(l.entries))
	if len(l.marked) > 0 {
		s += fmt.Sprintf("  %d marked", len(l.marked))
	}
	l.status.SetText(s)
}

func (l *Launcher) handleKey(ev core.KeyEvent) bool {
	if action, ok := lookup(l.bindings, ev); ok {
		l.Do(action)
		return true
	}
	return l.input.HandleKey(ev)
}

// Do runs a launcher action.
func (l *Launcher) Do(a Action) {
	switch a {
	case ActionRowUp:
		l.list.NavUp()
	case ActionRowDown:
		l.list.NavDown()
	case ActionRowLeft:
		l.list.NavLeft()
	case ActionRowRight:
		l.list.NavRight()
	case ActionPagePrev:
		l.list.NavPagePrev()
	case ActionPageNext:
		l.list.NavPageNext()
	case ActionRowFirst:
		l.list.NavFirst()
	case ActionRowLast:
		l.list.NavLast()
	case ActionAccept:
		l.accept(false)
	case ActionAcceptCustom:
		l.accept(true)
	case ActionToggleSelect:
		l.toggleSelect()
	case ActionCancel:
		l.finish(Result{Outcome: Cancelled, Input: l.input.Text()})
	case ActionClearLine:
		l.input.ClearLine()
	}
}

func (l *Launcher) toggleSelect() {
	if !l.opts.MultiSelect || len(l.matches) == 0 {
		return
	}
	row := l.list.Selected()
	idx := l.matches[row]
	if _, ok := l.marked[idx]; ok {
		delete(l.marked, idx)
	} else {
		l.marked[idx] = struct{}{}
	}
	l.list.ToggleMultiSelected(row)
	l.list.NavDown()
	l.updateStatus()
}

// accept finishes with the marked entries, else the selected row. With no
// match, or when custom is set, the raw input is returned instead.
func (l *Launcher) accept(custom bool) {
	input := l.input.Text()
	if custom || len(l.matches) == 0 {
		if strings.TrimSpace(input) == "" {
			return
		}
		l.record(input)
		l.finish(Result{Outcome: AcceptedCustom, Input: input})
		return
	}

	var chosen []Entry
	if len(l.marked) > 0 {
		idx := make([]int, 0, len(l.marked))
		for i := range l.marked {
			idx = append(idx, i)
		}
		sort.Ints(idx)
		for _, i := range idx {
			chosen = append(chosen, l.entries[i])
		}
	} else {
		chosen = []Entry{l.entries[l.matches[l.list.Selected()]]}
	}
	for _, e := range chosen {
		l.record(e.Name)
	}
	l.finish(Result{Outcome: Accepted, Entries: chosen, Input: input})
}

func (l *Launcher) record(name string) {
	if l.opts.History == nil {
		return
	}
	if err := l.opts.History.Record(context.Background(), name); err != nil {
		log := logging.Component("launcher")
		log.Warn().Err(err).Str("entry", name).Msg("failed to record launch")
	}
}

func (l *Launcher) finish(r Result) {
	l.mu.Lock()
	if l.result.Outcome != Pending {
		l.mu.Unlock()
		return
	}
	l.result = r
	l.mu.Unlock()

	log := logging.Component("launcher")
	log.Info().Stringer("outcome", r.Outcome).Int("entries", len(r.Entries)).Msg("finished")
	l.UIApp.Stop()
}

// Result reports the outcome. A launcher stopped from outside without a
// choice reports Cancelled.
func (l *Launcher) Result() Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	r := l.result
	if r.Outcome == Pending {
		select {
		case <-l.Done():
			r.Outcome = Cancelled
		default:
		}
	}
	return r
}

// SetInput replaces the filter text.
func (l *Launcher) SetInput(s string) {
	l.input.SetText(s)
	l.refilter()
}

// HandlePaste inserts the first line of data at the caret.
func (l *Launcher) HandlePaste(data []byte) {
	line, _, _ := strings.Cut(string(data), "\n")
	l.input.Insert(strings.TrimRight(line, "\r"))
}

// Input returns the filter text.
func (l *Launcher) Input() string { return l.input.Text() }

// Matches returns the entries currently shown, in list order.
func (l *Launcher) Matches() []Entry {
	out := make([]Entry, len(l.matches))
	for i, idx := range l.matches {
		out[i] = l.entries[idx]
	}
	return out
}

// List exposes the list view.
func (l *Launcher) List() *widgets.ListView { return l.list }

// GetTitle returns the launcher title.
func (l *Launcher) GetTitle() string {
	if l.opts.Title == "" {
		return "texellaunch"
	}
	return l.opts.Title
}
