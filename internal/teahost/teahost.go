// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/teahost/teahost.go
// Summary: Hosts a core.App inside a bubbletea program and renders its cell buffer with lipgloss.
// Usage: cmd/texellaunch runs the launcher through Run when --host=tea; RenderString dumps a frame.

package teahost

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texellaunch/internal/logging"
	"github.com/framegrace/texellaunch/texelui/core"
)

type refreshMsg struct{}

type doneMsg struct{}

type exitMsg struct{ err error }

// Model adapts a core.App to the bubbletea Model contract. Update and View
// run on the program's event loop, which is the only goroutine touching the app.
type Model struct {
	app     core.App
	refresh chan bool
	done    <-chan struct{}
	buttons tcell.ButtonMask
	width   int
	height  int
	err     error
}

// NewModel wires app's refresh notifier to the model.
func NewModel(app core.App) *Model {
	m := &Model{app: app, refresh: make(chan bool, 1)}
	app.SetRefreshNotifier(m.refresh)
	if f, ok := app.(core.Finisher); ok {
		m.done = f.Done()
	}
	return m
}

// Err returns the error the app's Run ended with, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitRefresh, m.waitDone)
}

func (m *Model) waitRefresh() tea.Msg {
	<-m.refresh
	return refreshMsg{}
}

func (m *Model) waitDone() tea.Msg {
	if m.done == nil {
		return nil
	}
	<-m.done
	return doneMsg{}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.app.Resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if msg.Paste {
			if ph, ok := m.app.(interface{ HandlePaste([]byte) }); ok {
				ph.HandlePaste([]byte(string(msg.Runes)))
				return m, nil
			}
		}
		for _, ev := range KeyEvents(msg) {
			m.app.HandleKey(ev)
		}
	case tea.MouseMsg:
		if mh, ok := m.app.(core.MouseHandler); ok {
			ev := m.mouseEvent(tea.MouseEvent(msg))
			mh.HandleMouse(ev)
		}
	case refreshMsg:
		return m, m.waitRefresh
	case doneMsg:
		return m, tea.Quit
	case exitMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return renderBuffer(m.app.Render())
}

// RenderString sizes app to w×h and returns one composed frame.
func RenderString(app core.App, w, h int) string {
	app.Resize(w, h)
	return renderBuffer(app.Render())
}

// Run hosts app in a bubbletea program on the alternate screen until the
// app finishes, Ctrl-C is pressed or ctx is cancelled. The app is always
// stopped before returning.
func Run(ctx context.Context, app core.App, opts ...tea.ProgramOption) error {
	log := logging.Component("teahost")

	m := NewModel(app)
	opts = append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, opts...)
	p := tea.NewProgram(m, opts...)

	go func() {
		err := app.Run()
		p.Send(exitMsg{err: err})
	}()
	defer app.Stop()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	log.Debug().Err(m.err).Msg("app finished")
	return m.err
}

var specialKeys = map[tea.KeyType]struct {
	key tcell.Key
	mod tcell.ModMask
}{
	tea.KeyUp:         {tcell.KeyUp, 0},
	tea.KeyDown:       {tcell.KeyDown, 0},
	tea.KeyLeft:       {tcell.KeyLeft, 0},
	tea.KeyRight:      {tcell.KeyRight, 0},
	tea.KeyShiftTab:   {tcell.KeyBacktab, tcell.ModShift},
	tea.KeyHome:       {tcell.KeyHome, 0},
	tea.KeyEnd:        {tcell.KeyEnd, 0},
	tea.KeyPgUp:       {tcell.KeyPgUp, 0},
	tea.KeyPgDown:     {tcell.KeyPgDn, 0},
	tea.KeyCtrlPgUp:   {tcell.KeyPgUp, tcell.ModCtrl},
	tea.KeyCtrlPgDown: {tcell.KeyPgDn, tcell.ModCtrl},
	tea.KeyDelete:     {tcell.KeyDelete, 0},
	tea.KeyInsert:     {tcell.KeyInsert, 0},
	tea.KeyCtrlUp:     {tcell.KeyUp, tcell.ModCtrl},
	tea.KeyCtrlDown:   {tcell.KeyDown, tcell.ModCtrl},
	tea.KeyCtrlLeft:   {tcell.KeyLeft, tcell.ModCtrl},
	tea.KeyCtrlRight:  {tcell.KeyRight, tcell.ModCtrl},
	tea.KeyCtrlHome:   {tcell.KeyHome, tcell.ModCtrl},
	tea.KeyCtrlEnd:    {tcell.KeyEnd, tcell.ModCtrl},
	tea.KeyShiftUp:    {tcell.KeyUp, tcell.ModShift},
	tea.KeyShiftDown:  {tcell.KeyDown, tcell.ModShift},
	tea.KeyShiftLeft:  {tcell.KeyLeft, tcell.ModShift},
	tea.KeyShiftRight: {tcell.KeyRight, tcell.ModShift},
	tea.KeyShiftHome:  {tcell.KeyHome, tcell.ModShift},
	tea.KeyShiftEnd:   {tcell.KeyEnd, tcell.ModShift},
}

// KeyEvents converts a bubbletea key message into tcell key events. A
// message carrying several runes yields one event per rune.
func KeyEvents(msg tea.KeyMsg) []*tcell.EventKey {
	var mod tcell.ModMask
	if msg.Alt {
		mod |= tcell.ModAlt
	}
	switch {
	case msg.Type == tea.KeyRunes:
		out := make([]*tcell.EventKey, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, tcell.NewEventKey(tcell.KeyRune, r, mod))
		}
		return out
	case msg.Type == tea.KeySpace:
		return []*tcell.EventKey{tcell.NewEventKey(tcell.KeyRune, ' ', mod)}
	case msg.Type >= 0 && msg.Type < 32:
		return []*tcell.EventKey{controlKey(int(msg.Type), mod)}
	case msg.Type == tea.KeyBackspace:
		return []*tcell.EventKey{tcell.NewEventKey(tcell.KeyBackspace2, 0, mod)}
	}
	if sk, ok := specialKeys[msg.Type]; ok {
		return []*tcell.EventKey{tcell.NewEventKey(sk.key, 0, mod|sk.mod)}
	}
	return nil
}

// controlKey maps a C0 code to tcell. Tab, Enter, Escape and Backspace
// keep their own keys; the rest are Ctrl+@ through Ctrl+_, which tcell
// numbers from KeyCtrlSpace.
func controlKey(code int, mod tcell.ModMask) *tcell.EventKey {
	switch code {
	case 8:
		return tcell.NewEventKey(tcell.KeyBackspace, 0, mod)
	case 9:
		return tcell.NewEventKey(tcell.KeyTab, 0, mod)
	case 13:
		return tcell.NewEventKey(tcell.KeyEnter, 0, mod)
	case 27:
		return tcell.NewEventKey(tcell.KeyEscape, 0, mod)
	}
	return tcell.NewEventKey(tcell.KeyCtrlSpace+tcell.Key(code), 0, mod|tcell.ModCtrl)
}

// mouseEvent converts a bubbletea mouse event into a tcell one. Buttons held
// across motion events are remembered so drags keep their button mask.
func (m *Model) mouseEvent(me tea.MouseEvent) *tcell.EventMouse {
	var mod tcell.ModMask
	if me.Shift {
		mod |= tcell.ModShift
	}
	if me.Alt {
		mod |= tcell.ModAlt
	}
	if me.Ctrl {
		mod |= tcell.ModCtrl
	}

	var btn tcell.ButtonMask
	switch me.Button {
	case tea.MouseButtonLeft:
		btn = tcell.Button1
	case tea.MouseButtonMiddle:
		btn = tcell.Button3
	case tea.MouseButtonRight:
		btn = tcell.Button2
	case tea.MouseButtonWheelUp:
		return tcell.NewEventMouse(me.X, me.Y, tcell.WheelUp, mod)
	case tea.MouseButtonWheelDown:
		return tcell.NewEventMouse(me.X, me.Y, tcell.WheelDown, mod)
	case tea.MouseButtonWheelLeft:
		return tcell.NewEventMouse(me.X, me.Y, tcell.WheelLeft, mod)
	case tea.MouseButtonWheelRight:
		return tcell.NewEventMouse(me.X, me.Y, tcell.WheelRight, mod)
	}

	switch me.Action {
	case tea.MouseActionPress:
		m.buttons |= btn
	case tea.MouseActionRelease:
		m.buttons &^= btn
		if btn == tcell.ButtonNone {
			m.buttons = tcell.ButtonNone
		}
	}
	return tcell.NewEventMouse(me.X, me.Y, m.buttons, mod)
}

// renderBuffer joins buf into a newline separated frame, styling runs of
// cells that share a tcell style. Zero runes are wide-glyph continuations.
func renderBuffer(buf [][]core.Cell) string {
	var b strings.Builder
	for y, row := range buf {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var runStyle tcell.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(styleFor(runStyle).Render(run.String()))
			run.Reset()
		}
		for x, cell := range row {
			if cell.Ch == 0 {
				continue
			}
			if x == 0 || cell.Style != runStyle {
				flush()
				runStyle = cell.Style
			}
			run.WriteRune(cell.Ch)
		}
		flush()
	}
	return b.String()
}
