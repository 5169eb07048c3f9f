// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/uimanager.go
// Summary: Hosts a widget tree, composes it into a cell buffer and routes input.
// Usage: Apps create a UIManager, set a root widget and forward tcell events.

package core

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// RedrawNotifiable is implemented by widgets that can signal their host when
// they become dirty. BaseWidget satisfies it.
type RedrawNotifiable interface {
	SetRedrawNotifier(fn func())
}

// KeyHandler receives normalised key events. It reports whether the key was consumed.
type KeyHandler func(ev KeyEvent) bool

// UIManager owns a single root widget and composes it to a buffer.
type UIManager struct {
	mu       sync.Mutex // protects root, buffer, size and input state
	dirtyMu  sync.Mutex // protects dirty flag and notifier
	W, H     int
	root     Widget
	bgStyle  tcell.Style
	notifier chan<- bool
	buf      [][]Cell
	dirty    bool
	keys     KeyHandler
	buttons  tcell.ButtonMask
	frames   int
}

func NewUIManager() *UIManager {
	return &UIManager{
		bgStyle: tcell.StyleDefault,
		dirty:   true,
	}
}

// SetBackground sets the style used to clear the frame before drawing.
func (u *UIManager) SetBackground(style tcell.Style) {
	u.mu.Lock()
	u.bgStyle = style
	u.mu.Unlock()
	u.Invalidate()
}

func (u *UIManager) SetRefreshNotifier(ch chan<- bool) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.notifier = ch
}

// RequestRefresh pokes the host without marking anything dirty.
func (u *UIManager) RequestRefresh() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.requestRefreshLocked()
}

// Invalidate forces the next Render to recompose the whole frame.
// Thread-safe.
func (u *UIManager) Invalidate() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.dirty = true
	u.requestRefreshLocked()
}

// Internal helper - assumes dirtyMu is held
func (u *UIManager) requestRefreshLocked() {
	if u.notifier == nil {
		return
	}
	select {
	case u.notifier <- true:
	default:
	}
}

// SetRoot installs the widget tree. The previous root is not freed.
func (u *UIManager) SetRoot(w Widget) {
	u.mu.Lock()
	u.root = w
	if rn, ok := w.(RedrawNotifiable); ok {
		rn.SetRedrawNotifier(u.Invalidate)
	}
	if w != nil {
		w.Move(0, 0)
		w.Resize(u.W, u.H)
	}
	u.mu.Unlock()
	u.Invalidate()
}

func (u *UIManager) Root() Widget {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.root
}

// SetKeyHandler installs the handler that receives every key event.
func (u *UIManager) SetKeyHandler(h KeyHandler) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.keys = h
}

func (u *UIManager) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	u.mu.Lock()
	u.W, u.H = w, h
	// Resize framebuffer and invalidate all
	u.buf = nil
	if u.root != nil {
		u.root.Resize(w, h)
	}
	u.mu.Unlock()
	u.Invalidate()
}

func (u *UIManager) ensureBufferLocked() bool {
	h, w := u.H, u.W
	if u.buf != nil && len(u.buf) == h && (h == 0 || len(u.buf[0]) == w) {
		return false
	}
	u.buf = NewBuffer(w, h, u.bgStyle)
	return true
}

// Render recomposes the frame when the tree is dirty and returns the buffer.
func (u *UIManager) Render() [][]Cell {
	u.mu.Lock()
	defer u.mu.Unlock()

	fresh := u.ensureBufferLocked()

	u.dirtyMu.Lock()
	dirty := u.dirty
	u.dirty = false
	u.dirtyMu.Unlock()

	if u.root != nil && u.root.NeedsRedraw() {
		dirty = true
	}
	if !dirty && !fresh {
		return u.buf
	}

	full := Rect{W: u.W, H: u.H}
	p := NewPainter(u.buf, full)
	p.Fill(full, ' ', u.bgStyle)
	if u.root != nil {
		u.root.Draw(p)
	}
	u.frames++
	return u.buf
}

// Frames returns the number of full compositions so far.
func (u *UIManager) Frames() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.frames
}

// HandleKey normalises ev and passes it to the key handler.
func (u *UIManager) HandleKey(ev *tcell.EventKey) bool {
	u.mu.Lock()
	h := u.keys
	u.mu.Unlock()
	if h == nil {
		return false
	}
	return h(KeyFromTcell(ev))
}

// HandleMouse turns button transitions into Clicked calls on the root and
// button-less movement into MotionNotify. Wheel notches are presses.
func (u *UIManager) HandleMouse(ev *tcell.EventMouse) bool {
	u.mu.Lock()
	root := u.root
	prev := u.buttons
	now := ev.Buttons()
	u.buttons = now &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)
	u.mu.Unlock()

	if root == nil {
		return false
	}
	wheel := now&(tcell.WheelUp|tcell.WheelDown) != 0
	if wheel || (now != tcell.ButtonNone && prev == tcell.ButtonNone) {
		be, ok := ButtonFromTcell(ev)
		if !ok {
			return false
		}
		return root.Clicked(be)
	}
	if now == tcell.ButtonNone {
		return root.MotionNotify(MotionFromTcell(ev))
	}
	return false
}
