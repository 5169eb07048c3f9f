// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/events.go
// Summary: Pointer events delivered to widgets and their tcell conversions.

package core

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Modifier identifies a single modifier key.
type Modifier uint

const (
	ModShift Modifier = iota
	ModControl
	ModAlt
	ModMeta
	ModSuper
	ModHyper
	numModifiers
)

// ModMask is a set of modifiers.
type ModMask uint

const (
	ModMaskShift   ModMask = 1 << ModShift
	ModMaskControl ModMask = 1 << ModControl
	ModMaskAlt     ModMask = 1 << ModAlt
	ModMaskMeta    ModMask = 1 << ModMeta
	ModMaskSuper   ModMask = 1 << ModSuper
	ModMaskHyper   ModMask = 1 << ModHyper
	ModMaskAll             = ModMaskShift | ModMaskControl | ModMaskAlt | ModMaskMeta | ModMaskSuper | ModMaskHyper
)

// Has reports whether every modifier in o is set in m.
func (m ModMask) Has(o ModMask) bool { return m&o == o }

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
	ButtonWheelUp
	ButtonWheelDown
)

// ButtonEvent is a press or release. X and Y are in the coordinate space of
// the receiving widget's parent.
type ButtonEvent struct {
	Button    Button
	Modifiers ModMask
	X, Y      int
	Pressed   bool
	Time      uint32 // milliseconds, monotonic within a session
}

// MotionEvent is pointer movement without a button change.
type MotionEvent struct {
	X, Y int
	Time uint32
}

// Translated returns a copy of ev shifted into a child's coordinate space.
func (ev ButtonEvent) Translated(dx, dy int) *ButtonEvent {
	ev.X -= dx
	ev.Y -= dy
	return &ev
}

// Translated returns a copy of ev shifted into a child's coordinate space.
func (ev MotionEvent) Translated(dx, dy int) *MotionEvent {
	ev.X -= dx
	ev.Y -= dy
	return &ev
}

// ModsFromTcell converts tcell modifiers.
func ModsFromTcell(m tcell.ModMask) ModMask {
	var out ModMask
	if m&tcell.ModShift != 0 {
		out |= ModMaskShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModMaskControl
	}
	if m&tcell.ModAlt != 0 {
		out |= ModMaskAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= ModMaskMeta
	}
	return out
}

func eventMillis(t time.Time) uint32 {
	if t.IsZero() {
		return 0
	}
	return uint32(t.UnixMilli())
}

// ButtonFromTcell converts a tcell mouse event carrying a press. ok is false
// when no button is held.
func ButtonFromTcell(ev *tcell.EventMouse) (be *ButtonEvent, ok bool) {
	x, y := ev.Position()
	b := ev.Buttons()
	var btn Button
	switch {
	case b&tcell.Button1 != 0:
		btn = ButtonLeft
	case b&tcell.Button2 != 0:
		btn = ButtonRight
	case b&tcell.Button3 != 0:
		btn = ButtonMiddle
	case b&tcell.WheelUp != 0:
		btn = ButtonWheelUp
	case b&tcell.WheelDown != 0:
		btn = ButtonWheelDown
	default:
		return nil, false
	}
	return &ButtonEvent{
		Button:    btn,
		Modifiers: ModsFromTcell(ev.Modifiers()),
		X:         x,
		Y:         y,
		Pressed:   true,
		Time:      eventMillis(ev.When()),
	}, true
}

// MotionFromTcell converts a tcell mouse event into a motion event.
func MotionFromTcell(ev *tcell.EventMouse) *MotionEvent {
	x, y := ev.Position()
	return &MotionEvent{X: x, Y: y, Time: eventMillis(ev.When())}
}
