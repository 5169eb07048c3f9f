// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/app.go
// Summary: The contract between an application and the host that drives it.

package core

import "github.com/gdamore/tcell/v2"

// App is a full-screen application driven by a host loop (tcell or bubbletea).
type App interface {
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	GetTitle() string
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(refreshChan chan<- bool)
}

// MouseHandler is implemented by apps that accept pointer input.
type MouseHandler interface {
	HandleMouse(ev *tcell.EventMouse)
}

// Finisher is implemented by apps that end on their own, such as a launcher
// after the user accepts an entry. Done is closed when the app is finished.
type Finisher interface {
	Done() <-chan struct{}
}
