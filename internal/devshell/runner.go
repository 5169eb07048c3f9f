// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Hosts a core.App full screen on a local tcell screen.
// Usage: cmd/texellaunch runs the launcher through Run when --host=tcell.

package devshell

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texellaunch/internal/logging"
	"github.com/framegrace/texellaunch/texelui/core"
)

// NewScreen opens the terminal. Tests replace it with a simulation screen.
var NewScreen = tcell.NewScreen

// finished is posted to the event loop when the session must end.
type finished struct {
	tcell.EventTime
	err error
}

func postFinished(s tcell.Screen, err error) {
	ev := &finished{err: err}
	ev.SetEventNow()
	_ = s.PostEvent(ev)
}

type session struct {
	screen tcell.Screen
	app    core.App

	// Bracketed paste arrives as ordinary key events between two
	// EventPaste markers.
	pasting bool
	paste   strings.Builder
}

// Run shows app until its Run returns, an app implementing core.Finisher
// is done, ctx is cancelled or the user presses Ctrl-C. The app is stopped
// before Run returns.
func Run(ctx context.Context, app core.App) error {
	screen, err := NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnablePaste()

	s := &session{screen: screen, app: app}
	app.Resize(screen.Size())
	refresh := make(chan bool, 1)
	app.SetRefreshNotifier(refresh)
	s.draw()

	go func() { postFinished(screen, app.Run()) }()
	defer app.Stop()

	stop := make(chan struct{})
	defer close(stop)
	go s.watch(ctx, refresh, stop)

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		if done, err := s.handle(ev); done {
			logging.Component("devshell").Debug().Err(err).Msg("session ended")
			return err
		}
	}
}

// watch turns refresh requests and shutdown signals into screen events.
func (s *session) watch(ctx context.Context, refresh <-chan bool, stop <-chan struct{}) {
	var done <-chan struct{}
	if f, ok := s.app.(core.Finisher); ok {
		done = f.Done()
	}
	for {
		select {
		case <-refresh:
			_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
			postFinished(s.screen, nil)
			return
		case <-ctx.Done():
			postFinished(s.screen, ctx.Err())
			return
		case <-stop:
			return
		}
	}
}

func (s *session) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *finished:
		return true, ev.err
	case *tcell.EventInterrupt:
	case *tcell.EventResize:
		s.app.Resize(ev.Size())
		s.screen.Sync()
	case *tcell.EventPaste:
		s.pasting = ev.Start()
		if ev.End() {
			if ph, ok := s.app.(interface{ HandlePaste([]byte) }); ok && s.paste.Len() > 0 {
				ph.HandlePaste([]byte(s.paste.String()))
			}
			s.paste.Reset()
		}
		return false, nil
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return true, nil
		}
		if s.pasting {
			s.collect(ev)
			return false, nil
		}
		s.app.HandleKey(ev)
	case *tcell.EventMouse:
		mh, ok := s.app.(core.MouseHandler)
		if !ok {
			return false, nil
		}
		mh.HandleMouse(ev)
	default:
		return false, nil
	}
	s.draw()
	return false, nil
}

func (s *session) collect(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		s.paste.WriteRune(ev.Rune())
	case tcell.KeyEnter, tcell.KeyLF:
		s.paste.WriteByte('\n')
	case tcell.KeyTab:
		s.paste.WriteByte('\t')
	}
}

func (s *session) draw() {
	s.screen.Clear()
	for y, row := range s.app.Render() {
		for x, c := range row {
			if c.Ch == 0 {
				continue
			}
			s.screen.SetContent(x, y, c.Ch, nil, c.Style)
		}
	}
	s.screen.Show()
}
