// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner_test.go
// Summary: Drives the tcell host against a simulation screen.

package devshell_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texellaunch/internal/devshell"
	"github.com/framegrace/texellaunch/texelui/core"
)

// fakeApp records what the host delivers. Run blocks until Stop.
type fakeApp struct {
	mu      sync.Mutex
	frames  int
	size    [2]int
	keys    []rune
	clicks  int
	pasted  string
	refresh chan<- bool

	started  chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	runErr   error
}

func newFakeApp() *fakeApp {
	return &fakeApp{started: make(chan struct{}), stopped: make(chan struct{})}
}

func (a *fakeApp) Run() error {
	close(a.started)
	<-a.stopped
	return a.runErr
}

func (a *fakeApp) Stop() { a.stopOnce.Do(func() { close(a.stopped) }) }

func (a *fakeApp) Resize(cols, rows int) {
	a.mu.Lock()
	a.size = [2]int{cols, rows}
	a.mu.Unlock()
}

func (a *fakeApp) Render() [][]core.Cell {
	a.mu.Lock()
	a.frames++
	a.mu.Unlock()
	return [][]core.Cell{{{Ch: 'o'}, {Ch: 'k'}}}
}

func (a *fakeApp) HandleKey(ev *tcell.EventKey) {
	a.mu.Lock()
	a.keys = append(a.keys, ev.Rune())
	a.mu.Unlock()
}

func (a *fakeApp) HandleMouse(*tcell.EventMouse) {
	a.mu.Lock()
	a.clicks++
	a.mu.Unlock()
}

func (a *fakeApp) HandlePaste(data []byte) {
	a.mu.Lock()
	a.pasted += string(data)
	a.mu.Unlock()
}

func (a *fakeApp) SetRefreshNotifier(ch chan<- bool) { a.refresh = ch }
func (a *fakeApp) GetTitle() string                  { return "fake" }

type seen struct {
	frames int
	size   [2]int
	keys   string
	clicks int
	pasted string
}

func (a *fakeApp) snapshot() seen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return seen{frames: a.frames, size: a.size, keys: string(a.keys), clicks: a.clicks, pasted: a.pasted}
}

// doneApp finishes on its own, as the launcher does after an accept.
type doneApp struct {
	*fakeApp
	done chan struct{}
}

func (a *doneApp) Done() <-chan struct{} { return a.done }

func simulate(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	prev := devshell.NewScreen
	devshell.NewScreen = func() (tcell.Screen, error) { return screen, nil }
	t.Cleanup(func() { devshell.NewScreen = prev })
	return screen
}

func start(t *testing.T, ctx context.Context, app core.App, started <-chan struct{}) <-chan error {
	t.Helper()
	errCh := make(chan error, 1)
	go func() { errCh <- devshell.Run(ctx, app) }()
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("app.Run was not called")
	}
	return errCh
}

func result(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestRunDeliversEvents(t *testing.T) {
	screen := simulate(t)
	app := newFakeApp()
	errCh := start(t, context.Background(), app, app.started)

	if app.snapshot().frames == 0 {
		t.Fatal("no frame drawn before Run")
	}
	if r, _, _, _ := screen.GetContent(1, 0); r != 'k' {
		t.Fatalf("frame not copied to the screen: %q", r)
	}

	before := app.snapshot().frames
	app.refresh <- true
	eventually(t, "redraw on refresh", func() bool { return app.snapshot().frames > before })

	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	eventually(t, "key", func() bool { return app.snapshot().keys == "q" })

	screen.PostEvent(tcell.NewEventMouse(1, 0, tcell.Button1, 0))
	eventually(t, "mouse", func() bool { return app.snapshot().clicks == 1 })

	screen.PostEvent(tcell.NewEventPaste(true))
	for _, r := range "ab" {
		screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, r, 0))
	}
	screen.PostEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'c', 0))
	screen.PostEvent(tcell.NewEventPaste(false))
	eventually(t, "paste", func() bool { return app.snapshot().pasted == "ab\nc" })
	if keys := app.snapshot().keys; keys != "q" {
		t.Fatalf("pasted text reached HandleKey: %q", keys)
	}

	screen.PostEvent(tcell.NewEventResize(40, 9))
	eventually(t, "resize", func() bool { return app.snapshot().size == [2]int{40, 9} })

	screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if err := result(t, errCh); err != nil {
		t.Fatalf("Ctrl-C: %v", err)
	}
	select {
	case <-app.stopped:
	default:
		t.Fatal("app not stopped")
	}
}

func TestRunEndsWhenAppIsDone(t *testing.T) {
	simulate(t)
	app := &doneApp{fakeApp: newFakeApp(), done: make(chan struct{})}
	errCh := start(t, context.Background(), app, app.started)
	close(app.done)
	if err := result(t, errCh); err != nil {
		t.Fatalf("done: %v", err)
	}
}

func TestRunReturnsRunError(t *testing.T) {
	simulate(t)
	app := newFakeApp()
	app.runErr = errors.New("boom")
	errCh := start(t, context.Background(), app, app.started)
	app.Stop()
	if err := result(t, errCh); err == nil || err.Error() != "boom" {
		t.Fatalf("want boom, got %v", err)
	}
}

func TestRunHonoursContext(t *testing.T) {
	simulate(t)
	app := newFakeApp()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := start(t, ctx, app, app.started)
	cancel()
	if err := result(t, errCh); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestRunScreenError(t *testing.T) {
	want := errors.New("no tty")
	prev := devshell.NewScreen
	devshell.NewScreen = func() (tcell.Screen, error) { return nil, want }
	t.Cleanup(func() { devshell.NewScreen = prev })

	if err := devshell.Run(context.Background(), newFakeApp()); !errors.Is(err, want) {
		t.Fatalf("want %v, got %v", want, err)
	}
}
