// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/widget_test.go
// Summary: BaseWidget lifecycle, dirty propagation and click gating.

package core_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texellaunch/texelui/core"
)

type releasing struct {
	core.BaseWidget
	released int
	order    *[]string
	name     string
}

func newReleasing(name string, order *[]string) *releasing {
	r := &releasing{name: name, order: order}
	r.Init(r)
	return r
}

func (r *releasing) Release() {
	r.released++
	*r.order = append(*r.order, r.name)
}

type releasingGroup struct {
	releasing
	kids []core.Widget
}

func (g *releasingGroup) VisitChildren(fn func(core.Widget)) {
	for _, k := range g.kids {
		fn(k)
	}
}

func TestFreeReleasesChildrenFirstOnce(t *testing.T) {
	var order []string
	g := &releasingGroup{releasing: releasing{name: "parent", order: &order}}
	g.Init(g)
	a := newReleasing("a", &order)
	b := newReleasing("b", &order)
	g.kids = []core.Widget{a, b}
	g.Adopt(a)
	g.Adopt(b)

	g.Free()
	g.Free()
	assert.Equal(t, []string{"a", "b", "parent"}, order)
	assert.Equal(t, 1, g.released)
}

func TestResizeClampsAndDirties(t *testing.T) {
	w := newMini(0, 0, 0, 0)
	w.Resize(-3, 4)
	assert.Equal(t, 0, w.Width())
	assert.Equal(t, 4, w.Height())
	assert.True(t, w.NeedsRedraw())
}

func TestQueueRedrawStopsAtDirtyAncestor(t *testing.T) {
	fired := 0
	w := newMini(0, 0, 2, 2)
	root := newGroup(w)
	root.SetRedrawNotifier(func() { fired++ })

	buf := core.NewBuffer(2, 2, tcell.StyleDefault)
	root.Resize(2, 2)
	root.Draw(core.NewPainter(buf, core.Rect{W: 2, H: 2}))
	require.False(t, root.NeedsRedraw())
	require.False(t, w.NeedsRedraw())

	w.QueueRedraw()
	w.QueueRedraw()
	assert.Equal(t, 1, fired)
	assert.True(t, root.NeedsRedraw())
}

func TestUpdateReachesRootNotifier(t *testing.T) {
	fired := 0
	w := newMini(0, 0, 2, 2)
	root := newGroup(w)
	root.SetRedrawNotifier(func() { fired++ })
	root.Resize(2, 2)
	root.Draw(core.NewPainter(core.NewBuffer(2, 2, tcell.StyleDefault), core.Rect{W: 2, H: 2}))

	w.Update()
	assert.Equal(t, 1, fired)
}

func TestDisabledWidgetIgnoresClicksAndDraw(t *testing.T) {
	w := newMini(0, 0, 2, 1)
	w.Disable()
	assert.False(t, w.Clicked(&core.ButtonEvent{Button: core.ButtonLeft, X: 0, Y: 0, Pressed: true}))
	assert.Empty(t, w.clicks)

	buf := core.NewBuffer(2, 1, tcell.StyleDefault)
	w.Draw(core.NewPainter(buf, core.Rect{W: 2, H: 1}))
	assert.Equal(t, ' ', buf[0][0].Ch)
	assert.False(t, w.NeedsRedraw())
}

func TestClickOutsideIsIgnored(t *testing.T) {
	w := newMini(2, 2, 2, 2)
	assert.False(t, w.Clicked(&core.ButtonEvent{Button: core.ButtonLeft, X: 0, Y: 0}))
	assert.True(t, w.Clicked(&core.ButtonEvent{Button: core.ButtonLeft, X: 3, Y: 3}))
}

func TestClickHandlerOverridesDefault(t *testing.T) {
	w := newMini(0, 0, 2, 2)
	var seen core.Widget
	w.SetClickHandler(func(src core.Widget, ev *core.ButtonEvent) bool {
		seen = src
		return true
	})
	assert.True(t, w.Clicked(&core.ButtonEvent{Button: core.ButtonLeft, X: 1, Y: 1}))
	assert.Same(t, w, seen)
	assert.Empty(t, w.clicks)
}

func TestDesiredHeightFallsBackToHeight(t *testing.T) {
	w := newMini(0, 0, 2, 5)
	assert.Equal(t, 5, w.DesiredHeight())
}
