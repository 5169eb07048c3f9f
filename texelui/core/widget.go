// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/widget.go
// Summary: The widget contract and the BaseWidget that implements it once for all widgets.
// Usage: Concrete widgets embed BaseWidget, call Init(self) and implement capability interfaces.

package core

// ClickHandler overrides a widget's default click behaviour. State travels
// in the closure.
type ClickHandler func(w Widget, ev *ButtonEvent) bool

// Widget is the contract every drawable, clickable element satisfies.
type Widget interface {
	Intersect(x, y int) bool
	Move(x, y int)
	Resize(w, h int)
	Enable()
	Disable()
	Enabled() bool
	Draw(p *Painter)
	Free()
	Width() int
	Height() int
	X() int
	Y() int
	Update()
	QueueRedraw()
	NeedsRedraw() bool
	Clicked(ev *ButtonEvent) bool
	SetClickHandler(h ClickHandler)
	MotionNotify(ev *MotionEvent) bool
	DesiredHeight() int

	Parent() Widget
	SetParent(parent Widget)
}

// Capability interfaces. BaseWidget discovers them on the value passed to Init.

// Renderer paints the widget's own content. The painter's origin is the
// widget's top-left corner and it is clipped to the widget bounds.
type Renderer interface {
	Render(p *Painter)
}

// Layouter recomputes size-dependent internal layout after a resize or update.
type Layouter interface {
	Layout()
}

// ClickReceiver is the default click behaviour when no handler is set.
type ClickReceiver interface {
	HandleClick(ev *ButtonEvent) bool
}

// MotionReceiver handles pointer motion.
type MotionReceiver interface {
	HandleMotion(ev *MotionEvent) bool
}

// Releaser frees resources held by the widget itself.
type Releaser interface {
	Release()
}

// Container exposes owned children, in draw order.
type Container interface {
	VisitChildren(func(Widget))
}

// HeightHinter reports the intrinsic height used before an explicit resize.
type HeightHinter interface {
	PreferredHeight() int
}

// BaseWidget holds geometry, enabled state, the dirty flag and the parent
// back-reference. The parent is never owned.
type BaseWidget struct {
	Rect    Rect
	self    Widget
	parent  Widget
	enabled bool
	redraw  bool
	freed   bool

	onClick  ClickHandler
	notifier func()
}

// Init registers the concrete widget so capability interfaces dispatch to it.
// Widgets start enabled and dirty.
func (b *BaseWidget) Init(self Widget) {
	b.self = self
	b.enabled = true
	b.redraw = true
}

func (b *BaseWidget) widget() Widget {
	if b.self != nil {
		return b.self
	}
	return b
}

func (b *BaseWidget) Intersect(x, y int) bool { return b.Rect.Contains(x, y) }

func (b *BaseWidget) Move(x, y int) { b.Rect.X, b.Rect.Y = x, y }

// Resize clamps negative sizes to zero, lets the widget lay itself out and
// queues a redraw.
func (b *BaseWidget) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if b.Rect.W == w && b.Rect.H == h {
		return
	}
	b.Rect.W, b.Rect.H = w, h
	if l, ok := b.widget().(Layouter); ok {
		l.Layout()
	}
	b.QueueRedraw()
}

func (b *BaseWidget) Enable() {
	if b.enabled {
		return
	}
	b.enabled = true
	b.QueueRedraw()
}

func (b *BaseWidget) Disable() {
	if !b.enabled {
		return
	}
	b.enabled = false
	b.QueueRedraw()
}

func (b *BaseWidget) Enabled() bool { return b.enabled }

func (b *BaseWidget) Width() int  { return b.Rect.W }
func (b *BaseWidget) Height() int { return b.Rect.H }
func (b *BaseWidget) X() int      { return b.Rect.X }
func (b *BaseWidget) Y() int      { return b.Rect.Y }

// Draw renders the widget at its position within p when enabled and clears
// the dirty flag.
func (b *BaseWidget) Draw(p *Painter) {
	defer func() { b.redraw = false }()
	if !b.enabled || b.Rect.Empty() {
		return
	}
	if r, ok := b.widget().(Renderer); ok {
		r.Render(p.Sub(b.Rect))
	}
}

// Free releases owned children, then the widget itself. Calling it again is a no-op.
func (b *BaseWidget) Free() {
	if b.freed {
		return
	}
	b.freed = true
	self := b.widget()
	if c, ok := self.(Container); ok {
		var children []Widget
		c.VisitChildren(func(child Widget) { children = append(children, child) })
		for _, child := range children {
			child.Free()
		}
	}
	if r, ok := self.(Releaser); ok {
		r.Release()
	}
	b.parent = nil
	b.onClick = nil
	b.notifier = nil
}

// Update recomputes layout and asks the parent chain to do the same; the
// root ends the chain by queueing a redraw.
func (b *BaseWidget) Update() {
	if l, ok := b.widget().(Layouter); ok {
		l.Layout()
	}
	b.redraw = true
	if b.parent != nil {
		b.parent.Update()
		return
	}
	b.redraw = false
	b.QueueRedraw()
}

// QueueRedraw marks this widget and its ancestors dirty. Climbing stops at
// the first ancestor that is already dirty, and the root notifier fires only
// on a clean to dirty transition.
func (b *BaseWidget) QueueRedraw() {
	if b.redraw {
		return
	}
	b.redraw = true
	if b.parent != nil {
		b.parent.QueueRedraw()
		return
	}
	if b.notifier != nil {
		b.notifier()
	}
}

func (b *BaseWidget) NeedsRedraw() bool { return b.redraw }

// SetRedrawNotifier installs the callback fired when a root widget becomes dirty.
func (b *BaseWidget) SetRedrawNotifier(fn func()) { b.notifier = fn }

// Clicked dispatches ev when it intersects an enabled widget: the click
// handler if set, else the widget's default behaviour.
func (b *BaseWidget) Clicked(ev *ButtonEvent) bool {
	if ev == nil || !b.enabled || !b.Intersect(ev.X, ev.Y) {
		return false
	}
	self := b.widget()
	if b.onClick != nil {
		return b.onClick(self, ev)
	}
	if r, ok := self.(ClickReceiver); ok {
		return r.HandleClick(ev)
	}
	if c, ok := self.(Container); ok {
		return routeClick(c, ev.Translated(b.Rect.X, b.Rect.Y))
	}
	return false
}

func (b *BaseWidget) SetClickHandler(h ClickHandler) { b.onClick = h }

// MotionNotify follows the same gating and routing as Clicked.
func (b *BaseWidget) MotionNotify(ev *MotionEvent) bool {
	if ev == nil || !b.enabled || !b.Intersect(ev.X, ev.Y) {
		return false
	}
	self := b.widget()
	if r, ok := self.(MotionReceiver); ok {
		return r.HandleMotion(ev)
	}
	if c, ok := self.(Container); ok {
		return routeMotion(c, ev.Translated(b.Rect.X, b.Rect.Y))
	}
	return false
}

// DesiredHeight returns the intrinsic height, falling back to the current height.
func (b *BaseWidget) DesiredHeight() int {
	if h, ok := b.widget().(HeightHinter); ok {
		return h.PreferredHeight()
	}
	return b.Rect.H
}

func (b *BaseWidget) Parent() Widget { return b.parent }

func (b *BaseWidget) SetParent(parent Widget) { b.parent = parent }

// Adopt sets the parent of child to b's widget.
func (b *BaseWidget) Adopt(child Widget) {
	if child != nil {
		child.SetParent(b.widget())
	}
}

func children(c Container) []Widget {
	var out []Widget
	c.VisitChildren(func(w Widget) { out = append(out, w) })
	return out
}

// routeClick offers ev (already in the container's local space) to the
// topmost intersecting child.
func routeClick(c Container, ev *ButtonEvent) bool {
	kids := children(c)
	for i := len(kids) - 1; i >= 0; i-- {
		child := kids[i]
		if child.Enabled() && child.Intersect(ev.X, ev.Y) {
			return child.Clicked(ev)
		}
	}
	return false
}

func routeMotion(c Container, ev *MotionEvent) bool {
	kids := children(c)
	for i := len(kids) - 1; i >= 0; i-- {
		child := kids[i]
		if child.Enabled() && child.Intersect(ev.X, ev.Y) {
			return child.MotionNotify(ev)
		}
	}
	return false
}

// RouteClick exposes container routing for widgets that handle some clicks
// themselves and defer the rest to their children.
func RouteClick(c Container, ev *ButtonEvent) bool { return routeClick(c, ev) }

// DrawChildren draws every child of c into p, which must already be in the
// container's local space.
func DrawChildren(c Container, p *Painter) {
	c.VisitChildren(func(w Widget) { w.Draw(p) })
}
