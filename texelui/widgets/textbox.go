// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/textbox.go
// Summary: Single-line text widget used for list rows, the input entry and status lines.

package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texellaunch/texelui/core"
)

const ellipsis = "…"

// Textbox shows one line of text with an optional prompt. In editable mode it
// keeps a caret and scrolls horizontally to keep it visible.
type Textbox struct {
	core.BaseWidget
	Palette     Palette
	Placeholder string
	ShowCaret   bool
	// OnChange fires after every edit with the new text.
	OnChange func(text string)

	prompt   string
	text     []rune
	caret    int
	offX     int
	variant  RowStyle
	editable bool
}

func NewTextbox(x, y, w, h int, palette Palette) *Textbox {
	t := &Textbox{Palette: palette}
	t.Init(t)
	t.Move(x, y)
	t.Resize(w, h)
	return t
}

// NewEntry returns an editable textbox with a prompt and a visible caret.
func NewEntry(prompt string, palette Palette) *Textbox {
	t := NewTextbox(0, 0, 0, 1, palette)
	t.prompt = prompt
	t.editable = true
	t.ShowCaret = true
	return t
}

func (t *Textbox) Text() string { return string(t.text) }

// SetText replaces the content and moves the caret to the end. It does not
// fire OnChange.
func (t *Textbox) SetText(s string) {
	if s == string(t.text) {
		return
	}
	t.text = []rune(s)
	t.caret = len(t.text)
	t.QueueRedraw()
}

func (t *Textbox) Prompt() string { return t.prompt }

func (t *Textbox) SetPrompt(p string) {
	if p == t.prompt {
		return
	}
	t.prompt = p
	t.QueueRedraw()
}

func (t *Textbox) Variant() RowStyle { return t.variant }

func (t *Textbox) SetVariant(v RowStyle) {
	if v == t.variant {
		return
	}
	t.variant = v
	t.QueueRedraw()
}

func (t *Textbox) Editable() bool { return t.editable }

func (t *Textbox) SetEditable(on bool) { t.editable = on }

// Caret returns the caret position as a rune index.
func (t *Textbox) Caret() int { return t.caret }

func (t *Textbox) SetCaret(i int) {
	i = min(max(i, 0), len(t.text))
	if i == t.caret {
		return
	}
	t.caret = i
	t.QueueRedraw()
}

func (t *Textbox) PreferredHeight() int { return 1 }

func (t *Textbox) Render(p *core.Painter) {
	style := t.Palette.Row(t.variant)
	w := t.Width()
	p.Fill(core.Rect{W: w, H: t.Height()}, ' ', style)

	x := 0
	if t.prompt != "" {
		x += p.DrawText(0, 0, t.prompt, t.Palette.Prompt)
		x += p.DrawText(x, 0, " ", style)
	}
	avail := w - x
	if avail <= 0 {
		return
	}
	if !t.editable {
		p.DrawText(x, 0, runewidth.Truncate(string(t.text), avail, ellipsis), style)
		return
	}

	if len(t.text) == 0 && t.Placeholder != "" {
		p.DrawText(x, 0, runewidth.Truncate(t.Placeholder, avail, ellipsis), t.Palette.Placeholder)
	}
	t.ensureVisible(avail)
	col := x
	for i := t.offX; i < len(t.text) && col < w; i++ {
		col += p.DrawText(col, 0, string(t.text[i]), style)
	}
	if t.ShowCaret {
		cx := x + runewidth.StringWidth(string(t.text[t.offX:t.caret]))
		ch := ' '
		if t.caret < len(t.text) {
			ch = t.text[t.caret]
		}
		p.SetCell(cx, 0, ch, style.Reverse(true))
	}
}

// ensureVisible scrolls so the caret cell fits in avail columns.
func (t *Textbox) ensureVisible(avail int) {
	if t.caret < t.offX {
		t.offX = t.caret
	}
	for t.offX < t.caret && runewidth.StringWidth(string(t.text[t.offX:t.caret]))+1 > avail {
		t.offX++
	}
}

func (t *Textbox) changed() {
	t.QueueRedraw()
	if t.OnChange != nil {
		t.OnChange(string(t.text))
	}
}

// Insert adds s at the caret.
func (t *Textbox) Insert(s string) {
	if s == "" {
		return
	}
	rs := []rune(s)
	out := make([]rune, 0, len(t.text)+len(rs))
	out = append(out, t.text[:t.caret]...)
	out = append(out, rs...)
	out = append(out, t.text[t.caret:]...)
	t.text = out
	t.caret += len(rs)
	t.changed()
}

// DeleteBackward removes the rune before the caret.
func (t *Textbox) DeleteBackward() bool {
	if t.caret == 0 {
		return false
	}
	t.text = append(t.text[:t.caret-1], t.text[t.caret:]...)
	t.caret--
	t.changed()
	return true
}

// DeleteForward removes the rune under the caret.
func (t *Textbox) DeleteForward() bool {
	if t.caret >= len(t.text) {
		return false
	}
	t.text = append(t.text[:t.caret], t.text[t.caret+1:]...)
	t.changed()
	return true
}

// DeleteWordBackward removes the word before the caret and the blanks after it.
func (t *Textbox) DeleteWordBackward() bool {
	if t.caret == 0 {
		return false
	}
	i := t.caret
	for i > 0 && t.text[i-1] == ' ' {
		i--
	}
	for i > 0 && t.text[i-1] != ' ' {
		i--
	}
	t.text = append(t.text[:i], t.text[t.caret:]...)
	t.caret = i
	t.changed()
	return true
}

// ClearLine empties the text.
func (t *Textbox) ClearLine() bool {
	if len(t.text) == 0 {
		return false
	}
	t.text = t.text[:0]
	t.caret = 0
	t.offX = 0
	t.changed()
	return true
}

func (t *Textbox) MoveHome() { t.SetCaret(0) }
func (t *Textbox) MoveEnd()  { t.SetCaret(len(t.text)) }
