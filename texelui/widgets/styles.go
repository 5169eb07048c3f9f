// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/styles.go
// Summary: Row style variants and the palette that maps them to tcell styles.

package widgets

import "github.com/gdamore/tcell/v2"

// RowStyle is a set of style flags for one rendered row. Zero is a plain row.
type RowStyle uint8

const RowNormal RowStyle = 0

const (
	RowSelected RowStyle = 1 << iota
	RowAlt
	RowMarked
	RowActive
	RowUrgent
)

// Has reports whether every flag in o is set.
func (s RowStyle) Has(o RowStyle) bool { return s&o == o }

// Palette resolves widget styles. The zero value renders everything with
// tcell.StyleDefault.
type Palette struct {
	Normal         tcell.Style
	Alt            tcell.Style
	Selected       tcell.Style
	Marked         tcell.Style
	Active         tcell.Style
	Urgent         tcell.Style
	SelectedActive tcell.Style
	SelectedUrgent tcell.Style

	Prompt      tcell.Style
	Placeholder tcell.Style
	Border      tcell.Style
	Track       tcell.Style
	Thumb       tcell.Style
	Indicator   tcell.Style
	Status      tcell.Style
	Background  tcell.Style
}

// DefaultPalette is a dark palette that works on 16-colour terminals.
func DefaultPalette() Palette {
	base := tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	sel := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal)
	return Palette{
		Normal:         base,
		Alt:            base.Background(tcell.NewRGBColor(0x1c, 0x1c, 0x1c)),
		Selected:       sel,
		Marked:         base.Foreground(tcell.ColorYellow).Bold(true),
		Active:         base.Foreground(tcell.ColorAqua),
		Urgent:         base.Foreground(tcell.ColorRed),
		SelectedActive: sel.Foreground(tcell.ColorNavy),
		SelectedUrgent: sel.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite),
		Prompt:         base.Foreground(tcell.ColorTeal).Bold(true),
		Placeholder:    base.Foreground(tcell.ColorGray),
		Border:         base.Foreground(tcell.ColorTeal),
		Track:          base,
		Thumb:          base.Foreground(tcell.ColorTeal),
		Indicator:      base.Foreground(tcell.ColorGray),
		Status:         base.Foreground(tcell.ColorGray),
		Background:     base,
	}
}

// Row returns the style for a row variant. Selection wins over marking,
// which wins over urgency, activity and the alternate stripe.
func (p Palette) Row(v RowStyle) tcell.Style {
	switch {
	case v.Has(RowSelected | RowUrgent):
		return p.SelectedUrgent
	case v.Has(RowSelected | RowActive):
		return p.SelectedActive
	case v.Has(RowSelected):
		return p.Selected
	case v.Has(RowMarked):
		return p.Marked
	case v.Has(RowUrgent):
		return p.Urgent
	case v.Has(RowActive):
		return p.Active
	case v.Has(RowAlt):
		return p.Alt
	}
	return p.Normal
}
