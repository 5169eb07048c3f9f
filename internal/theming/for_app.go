// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/for_app.go
// Summary: Builds widget palettes from the theme section of the effective config.

package theming

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texellaunch/config"
	"github.com/framegrace/texellaunch/internal/logging"
	"github.com/framegrace/texellaunch/texelui/widgets"
)

// FromSection applies colour overrides from a theme section to the default
// palette. Unknown or empty colours keep the default.
func FromSection(sec config.Section) widgets.Palette {
	p := widgets.DefaultPalette()
	if len(sec) == 0 {
		return p
	}
	log := logging.Component("theming")
	color := func(key string) (tcell.Color, bool) {
		raw, ok := sec[key].(string)
		if !ok || raw == "" {
			return tcell.ColorDefault, false
		}
		c := tcell.GetColor(raw)
		if c == tcell.ColorDefault {
			log.Warn().Str("key", key).Str("value", raw).Msg("unknown colour")
			return c, false
		}
		return c, true
	}

	if bg, ok := color("background"); ok {
		p.Normal = p.Normal.Background(bg)
		p.Prompt = p.Prompt.Background(bg)
		p.Placeholder = p.Placeholder.Background(bg)
		p.Border = p.Border.Background(bg)
		p.Track = p.Track.Background(bg)
		p.Thumb = p.Thumb.Background(bg)
		p.Indicator = p.Indicator.Background(bg)
		p.Status = p.Status.Background(bg)
		p.Background = p.Background.Background(bg)
		p.Marked = p.Marked.Background(bg)
		p.Active = p.Active.Background(bg)
		p.Urgent = p.Urgent.Background(bg)
	}
	if fg, ok := color("foreground"); ok {
		p.Normal = p.Normal.Foreground(fg)
		p.Alt = p.Alt.Foreground(fg)
		p.Background = p.Background.Foreground(fg)
		p.Track = p.Track.Foreground(fg)
	}
	if alt, ok := color("alt_background"); ok {
		p.Alt = p.Alt.Background(alt)
	}
	if sb, ok := color("selected_background"); ok {
		p.Selected = p.Selected.Background(sb)
		p.SelectedActive = p.SelectedActive.Background(sb)
	}
	if sf, ok := color("selected_foreground"); ok {
		p.Selected = p.Selected.Foreground(sf)
	}
	if c, ok := color("marked_foreground"); ok {
		p.Marked = p.Marked.Foreground(c)
	}
	if c, ok := color("active_foreground"); ok {
		p.Active = p.Active.Foreground(c)
		p.SelectedActive = p.SelectedActive.Foreground(c)
	}
	if c, ok := color("urgent_foreground"); ok {
		p.Urgent = p.Urgent.Foreground(c)
		p.SelectedUrgent = p.SelectedUrgent.Background(c)
	}
	if c, ok := color("prompt"); ok {
		p.Prompt = p.Prompt.Foreground(c)
	}
	if c, ok := color("placeholder"); ok {
		p.Placeholder = p.Placeholder.Foreground(c)
	}
	if c, ok := color("border"); ok {
		p.Border = p.Border.Foreground(c)
	}
	if c, ok := color("scrollbar"); ok {
		p.Thumb = p.Thumb.Foreground(c)
		p.Indicator = p.Indicator.Foreground(c)
	}
	if c, ok := color("status"); ok {
		p.Status = p.Status.Foreground(c)
	}
	return p
}
