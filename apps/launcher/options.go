// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/launcher/options.go
// Summary: Launcher options and their mapping from the config store.

package launcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/framegrace/texellaunch/config"
	"github.com/framegrace/texellaunch/filter"
	"github.com/framegrace/texellaunch/internal/theming"
	"github.com/framegrace/texellaunch/texelui/widgets"
)

// Ranker supplies and records launch counts. history.Store satisfies it.
type Ranker interface {
	Counts(ctx context.Context) (map[string]int, error)
	Record(ctx context.Context, name string) error
}

// ListOptions configures the list view.
type ListOptions struct {
	Lines          int
	MaxLines       int
	FixedNumLines  bool
	Columns        int
	RowHeight      int
	Cycle          bool
	Scroll         widgets.ScrollType
	Reverse        bool
	ShowScrollbar  bool
	ScrollbarWidth int
	SingleClick    bool
}

// Options configures a Launcher.
type Options struct {
	Mode        string
	Prompt      string
	Placeholder string
	Title       string

	Matching      filter.Method
	CaseSensitive bool
	Sort          bool
	MultiSelect   bool
	Border        bool
	ShowStatus    bool

	List ListOptions

	// Keys maps an action name to a comma separated list of chords.
	Keys map[string]string

	Palette widgets.Palette
	History Ranker
}

// DefaultOptions mirrors the embedded defaults.
func DefaultOptions() Options {
	return Options{
		Mode:       "run",
		Prompt:     "run",
		Title:      "texellaunch",
		Border:     true,
		ShowStatus: true,
		List: ListOptions{
			Lines:          15,
			MaxLines:       15,
			Columns:        1,
			RowHeight:      1,
			Cycle:          true,
			ShowScrollbar:  true,
			ScrollbarWidth: 1,
		},
		Keys:    DefaultKeys(),
		Palette: widgets.DefaultPalette(),
	}
}

// ParseScrollMethod maps "per-page" and "continuous" to a scroll type.
func ParseScrollMethod(s string) (widgets.ScrollType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "per-page", "page", "0":
		return widgets.ScrollPerPage, nil
	case "continuous", "1":
		return widgets.ScrollContinuous, nil
	}
	return widgets.ScrollPerPage, fmt.Errorf("unknown scroll method %q", s)
}

// OptionsFromConfig reads the listview, launcher, keys and theme sections.
func OptionsFromConfig(mode string, cfg config.Config) (Options, error) {
	o := DefaultOptions()
	o.Mode = mode

	lv := &o.List
	lv.Lines = cfg.GetInt("listview", "lines", lv.Lines)
	lv.MaxLines = cfg.GetInt("listview", "max_lines", lv.MaxLines)
	lv.FixedNumLines = cfg.GetBool("listview", "fixed_num_lines", lv.FixedNumLines)
	lv.Columns = cfg.GetInt("listview", "columns", lv.Columns)
	lv.RowHeight = cfg.GetInt("listview", "row_height", lv.RowHeight)
	lv.Cycle = cfg.GetBool("listview", "cycle", lv.Cycle)
	lv.Reverse = cfg.GetBool("listview", "reverse", lv.Reverse)
	lv.ShowScrollbar = cfg.GetBool("listview", "show_scrollbar", lv.ShowScrollbar)
	lv.ScrollbarWidth = cfg.GetInt("listview", "scrollbar_width", lv.ScrollbarWidth)
	lv.SingleClick = cfg.GetBool("listview", "activate_on_single_click", lv.SingleClick)
	st, err := ParseScrollMethod(cfg.GetString("listview", "scroll_method", "per-page"))
	if err != nil {
		return o, fmt.Errorf("listview: %w", err)
	}
	lv.Scroll = st

	o.Prompt = cfg.GetString("launcher", "prompt", mode)
	o.Placeholder = cfg.GetString("launcher", "placeholder", o.Placeholder)
	o.Title = cfg.GetString("launcher", "title", o.Title)
	o.CaseSensitive = cfg.GetBool("launcher", "case_sensitive", o.CaseSensitive)
	o.Sort = cfg.GetBool("launcher", "sort", o.Sort)
	o.MultiSelect = cfg.GetBool("launcher", "multi_select", o.MultiSelect)
	o.Border = cfg.GetBool("launcher", "border", o.Border)
	o.ShowStatus = cfg.GetBool("launcher", "show_status", o.ShowStatus)
	m, err := filter.ParseMethod(cfg.GetString("launcher", "matching", "normal"))
	if err != nil {
		return o, fmt.Errorf("launcher: %w", err)
	}
	o.Matching = m

	for action, spec := range cfg.StringMap("keys") {
		o.Keys[action] = spec
	}

	o.Palette = theming.FromSection(cfg.Section("theme"))
	return o, nil
}
