// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and per-mode configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"defaultMode": "run",
	})
	cfg.RegisterDefaults("listview", Section{
		"lines":                    15,
		"max_lines":                15,
		"fixed_num_lines":          false,
		"columns":                  1,
		"row_height":               1,
		"cycle":                    true,
		"scroll_method":            "per-page",
		"reverse":                  false,
		"show_scrollbar":           true,
		"scrollbar_width":          1,
		"activate_on_single_click": false,
	})
	cfg.RegisterDefaults("launcher", Section{
		"prompt":         "run",
		"placeholder":    "",
		"matching":       "normal",
		"sort":           false,
		"case_sensitive": false,
		"multi_select":   false,
		"border":         true,
		"title":          "texellaunch",
		"show_status":    true,
		"terminal":       "",
		"history":        true,
		"history_path":   "",
		"scan_path":      true,
	})
	cfg.RegisterDefaults("theme", Section{
		"background":          "",
		"foreground":          "",
		"selected_background": "",
		"selected_foreground": "",
	})
	cfg.RegisterDefaults("logging", Section{
		"level": "info",
		"file":  "",
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "dmenu":
		cfg.RegisterDefaults("launcher", Section{
			"history": false,
		})
	}
}
