// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/launcher/keys.go
// Summary: Launcher actions and their key bindings.

package launcher

import (
	"fmt"
	"sort"

	"github.com/framegrace/texellaunch/texelui/core"
)

// Action names a launcher command that keys can be bound to.
type Action string

const (
	ActionRowUp        Action = "row-up"
	ActionRowDown      Action = "row-down"
	ActionRowLeft      Action = "row-left"
	ActionRowRight     Action = "row-right"
	ActionPagePrev     Action = "page-prev"
	ActionPageNext     Action = "page-next"
	ActionRowFirst     Action = "row-first"
	ActionRowLast      Action = "row-last"
	ActionAccept       Action = "accept"
	ActionAcceptCustom Action = "accept-custom"
	ActionToggleSelect Action = "toggle-select"
	ActionCancel       Action = "cancel"
	ActionClearLine    Action = "clear-line"
)

// DefaultKeys returns the built-in bindings.
func DefaultKeys() map[string]string {
	return map[string]string{
		string(ActionRowUp):        "Up,Control+p,ISO_Left_Tab",
		string(ActionRowDown):      "Down,Control+n,Tab",
		string(ActionRowLeft):      "Control+Page_Up",
		string(ActionRowRight):     "Control+Page_Down",
		string(ActionPagePrev):     "Page_Up",
		string(ActionPageNext):     "Page_Down",
		string(ActionRowFirst):     "Home",
		string(ActionRowLast):      "End",
		string(ActionAccept):       "Return",
		string(ActionAcceptCustom): "Control+Return",
		string(ActionToggleSelect): "Shift+Return,Control+space",
		string(ActionCancel):       "Escape,Control+g",
		string(ActionClearLine):    "Control+u",
	}
}

type binding struct {
	chord  core.KeyEvent
	action Action
}

// parseBindings turns the action map into a lookup list. Actions are
// visited in name order so a chord bound twice resolves the same way on
// every run.
func parseBindings(keys map[string]string) ([]binding, error) {
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []binding
	for _, name := range names {
		if !knownAction(Action(name)) {
			return nil, fmt.Errorf("unknown action %q", name)
		}
		chords, err := core.ParseKeyList(keys[name])
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
		for _, c := range chords {
			out = append(out, binding{chord: c, action: Action(name)})
		}
	}
	return out, nil
}

func knownAction(a Action) bool {
	switch a {
	case ActionRowUp, ActionRowDown, ActionRowLeft, ActionRowRight,
		ActionPagePrev, ActionPageNext, ActionRowFirst, ActionRowLast,
		ActionAccept, ActionAcceptCustom, ActionToggleSelect, ActionCancel,
		ActionClearLine:
		return true
	}
	return false
}

func lookup(bs []binding, ev core.KeyEvent) (Action, bool) {
	for _, b := range bs {
		if ev.Matches(b.chord) {
			return b.action, true
		}
	}
	return "", false
}
