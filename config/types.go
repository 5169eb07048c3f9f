// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed getters over the loosely typed JSON sections.

package config

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Section returns the named section, or nil if it is missing or is not an
// object. The empty name addresses the top level.
func (c Config) Section(name string) Section {
	if c == nil {
		return nil
	}
	if name == "" {
		return Section(c)
	}
	return asSection(c[name])
}

func asSection(raw interface{}) Section {
	switch v := raw.(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults adds the keys of defaults that the section lacks,
// creating the section if needed. Existing values are never replaced.
func (c Config) RegisterDefaults(name string, defaults Section) {
	if c == nil || len(defaults) == 0 {
		return
	}
	var dst map[string]interface{} = c
	if name != "" {
		sec := c.Section(name)
		if sec == nil {
			sec = make(Section, len(defaults))
			c[name] = sec
		}
		dst = sec
	}
	for k, v := range defaults {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
}

func (c Config) lookup(section, key string) (interface{}, bool) {
	sec := c.Section(section)
	if sec == nil {
		return nil, false
	}
	v, ok := sec[key]
	return v, ok && v != nil
}

// GetString returns section.key when it holds a string.
func (c Config) GetString(section, key, def string) string {
	if v, ok := c.lookup(section, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// GetInt returns section.key as an int. Floats are truncated and numeric
// strings are parsed.
func (c Config) GetInt(section, key string, def int) int {
	v, ok := c.lookup(section, key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return def
}

// GetBool returns section.key as a bool. Numbers are true when non-zero and
// strings go through strconv.ParseBool.
func (c Config) GetBool(section, key string, def bool) bool {
	v, ok := c.lookup(section, key)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case int:
		return b != 0
	case float64:
		return b != 0
	case json.Number:
		if i, err := b.Int64(); err == nil {
			return i != 0
		}
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed
		}
	}
	return def
}

// GetStrings returns section.key as a list. A JSON array keeps its string
// elements; a string is split on whitespace, so "foot -e" and
// ["foot", "-e"] read the same.
func (c Config) GetStrings(section, key string) []string {
	v, ok := c.lookup(section, key)
	if !ok {
		return nil
	}
	switch l := v.(type) {
	case string:
		return strings.Fields(l)
	case []string:
		return append([]string(nil), l...)
	case []interface{}:
		out := make([]string, 0, len(l))
		for _, item := range l {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// StringMap returns the string-valued keys of a section. Other values are
// skipped.
func (c Config) StringMap(section string) map[string]string {
	sec := c.Section(section)
	if len(sec) == 0 {
		return nil
	}
	out := make(map[string]string, len(sec))
	for k, v := range sec {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
