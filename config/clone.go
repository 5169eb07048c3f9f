// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Deep copy and overlay of config trees.

package config

// Clone returns a deep copy of cfg. Nested objects and arrays are copied so
// the result can be edited without touching cached or shared data.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	return Config(cloneMap(cfg))
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case Section:
		return Section(cloneMap(t))
	case map[string]interface{}:
		return Section(cloneMap(t))
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}

// overlay copies over into dst. Sections present in both are merged key by
// key with over winning; anything else in over replaces dst's value.
func overlay(dst, over Config) {
	for name, raw := range over {
		src := asSection(raw)
		base := dst.Section(name)
		if src == nil || base == nil {
			dst[name] = cloneValue(raw)
			continue
		}
		for k, v := range src {
			base[k] = cloneValue(v)
		}
	}
}
