// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package defaults

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestModesMatchShippedFiles(t *testing.T) {
	if got := Modes(); !reflect.DeepEqual(got, []string{"dmenu", "run"}) {
		t.Fatalf("modes = %q", got)
	}
	for _, m := range Modes() {
		data, err := ModeConfig(m)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if !json.Valid(data) {
			t.Fatalf("%s: invalid JSON", m)
		}
	}
}

func TestModeConfigRejectsUnknown(t *testing.T) {
	for _, m := range []string{"", "ssh", "../run", "run/../dmenu"} {
		if _, err := ModeConfig(m); !errors.Is(err, ErrNoMode) {
			t.Fatalf("%q: err = %v", m, err)
		}
	}
}

func TestSystemConfigIsValidJSON(t *testing.T) {
	data, err := SystemConfig()
	if err != nil {
		t.Fatal(err)
	}
	var v map[string]interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatal(err)
	}
	if v["defaultMode"] != "run" {
		t.Fatalf("defaultMode = %v", v["defaultMode"])
	}
}
