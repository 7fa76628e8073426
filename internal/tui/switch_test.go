// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"
	"testing"

	"github.com/quietwire/securetalk/internal/i18n"
)

func TestSwitch_ToggleFiresCallback(t *testing.T) {
	var got []bool
	s := newSwitch(false, func(v bool) { got = append(got, v) })

	s.Toggle()
	s.Toggle()

	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Fatalf("unexpected callback values: %v", got)
	}
}

func TestSwitch_SetValueDoesNotFireCallback(t *testing.T) {
	fired := false
	s := newSwitch(false, func(bool) { fired = true })

	s.SetValue(true)
	if fired {
		t.Fatalf("SetValue must not fire the callback")
	}
	if !s.Value() {
		t.Fatalf("expected value true after SetValue")
	}
}

func TestSwitch_ViewReflectsValue(t *testing.T) {
	i18n.Init("en")

	s := newSwitch(true, nil)
	if !strings.Contains(s.View(), i18n.T("switch.on")) {
		t.Fatalf("expected 'on' in view")
	}

	s.SetValue(false)
	if !strings.Contains(s.View(), i18n.T("switch.off")) {
		t.Fatalf("expected 'off' in view")
	}
}
