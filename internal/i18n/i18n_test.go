// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import (
	"testing"
)

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}

	av := GetAvailableLocales()
	for _, k := range []string{"en", "de"} {
		if _, ok := av[k]; !ok {
			t.Fatalf("expected available locale %q to be present", k)
		}
	}
	if av["de"] != "Deutsch" {
		t.Fatalf("unexpected display name for de: %q", av["de"])
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")

	if got := T("switch.on"); got != "on" {
		t.Fatalf("expected 'on', got %q", got)
	}

	// fmt-style formatting
	got := T("status.participants", 7)
	if got != "Active participants: 7" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	// missing IDs fall back to the ID itself
	if got := T("no.such.key"); got != "no.such.key" {
		t.Fatalf("expected fallback to message ID, got %q", got)
	}

	SetLang("de")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("switch.on"); got != "an" {
		t.Fatalf("expected German 'an', got %q", got)
	}

	// restore default for other tests
	SetLang("en")
}
