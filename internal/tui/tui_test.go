// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quietwire/securetalk/internal/analytics"
	"github.com/quietwire/securetalk/internal/db"
	"github.com/quietwire/securetalk/internal/i18n"
	"github.com/quietwire/securetalk/internal/model"
	"github.com/quietwire/securetalk/internal/state"
)

func newTestMainModel(t *testing.T) mainModel {
	t.Helper()
	i18n.Init("en")

	dsn := "file:tui_" + t.Name() + "?mode=memory&cache=shared"
	s, err := db.NewStoreFromDSN("sqlite", dsn)
	if err != nil {
		t.Fatalf("NewStoreFromDSN failed: %v", err)
	}
	if err := db.EnsureDefaults(s); err != nil {
		t.Fatalf("EnsureDefaults failed: %v", err)
	}
	st, err := state.New(s)
	if err != nil {
		t.Fatalf("state.New failed: %v", err)
	}
	return initialModel(st, analytics.NopSink{}, nil)
}

func TestMenu_NavigationAndSelection(t *testing.T) {
	m := newTestMainModel(t)
	if m.viewState != menuView {
		t.Fatalf("expected initial view to be the menu")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(mainModel)
	if m.menu.cursor != 1 {
		t.Fatalf("expected cursor 1 after down, got %d", m.menu.cursor)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m = updated.(mainModel)
	if m.menu.cursor != 0 {
		t.Fatalf("expected cursor 0 after up, got %d", m.menu.cursor)
	}

	// enter opens the security section with props derived from the store
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(mainModel)
	if m.viewState != securityView {
		t.Fatalf("expected security view after enter")
	}
	if m.security.enabled {
		t.Fatalf("expected derived enabled=false from freshly seeded store")
	}
	if m.security.props.Fingerprint == "" {
		t.Fatalf("expected fingerprint prop from the store")
	}
}

func TestSecurityView_BackToMenu(t *testing.T) {
	m := newTestMainModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(mainModel)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(mainModel)
	if cmd == nil {
		t.Fatalf("expected a back command from esc")
	}
	updated, _ = m.Update(cmd())
	m = updated.(mainModel)
	if m.viewState != menuView {
		t.Fatalf("expected to be back at the menu")
	}
}

func TestSecurityStateMsg_SyncsProps(t *testing.T) {
	m := newTestMainModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(mainModel)

	updated, _ = m.Update(securityStateMsg{state: model.SecurityState{
		EncryptionEnabled:          true,
		EveryoneSupportsEncryption: false,
		Fingerprint:                "AAAA",
	}})
	m = updated.(mainModel)

	if !m.security.enabled {
		t.Fatalf("expected enabled derived from snapshot")
	}
	if m.security.props.EveryoneSupportsEncryption {
		t.Fatalf("expected warning prop from snapshot")
	}
}

func TestLanguageView_SelectPersistsAndReinitializes(t *testing.T) {
	m := newTestMainModel(t)

	var saved string
	prev := saveLanguage
	saveLanguage = func(lang string) error { saved = lang; return nil }
	defer func() { saveLanguage = prev; i18n.SetLang("en") }()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	m = updated.(mainModel)
	if m.viewState != languageView {
		t.Fatalf("expected language view after L")
	}

	// locales are sorted; cursor 0 is "de"
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(mainModel)
	if saved != "de" {
		t.Fatalf("expected 'de' persisted, got %q", saved)
	}
	if cmd == nil {
		t.Fatalf("expected languageChangedMsg command")
	}
	updated, _ = m.Update(cmd())
	m = updated.(mainModel)
	if m.viewState != menuView {
		t.Fatalf("expected re-initialized model at the menu")
	}
}

func TestLanguageModel_OrderedKeys(t *testing.T) {
	i18n.Init("en")
	lm := newLanguageModel()
	if len(lm.orderedKeys) < 2 {
		t.Fatalf("expected at least two locales, got %v", lm.orderedKeys)
	}
	for i := 1; i < len(lm.orderedKeys); i++ {
		if lm.orderedKeys[i-1] >= lm.orderedKeys[i] {
			t.Fatalf("locale keys not sorted: %v", lm.orderedKeys)
		}
	}
}

func TestMenuView_RendersSections(t *testing.T) {
	m := newTestMainModel(t)
	out := m.View()
	if !strings.Contains(out, i18n.T("settings.section.security")) {
		t.Fatalf("expected security section in menu view")
	}
	if !strings.Contains(out, i18n.T("settings.section.language")) {
		t.Fatalf("expected language section in menu view")
	}
}

func TestAlignFooter(t *testing.T) {
	got := alignFooter("left", "right", 20)
	if len([]rune(got)) != 20 {
		t.Fatalf("expected padded width 20, got %d (%q)", len([]rune(got)), got)
	}
	if !strings.HasPrefix(got, "left") || !strings.HasSuffix(got, "right") {
		t.Fatalf("unexpected footer layout: %q", got)
	}

	// too narrow: degrade to a single space separator
	if got := alignFooter("left", "right", 5); got != "left right" {
		t.Fatalf("unexpected narrow footer: %q", got)
	}
}
