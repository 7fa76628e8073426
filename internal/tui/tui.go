// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for SecureTalk.
// This file, tui.go, is the main entry point for the TUI, containing the
// top-level model that acts as a router to the settings sections.
package tui // import "github.com/quietwire/securetalk/internal/tui"

import (
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/quietwire/securetalk/internal/analytics"
	"github.com/quietwire/securetalk/internal/config"
	"github.com/quietwire/securetalk/internal/i18n"
	"github.com/quietwire/securetalk/internal/logging"
	"github.com/quietwire/securetalk/internal/model"
	"github.com/quietwire/securetalk/internal/state"
)

// viewState represents which part of the UI is currently active.
type viewState int

const (
	// menuView is the settings section list.
	menuView viewState = iota
	securityView
	languageView
)

// backToMenuMsg is sent by sub-views to return to the section list.
type backToMenuMsg struct{}

// securityStateMsg carries a fresh snapshot from the state store.
type securityStateMsg struct {
	state model.SecurityState
}

// languageChangedMsg signals that the language has changed and the UI should
// be re-initialized so every visible string is re-translated.
type languageChangedMsg struct{}

// saveLanguage persists the selected language. Swapped in tests.
var saveLanguage = func(lang string) error {
	viper.Set("language", lang)
	var c config.Config
	if err := viper.Unmarshal(&c); err != nil {
		return err
	}
	return config.WriteConfigFile(&c, false)
}

// mainModel is the top-level model for the TUI. It acts as a state machine
// and router, delegating updates and view rendering to the active sub-model.
type mainModel struct {
	viewState viewState
	menu      menuModel
	security  securitySectionModel
	language  languageModel

	store   *state.Store
	sink    analytics.Sink
	updates <-chan model.SecurityState

	width  int
	height int
	err    error
}

// menuModel holds the state for the settings section list.
type menuModel struct {
	choices []string
	cursor  int
}

// languageModel holds the state for the language selection menu.
type languageModel struct {
	choices     map[string]string // map of lang code to display name
	orderedKeys []string          // for stable iteration
	cursor      int
}

func initialModel(store *state.Store, sink analytics.Sink, updates <-chan model.SecurityState) mainModel {
	return mainModel{
		viewState: menuView,
		menu: menuModel{
			choices: []string{
				i18n.T("settings.section.security"),
				i18n.T("settings.section.language"),
			},
		},
		store:   store,
		sink:    sink,
		updates: updates,
	}
}

// securityPropsFromState maps a store snapshot onto section props.
func securityPropsFromState(s model.SecurityState) securityProps {
	return securityProps{
		Enabled:                    s.EncryptionEnabled,
		EveryoneSupportsEncryption: s.EveryoneSupportsEncryption,
		Fingerprint:                s.Fingerprint,
	}
}

// waitForStateCmd blocks on the store subscription channel and delivers the
// next snapshot as a message. It is re-armed after every delivery.
func waitForStateCmd(updates <-chan model.SecurityState) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return securityStateMsg{state: s}
	}
}

func (m mainModel) Init() tea.Cmd {
	return waitForStateCmd(m.updates)
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings that work everywhere.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case securityStateMsg:
		// New authoritative snapshot: re-derive the security section's
		// local state before the next render, then re-arm the listener.
		m.security = m.security.syncProps(securityPropsFromState(msg.state))
		return m, waitForStateCmd(m.updates)

	case languageChangedMsg:
		// Re-initialize the whole model so new translations apply everywhere.
		newModel := initialModel(m.store, m.sink, m.updates)
		newModel.width = m.width
		newModel.height = m.height
		return newModel, newModel.Init()
	}

	// Delegate updates to the currently active view.
	switch m.viewState {
	case securityView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.viewState = menuView
			return m, nil
		}
		var newSecurityModel tea.Model
		newSecurityModel, cmd = m.security.Update(msg)
		m.security = newSecurityModel.(securitySectionModel)

	case languageView:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q", "esc":
				m.viewState = menuView
				return m, nil
			case "up", "k":
				if m.language.cursor > 0 {
					m.language.cursor--
				}
			case "down", "j":
				if m.language.cursor < len(m.language.orderedKeys)-1 {
					m.language.cursor++
				}
			case "enter":
				langCode := m.language.orderedKeys[m.language.cursor]
				i18n.SetLang(langCode)
				if err := saveLanguage(langCode); err != nil {
					m.err = fmt.Errorf("failed to save config: %w", err)
				}
				return m, func() tea.Msg { return languageChangedMsg{} }
			}
		}

	default: // menuView
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q":
				return m, tea.Quit
			case "up", "k":
				if m.menu.cursor > 0 {
					m.menu.cursor--
				}
			case "down", "j":
				if m.menu.cursor < len(m.menu.choices)-1 {
					m.menu.cursor++
				}
			case "enter":
				switch m.menu.cursor {
				case 0: // Security
					m.viewState = securityView
					// The section mounts with local state {enabled:false,
					// expand:false}; the first prop sync corrects enabled.
					m.security = newSecuritySectionModel(m.store, m.sink)
					m.security = m.security.syncProps(securityPropsFromState(m.store.Snapshot()))
					var updatedModel tea.Model
					updatedModel, cmd = m.security.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
					m.security = updatedModel.(securitySectionModel)
					return m, cmd
				case 1: // Language
					m.viewState = languageView
					m.language = newLanguageModel()
					return m, nil
				}
			case "L":
				m.viewState = languageView
				m.language = newLanguageModel()
				return m, nil
			}
		}
	}

	return m, cmd
}

func (m mainModel) View() string {
	if m.err != nil {
		return errorStyle.Padding(1, 2).Render(fmt.Sprintf("An error occurred: %v", m.err))
	}

	switch m.viewState {
	case securityView:
		return m.security.View()
	case languageView:
		return m.language.View()
	default:
		return m.menu.View(m.width)
	}
}

// View renders the settings section list.
func (m menuModel) View(width int) string {
	title := mainTitleStyle.Render("🔐 " + i18n.T("settings.title"))
	subTitle := helpStyle.Render(i18n.T("settings.subtitle"))
	header := lipgloss.JoinVertical(lipgloss.Left, title, subTitle)

	var menuItems []string
	for i, choice := range m.choices {
		if m.cursor == i {
			menuItems = append(menuItems, selectedItemStyle.Render("▸ "+choice))
		} else {
			menuItems = append(menuItems, itemStyle.Render("  "+choice))
		}
	}
	menuPane := paneStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, menuItems...))

	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("236")).Padding(0, 1).Italic(true)
	footer := footerStyle.Render(alignFooter(i18n.T("settings.footer"), "", width))

	return lipgloss.JoinVertical(lipgloss.Left, header, menuPane, "", footer)
}

// newLanguageModel creates a new model for the language selection view.
func newLanguageModel() languageModel {
	choices := i18n.GetAvailableLocales()

	keys := make([]string, 0, len(choices))
	for k := range choices {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return languageModel{
		choices:     choices,
		orderedKeys: keys,
		cursor:      0,
	}
}

func (m languageModel) Init() tea.Cmd { return nil }

func (m languageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return m, nil }

func (m languageModel) View() string {
	title := mainTitleStyle.Render("🌐 " + i18n.T("settings.section.language"))

	var listItems []string
	listItems = append(listItems, titleStyle.Render(i18n.T("language.select")), "")

	for i, langCode := range m.orderedKeys {
		displayName := m.choices[langCode]
		if m.cursor == i {
			listItems = append(listItems, selectedItemStyle.Render("▸ "+displayName))
		} else {
			listItems = append(listItems, itemStyle.Render("  "+displayName))
		}
	}

	listPane := paneStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, listItems...))
	helpLine := helpStyle.Render(i18n.T("language.help"))

	return lipgloss.JoinVertical(lipgloss.Left, title, listPane, "", helpLine)
}

// Run is the main entrypoint for the TUI. It wires the state store's change
// feed into the Bubble Tea program and runs it.
func Run(store *state.Store, sink analytics.Sink) {
	updates := make(chan model.SecurityState, 8)
	store.Subscribe(func(s model.SecurityState) {
		// Drop rather than block the dispatching goroutine.
		select {
		case updates <- s:
		default:
		}
	})

	if _, err := tea.NewProgram(initialModel(store, sink, updates)).Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		os.Exit(1)
	}
}
