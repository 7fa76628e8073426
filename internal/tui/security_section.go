// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quietwire/securetalk/internal/analytics"
	"github.com/quietwire/securetalk/internal/i18n"
	"github.com/quietwire/securetalk/internal/logging"
	"github.com/quietwire/securetalk/internal/state"
)

// descriptionLimit is the number of characters of the description shown
// before the "read more" affordance.
const descriptionLimit = 100

// securityProps are the externally supplied inputs for the security section,
// derived from the state store's snapshot.
type securityProps struct {
	Enabled                    bool
	EveryoneSupportsEncryption bool
	Fingerprint                string
}

// dispatcher forwards user intents to the state store. Tests substitute a
// recording implementation.
type dispatcher interface {
	Dispatch(ctx context.Context, action any) error
}

// securityFocus identifies which control currently has keyboard focus.
type securityFocus int

const (
	focusReadMore securityFocus = iota
	focusSwitch
)

// dispatchDoneMsg signals that an async dispatch finished. There is no
// rollback: the optimistic local value stands until the store pushes a new
// snapshot.
type dispatchDoneMsg struct{}

// securityKeyMap defines the keybindings of the security section.
type securityKeyMap struct {
	Tab      key.Binding
	Activate key.Binding
	Copy     key.Binding
	Back     key.Binding
}

func newSecurityKeyMap() securityKeyMap {
	return securityKeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "activate"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy fingerprint"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k securityKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Activate, k.Copy, k.Back}
}

// FullHelp implements help.KeyMap.
func (k securityKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.Activate}, {k.Copy, k.Back}}
}

// securitySectionModel renders the end-to-end encryption section of the
// settings panel and forwards the toggle intent to the state store.
type securitySectionModel struct {
	// Props, plus the last external enabled value seen. The local enabled
	// flag is optimistic: it flips immediately on toggle and is overwritten
	// whenever the external value changes.
	props       securityProps
	prevEnabled bool
	enabled     bool
	expand      bool

	focus securityFocus
	sw    switchModel
	vp    viewport.Model
	help  help.Model
	keys  securityKeyMap

	store dispatcher
	sink  analytics.Sink
	// clipboardWrite is swapped in tests.
	clipboardWrite func(string) error

	status string
	width  int
}

func newSecuritySectionModel(store dispatcher, sink analytics.Sink) securitySectionModel {
	m := securitySectionModel{
		enabled:        false,
		expand:         false,
		focus:          focusReadMore,
		sw:             newSwitch(false, nil),
		vp:             viewport.New(72, 6),
		help:           help.New(),
		keys:           newSecurityKeyMap(),
		store:          store,
		sink:           sink,
		clipboardWrite: clipboard.WriteAll,
		width:          80,
	}
	return m
}

// syncProps reconciles local state with externally supplied props. It runs
// before every render pass: the parent calls it on each snapshot delivery.
// The local enabled flag is overwritten only when the external value has
// changed since it was last seen, so an optimistic toggle survives until the
// store confirms or corrects it.
func (m securitySectionModel) syncProps(p securityProps) securitySectionModel {
	if p.Enabled != m.prevEnabled {
		m.enabled = p.Enabled
	}
	m.prevEnabled = p.Enabled
	m.props = p
	m.sw.SetValue(m.enabled)
	return m
}

func (m securitySectionModel) Init() tea.Cmd {
	return nil
}

func (m securitySectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.vp.Width = msg.Width - 8
		if m.expand {
			m.vp.SetContent(m.descriptionContent())
		}
		return m, nil

	case dispatchDoneMsg:
		return m, nil

	case tea.KeyMsg:
		// Any keypress clears a transient status line.
		m.status = ""

		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return backToMenuMsg{} }

		case key.Matches(msg, m.keys.Tab):
			m = m.cycleFocus()
			return m, nil

		case key.Matches(msg, m.keys.Copy):
			m = m.copyFingerprint()
			return m, nil

		case key.Matches(msg, m.keys.Activate):
			switch m.focus {
			case focusReadMore:
				// Enter and space expand; the key is consumed here and
				// never reaches the switch. Re-expanding is a no-op.
				m = m.doExpand()
				return m, nil
			case focusSwitch:
				return m.doToggle()
			}
			return m, nil
		}

		// Everything else scrolls the expanded description.
		if m.expand {
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// cycleFocus moves keyboard focus between the read-more affordance and the
// switch. Once expanded the affordance is gone and the switch keeps focus.
func (m securitySectionModel) cycleFocus() securitySectionModel {
	if m.expand {
		m.focus = focusSwitch
	} else if m.focus == focusReadMore {
		m.focus = focusSwitch
	} else {
		m.focus = focusReadMore
	}
	if m.focus == focusSwitch {
		m.sw.Focus()
	} else {
		m.sw.Blur()
	}
	return m
}

// doExpand sets the expand flag. It is permanent for the lifetime of the
// section and idempotent.
func (m securitySectionModel) doExpand() securitySectionModel {
	if m.expand {
		return m
	}
	m.expand = true
	m.vp.SetContent(m.descriptionContent())
	// The affordance disappears, so focus moves to the switch.
	m.focus = focusSwitch
	m.sw.Focus()
	return m
}

// doToggle flips the local enabled flag optimistically, emits the analytics
// event, and dispatches the intent to the store, in that order.
func (m securitySectionModel) doToggle() (tea.Model, tea.Cmd) {
	newValue := !m.enabled
	m.enabled = newValue
	m.sw.SetValue(newValue)

	m.sink.Track(context.Background(), analytics.Event{
		Name:  "encryption_toggled",
		Value: strconv.FormatBool(newValue),
	})

	store := m.store
	return m, func() tea.Msg {
		if err := store.Dispatch(context.Background(), state.SetEncryptionEnabled{Enabled: newValue}); err != nil {
			logging.Errorf("failed to dispatch encryption toggle: %v", err)
		}
		return dispatchDoneMsg{}
	}
}

func (m securitySectionModel) copyFingerprint() securitySectionModel {
	if m.props.Fingerprint == "" {
		return m
	}
	if err := m.clipboardWrite(m.props.Fingerprint); err != nil {
		logging.Warnf("failed to copy fingerprint: %v", err)
		return m
	}
	m.status = i18n.T("security.fingerprint_copied")
	return m
}

func (m securitySectionModel) descriptionContent() string {
	return lipgloss.NewStyle().Width(m.vp.Width).Render(i18n.T("security.description"))
}

func (m securitySectionModel) View() string {
	title := titleStyle.Render("🔒 " + i18n.T("security.title"))

	var items []string

	// Description region: full text when expanded, otherwise the first 100
	// characters plus the read-more affordance.
	if m.expand {
		items = append(items, m.vp.View())
	} else {
		desc := truncateRunes(i18n.T("security.description"), descriptionLimit)
		affordance := linkStyle.Render(i18n.T("security.read_more"))
		if m.focus == focusReadMore {
			affordance = selectedItemStyle.Render("▸ ") + affordance
		} else {
			affordance = "  " + affordance
		}
		items = append(items, lipgloss.NewStyle().Width(m.width-8).Render(desc), affordance)
	}

	if !m.props.EveryoneSupportsEncryption {
		items = append(items, "", specialStyle.Render("⚠ "+i18n.T("security.warning")))
	}

	items = append(items, "",
		lipgloss.JoinHorizontal(lipgloss.Top, i18n.T("security.label"), "  ", m.sw.View()))

	items = append(items, "",
		helpStyle.Render(i18n.T("security.fingerprint", m.props.Fingerprint)))

	if m.status != "" {
		items = append(items, "", statusMessageStyle.Render(m.status))
	}

	pane := paneStyle.Width(m.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, items...))
	footer := m.help.View(m.keys)

	return lipgloss.JoinVertical(lipgloss.Left, title, pane, "", footer)
}
