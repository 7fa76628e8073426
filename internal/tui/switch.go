// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/quietwire/securetalk/internal/i18n"
)

// switchModel is a reusable binary on/off control. It owns no behavior
// beyond rendering; the hosting view decides when the value changes and
// calls the onValueChange callback it registered.
type switchModel struct {
	value         bool
	focused       bool
	onValueChange func(bool)
}

func newSwitch(value bool, onValueChange func(bool)) switchModel {
	return switchModel{value: value, onValueChange: onValueChange}
}

// Value returns the displayed state.
func (s switchModel) Value() bool { return s.value }

// SetValue updates the displayed state without firing the callback. Used by
// the host to mirror externally supplied values.
func (s *switchModel) SetValue(v bool) { s.value = v }

// Focus and Blur control the focus highlight.
func (s *switchModel) Focus() { s.focused = true }
func (s *switchModel) Blur()  { s.focused = false }

// Toggle flips the displayed value and notifies the host.
func (s *switchModel) Toggle() {
	s.value = !s.value
	if s.onValueChange != nil {
		s.onValueChange(s.value)
	}
}

// View renders the switch as an on/off pill pair.
func (s switchModel) View() string {
	on := i18n.T("switch.on")
	off := i18n.T("switch.off")

	// The current state is rendered as a filled pill, the other one dimmed.
	var onCell, offCell string
	if s.value {
		onCell = switchOnStyle.Render(on)
		offCell = helpStyle.Render(" " + off + " ")
	} else {
		onCell = helpStyle.Render(" " + on + " ")
		offCell = switchOffStyle.Render(off)
	}

	pill := lipgloss.JoinHorizontal(lipgloss.Top, offCell, " ", onCell)
	if s.focused {
		return lipgloss.JoinHorizontal(lipgloss.Top, selectedItemStyle.Render("▸ "), pill)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, "  ", pill)
}
