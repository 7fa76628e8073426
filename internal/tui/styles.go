// package tui provides the terminal user interface for SecureTalk.
// This file defines the shared lipgloss styles used across the different
// views to ensure a consistent look and feel.
package tui // import "github.com/quietwire/securetalk/internal/tui"

import "github.com/charmbracelet/lipgloss"

// colorPalette defines the core colors used in the TUI.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // A nice teal/cyan
	colorSpecial   = lipgloss.Color("208") // An orange for special attention
	colorError     = lipgloss.Color("196") // A bright red
	colorSuccess   = lipgloss.Color("40")  // A nice green
	colorWhite     = lipgloss.Color("231")
)

// Styles defines the reusable lipgloss styles for various UI components.
var (
	// Help text
	helpStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	// Error messages
	errorStyle = lipgloss.NewStyle().Foreground(colorError)

	// Success messages
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	// Special attention messages (e.g., the unsupported-participants warning)
	specialStyle = lipgloss.NewStyle().Foreground(colorSpecial)

	// Main title
	mainTitleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(1, 3)

	// Section titles
	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(1, 2)

	// Lists
	itemStyle         = lipgloss.NewStyle()
	selectedItemStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	// The "read more" affordance, link-like
	linkStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Underline(true)

	// Focus ring for the currently focused control
	focusedStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.Color("237")).
			Padding(0, 1)

	// Switch states
	switchOnStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorSuccess).
			Padding(0, 1)
	switchOffStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.Color("237")).
			Padding(0, 1)

	// Pane around each settings section
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	// Transient status messages
	statusMessageStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(colorWhite).
				Background(colorHighlight)
)
