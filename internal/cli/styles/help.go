package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// SandboxKeyMap defines keybindings for the selection sandbox.
type SandboxKeyMap struct {
	Trigger key.Binding
	Cancel  key.Binding
	Reset   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k SandboxKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Trigger, k.Cancel, k.Reset, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k SandboxKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Trigger, k.Cancel},
		{k.Reset},
		{k.Help, k.Quit},
	}
}

// DefaultSandboxKeyMap returns the default sandbox keybindings. Terminals
// deliver no key-up events, so the trigger key toggles: press to arm, press
// again to release, twice quickly while idle to clear.
func DefaultSandboxKeyMap() SandboxKeyMap {
	return SandboxKeyMap{
		Trigger: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "arm/release trigger (3x fast clears)"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel session"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset page"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a help model with theme styling.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
