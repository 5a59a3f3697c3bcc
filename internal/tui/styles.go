package tui

import (
	"github.com/charmbracelet/lipgloss"

	"tedit/internal/config"
)

// Styles holds the lipgloss styles for the editor chrome, colored from the
// config theme section. The mode tag, dirty marker and message styles are
// status bar segments, so they carry the same reverse video as the bar.
type Styles struct {
	StatusBar   lipgloss.Style
	ModeTag     lipgloss.Style
	Dirty       lipgloss.Style
	CommandLine lipgloss.Style
	Info        lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Cursor      lipgloss.Style
	Pager       lipgloss.Style
	PagerTitle  lipgloss.Style
	Hint        lipgloss.Style
}

// NewStyles builds the style set from the configured theme.
func NewStyles(cfg *config.Config) Styles {
	return Styles{
		StatusBar: lipgloss.NewStyle().
			Reverse(true),

		ModeTag: lipgloss.NewStyle().
			Reverse(true).
			Bold(true).
			Foreground(lipgloss.Color(cfg.Theme.Primary)),

		Dirty: lipgloss.NewStyle().
			Reverse(true).
			Bold(true).
			Foreground(lipgloss.Color(cfg.Theme.Emphasis)),

		CommandLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Emphasis)),

		Info: lipgloss.NewStyle().
			Reverse(true).
			Foreground(lipgloss.Color(cfg.Theme.Success)),

		Warning: lipgloss.NewStyle().
			Reverse(true).
			Foreground(lipgloss.Color(cfg.Theme.Warning)),

		Error: lipgloss.NewStyle().
			Reverse(true).
			Foreground(lipgloss.Color(cfg.Theme.Error)),

		Cursor: lipgloss.NewStyle().
			Reverse(true),

		Pager: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(cfg.Theme.Border)),

		PagerTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(cfg.Theme.Primary)),

		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A9")),
	}
}
