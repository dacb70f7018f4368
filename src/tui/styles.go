package tui

import "github.com/charmbracelet/lipgloss"

// StyleConfig holds the customizable colors for the triage UI.
type StyleConfig struct {
	Accent        lipgloss.Color
	AccentDim     lipgloss.Color
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	ErrorColor    lipgloss.Color
	BorderColor   lipgloss.Color
	SelectedColor lipgloss.Color
}

// DefaultStyles returns the default color palette.
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		Accent:        lipgloss.Color("#8AB4F8"),
		AccentDim:     lipgloss.Color("#4285F4"),
		TextPrimary:   lipgloss.Color("#E8EAED"),
		TextSecondary: lipgloss.Color("#9AA0A6"),
		ErrorColor:    lipgloss.Color("#EA4335"),
		BorderColor:   lipgloss.Color("#5F6368"),
		SelectedColor: lipgloss.Color("#303134"),
	}
}

// TitleStyle returns the header bar style.
func (s *StyleConfig) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Accent).
		Bold(true).
		Padding(0, 1)
}

// HelpStyle returns the bottom help line style.
func (s *StyleConfig) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.TextSecondary).
		Padding(0, 2)
}

// PanelStyle returns the bordered container style shared by both panels.
func (s *StyleConfig) PanelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.BorderColor)
}
