package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the palette view.
type Styles struct {
	Title      lipgloss.Style
	Prompt     lipgloss.Style
	Breadcrumb lipgloss.Style
	Item       lipgloss.Style
	Selected   lipgloss.Style
	Subtle     lipgloss.Style
	Error      lipgloss.Style
}

// DefaultStyles returns the default palette styling.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true),
		Prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Breadcrumb: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Item:       lipgloss.NewStyle().PaddingLeft(2),
		Selected:   lipgloss.NewStyle().PaddingLeft(0).Foreground(lipgloss.Color("170")).SetString("> "),
		Subtle:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
