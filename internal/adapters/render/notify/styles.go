package notify

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header lipgloss.Style
	owner  lipgloss.Style
	member lipgloss.Style
	room   lipgloss.Style
	detail lipgloss.Style
	empty  lipgloss.Style
}

func newStyles() styles {
	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241")),
		owner:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		member: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		room:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:  lipgloss.NewStyle().Faint(true),
	}
}
