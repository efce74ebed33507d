package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	muted    lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
	info     lipgloss.Style
	selected lipgloss.Style
	box      lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	accent := lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79FF"}
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		subtitle: lipgloss.NewStyle().Bold(true).Underline(true),
		label:    lipgloss.NewStyle().Bold(true),
		focused:  lipgloss.NewStyle().Foreground(accent),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		failure:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		info:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		help: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
