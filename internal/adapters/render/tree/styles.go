package tree

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	branch      lipgloss.Style
	placeholder lipgloss.Style
	action      lipgloss.Style
	sub         lipgloss.Style
	subID       lipgloss.Style
	empty       lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		branch:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		placeholder: lipgloss.NewStyle().Faint(true),
		action:      lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		sub:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		subID:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:       lipgloss.NewStyle().Faint(true),
	}
}
