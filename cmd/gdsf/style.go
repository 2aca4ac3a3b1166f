package main

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")). // green
		Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")). // dark grey
			Width(10)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)
)

var titleCaser = cases.Title(language.English)

// propertyTitle renders a schema property for display; untyped schemas
// are grouped under "Untyped".
func propertyTitle(p string) string {
	if p == "" {
		return "Untyped"
	}
	return titleCaser.String(p)
}
