package main

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF4B4B")
	warningColor = lipgloss.Color("#FFA500")
	freeColor    = lipgloss.Color("#00D7FF")
	mutedColor   = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	stepStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	okStyle = lipgloss.NewStyle().
		Foreground(successColor)

	failStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	skipStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	freeRowStyle = lipgloss.NewStyle().
			Foreground(freeColor)

	ownedRowStyle = lipgloss.NewStyle()

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)
