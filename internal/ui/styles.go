package ui

import "github.com/charmbracelet/lipgloss"

const (
	accentColor = lipgloss.Color("#2BB3A3")
	softColor   = lipgloss.Color("#7FD8CB")
	mutedColor  = lipgloss.Color("#6B7280")
	textColor   = lipgloss.Color("#FFFFFF")
	errorColor  = lipgloss.Color("#FF4757")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(softColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F5A623"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(softColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)
)
