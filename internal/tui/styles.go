// Package tui renders the Segurab landing page and its assistant modal in
// the terminal.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#2563eb")
	colorAccent  = lipgloss.Color("#22d3ee")
	colorText    = lipgloss.Color("#e5e7eb")
	colorTextDim = lipgloss.Color("#6b7280")
	colorError   = lipgloss.Color("#ef4444")
	colorSurface = lipgloss.Color("#1f2937")
)

var (
	brandStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	heroStyle  = lipgloss.NewStyle().Foreground(colorText).MarginTop(1)
	hintStyle  = lipgloss.NewStyle().Foreground(colorTextDim)
	keyStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)

	// Modal panel before and after the reveal transition.
	modalHiddenStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorTextDim).Padding(0, 1)
	modalVisibleStyle = modalHiddenStyle.BorderForeground(colorAccent)
	modalTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	userBubbleStyle  = lipgloss.NewStyle().Foreground(colorText).Background(colorPrimary).Padding(0, 1)
	agentBubbleStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface).Padding(0, 1)
	errorBubbleStyle = lipgloss.NewStyle().Foreground(colorError).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(colorError).Padding(0, 1)
	typingStyle      = lipgloss.NewStyle().Foreground(colorTextDim)

	inputStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(colorTextDim)
)
