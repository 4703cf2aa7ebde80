package tui

import "github.com/charmbracelet/lipgloss"

// Watch view palette.
const (
	ColorHeader = lipgloss.Color("39")  // blue
	ColorGain   = lipgloss.Color("2")   // green
	ColorLoss   = lipgloss.Color("1")   // red
	ColorMuted  = lipgloss.Color("241") // gray
)

// Shared styles for the watch table chrome.
//
//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorHeader).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorMuted).
				BorderBottom(true)

	TableSelectedStyle = lipgloss.NewStyle().Bold(true)

	GainStyle = lipgloss.NewStyle().Foreground(ColorGain)
	LossStyle = lipgloss.NewStyle().Foreground(ColorLoss)

	FooterStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
