// Package display renders finalized ticker records as a terminal table
// or as JSON/NDJSON for machine consumption.
package display

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// placeholder is rendered for values the fetch did not provide.
const placeholder = "N/A"

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Percent styles: gains green, losses red, zero unstyled.
//
//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	gainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	lossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// FormatPrice formats a price with thousand separators and two
// decimals, or N/A when absent. Example: 1234.5 -> "1,234.50".
func FormatPrice(v *float64) string {
	if v == nil {
		return placeholder
	}
	return printer.Sprintf("%.2f", *v)
}

// FormatValue formats a plain metric to two decimals, or N/A.
func FormatValue(v *float64) string {
	if v == nil {
		return placeholder
	}
	return printer.Sprintf("%.2f", *v)
}

// FormatPercent formats a percent change with color: green for gains,
// red for losses, plain for zero or absent values.
func FormatPercent(v *float64) string {
	if v == nil {
		return placeholder
	}
	formatted := printer.Sprintf("%.2f%%", *v)
	switch {
	case *v > 0:
		return gainStyle.Render(formatted)
	case *v < 0:
		return lossStyle.Render(formatted)
	default:
		return formatted
	}
}
