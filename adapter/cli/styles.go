package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorText      = lipgloss.Color("252") // White/Gray

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	// StyleReportBox frames the daily report.
	StyleReportBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)
)

// Check renders a completion marker.
func Check(done bool) string {
	if done {
		return StyleSuccess.Render("[x]")
	}
	return StyleSubtle.Render("[ ]")
}

// Percent renders a 0..1 rate as a percentage.
func Percent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}

// ProgressBar renders progress (0..100) as a fixed-width bar.
func ProgressBar(progress, width int) string {
	if width <= 0 {
		width = 20
	}
	progress = max(0, min(100, progress))
	filled := progress * width / 100
	bar := StyleSuccess.Render(strings.Repeat("#", filled)) + StyleSubtle.Render(strings.Repeat("-", width-filled))
	return fmt.Sprintf("[%s] %3d%%", bar, progress)
}

// Section renders a section heading.
func Section(title string) string {
	return StyleSectionTitle.Render(title)
}
