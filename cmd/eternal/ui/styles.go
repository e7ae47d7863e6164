// Package ui provides the visual styling for the eternal CLI.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("#5E81AC")
	ColorAccent  = lipgloss.Color("#88C0D0")
	ColorSuccess = lipgloss.Color("#A3BE8C")
	ColorFailure = lipgloss.Color("#BF616A")
	ColorWarning = lipgloss.Color("#EBCB8B")
	ColorMuted   = lipgloss.Color("#4C566A")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	FailureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorFailure)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatementStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)
)

// Verdict renders a proven/failed marker with a trailing message.
func Verdict(ok bool, msg string) string {
	if ok {
		return fmt.Sprintf("%s %s", SuccessStyle.Render("✓"), msg)
	}
	return fmt.Sprintf("%s %s", FailureStyle.Render("✗"), msg)
}
