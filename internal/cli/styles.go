package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	glyphStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// field renders an aligned "label: value" line.
func field(label, value string) string {
	return labelStyle.Render(padRight(label+":", 12, len(label)+1)) + value
}

// padRight pads s, whose terminal width is width, to n cells.
func padRight(s string, n, width int) string {
	if width >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-width)
}
