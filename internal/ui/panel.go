package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// PanelString frames lines in the current theme's border.
func PanelString(lines []string) string {
	border := lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// OK and Fail print one-line status messages.
func OK(msg string) { Fprint(os.Stdout, current.Success, current.SymDone+" "+msg) }
func Fail(msg string) { Fprint(os.Stderr, current.Error, "✖ "+msg) }

// Fprint writes a styled line to w.
func Fprint(w io.Writer, s lipgloss.Style, msg string) {
	fmt.Fprintln(w, s.Render(msg))
}
