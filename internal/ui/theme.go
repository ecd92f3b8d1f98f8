package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + the panel border.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done                                lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	Border                   lipgloss.Border
}

var current = build("classic")

// SetTheme switches the active theme. Unknown names fall back to classic.
func SetTheme(name string) { current = build(name) }

// Current exposes what renderers need.
func Current() Theme { return current }

func build(name string) Theme {
	base := Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
	}
	switch strings.ToLower(name) {
	case "neon":
		base.Name = "neon"
		base.Title = base.Title.Foreground(lipgloss.Color("13"))
		base.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		base.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		base.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		base.BoxUnchecked, base.BoxChecked = "◻", "◼"
		base.SymDone, base.SymPending = "✔", "•"
		base.Border = lipgloss.RoundedBorder()
	case "mono":
		plain := lipgloss.NewStyle()
		base.Name = "mono"
		base.Title, base.Accent, base.Success, base.Pending, base.Error = plain, plain, plain, plain, plain
		base.Muted = plain
		base.Done = plain.Strikethrough(true)
		base.BoxUnchecked, base.BoxChecked = "[ ]", "[x]"
		base.SymDone, base.SymPending = "x", "-"
		base.Border = lipgloss.ASCIIBorder()
	default:
		base.Name = "classic"
		base.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
		base.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
		base.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
		base.BoxUnchecked, base.BoxChecked = "☐", "☑"
		base.SymDone, base.SymPending = "✔", "•"
		base.Border = lipgloss.NormalBorder()
	}
	return base
}
