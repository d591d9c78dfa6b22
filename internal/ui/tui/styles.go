package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#8BC34A")
	colorPrimary = lipgloss.Color("#2196F3")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#e53935")
	colorMuted   = lipgloss.Color("#8a94a6")
	colorBorder  = lipgloss.Color("#2a3850")
)

// Styles groups the lipgloss styles of the browser.
type Styles struct {
	Title      lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Chip       lipgloss.Style
	Muted      lipgloss.Style
	GroupTitle lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	TabActive  lipgloss.Style
	TabIdle    lipgloss.Style
	Panel      lipgloss.Style
	Dialog     lipgloss.Style
	Footer     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Status:     lipgloss.NewStyle().Foreground(colorPrimary),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(colorError),
		Warning:    lipgloss.NewStyle().Bold(true).Foreground(colorWarning),
		Chip:       lipgloss.NewStyle().Foreground(lipgloss.Color("#101F38")).Background(colorAccent).Padding(0, 1),
		Muted:      lipgloss.NewStyle().Foreground(colorMuted),
		GroupTitle: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent),
		Label:      lipgloss.NewStyle().Foreground(colorMuted).Width(18),
		Value:      lipgloss.NewStyle(),
		TabActive:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1).Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(colorAccent),
		TabIdle:    lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1).Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(colorBorder),
		Panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		Dialog:     lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorWarning).Padding(1, 2),
		Footer:     lipgloss.NewStyle().Foreground(colorMuted),
	}
}
