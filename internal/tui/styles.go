// Package tui renders the intake form and the schedule checklist.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent   = lipgloss.Color("#92AEFA")
	colorDone     = lipgloss.Color("#8BC34A")
	colorMuted    = lipgloss.Color("#6B7280")
	colorWarning  = lipgloss.Color("#FFC107")
	colorError    = lipgloss.Color("#E53935")
	colorSelected = lipgloss.Color("#101F38")
)

// Styles groups the lipgloss styles shared by both screens.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Option   lipgloss.Style
	Chosen   lipgloss.Style
	Cursor   lipgloss.Style
	Button   lipgloss.Style
	Focused  lipgloss.Style
	Done     lipgloss.Style
	Pending  lipgloss.Style
	Muted    lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Congrats lipgloss.Style
}

// DefaultStyles returns the RunBuddy palette.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Label:    lipgloss.NewStyle().Bold(true),
		Option:   lipgloss.NewStyle().Padding(0, 1),
		Chosen:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorSelected).Background(colorAccent),
		Cursor:   lipgloss.NewStyle().Padding(0, 1).Underline(true).Foreground(colorAccent),
		Button:   lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()),
		Focused:  lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Bold(true),
		Done:     lipgloss.NewStyle().Foreground(colorDone),
		Pending:  lipgloss.NewStyle(),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Warning:  lipgloss.NewStyle().Foreground(colorWarning),
		Error:    lipgloss.NewStyle().Foreground(colorError),
		Status:   lipgloss.NewStyle().Bold(true),
		Congrats: lipgloss.NewStyle().Bold(true).Foreground(colorDone),
	}
}
