// Package tui renders listings in the terminal: a static table for the list
// command and an interactive browser for the browse command.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#4f46e5")
	success = lipgloss.Color("#16a34a")
	danger  = lipgloss.Color("#dc2626")
	muted   = lipgloss.Color("#6b7280")
	border  = lipgloss.Color("#d1d5db")
)

type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Name     lipgloss.Style
	Meta     lipgloss.Style
	Price    lipgloss.Style
	InStock  lipgloss.Style
	OutStock lipgloss.Style
	Help     lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Border   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1),
		Label:    lipgloss.NewStyle().Foreground(muted),
		Value:    lipgloss.NewStyle().Bold(true),
		Name:     lipgloss.NewStyle().Bold(true),
		Meta:     lipgloss.NewStyle().Foreground(muted),
		Price:    lipgloss.NewStyle().Bold(true).Foreground(success),
		InStock:  lipgloss.NewStyle().Foreground(success),
		OutStock: lipgloss.NewStyle().Foreground(danger),
		Help:     lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(primary).Padding(0, 1),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
		Border:   lipgloss.NewStyle().Foreground(border),
	}
}
