// Package ui renders progress lines, tables and prompts for the CLI.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles groups the lipgloss styles used for output to one writer. Colour
// is only emitted when the writer supports it.
type Styles struct {
	Bold  lipgloss.Style
	Dim   lipgloss.Style
	OK    lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
}

// NewStyles returns styles bound to out's colour profile.
func NewStyles(out io.Writer) Styles {
	r := lipgloss.NewRenderer(out)
	return Styles{
		Bold:  r.NewStyle().Bold(true),
		Dim:   r.NewStyle().Faint(true),
		OK:    r.NewStyle().Foreground(lipgloss.Color("2")),
		Warn:  r.NewStyle().Foreground(lipgloss.Color("3")),
		Error: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}
