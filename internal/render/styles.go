package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorAccent  = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles used by diagnostics and token tables. The zero value renders
// plain text.
type Styles struct {
	Location lipgloss.Style
	Error    lipgloss.Style
	Gutter   lipgloss.Style
	Caret    lipgloss.Style
	Hint     lipgloss.Style
	Kind     lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when color is false
func NewStyles(color bool) Styles {
	if !color {
		return Styles{}
	}
	return Styles{
		Location: lipgloss.NewStyle().Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),
		Gutter: lipgloss.NewStyle().Foreground(colorMuted),
		Caret: lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true),
		Hint: lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true),
		Kind: lipgloss.NewStyle().Foreground(colorPrimary),
	}
}
