// ============================================================================
// Acid - Lexer, Parser und REPL
// ============================================================================
//
// Package:     tui
// Description: Lipgloss styles of the interactive REPL
// Author:      Mike Stoffels with Claude
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Transcript
	PromptStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	OutputStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError)

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(colorFg).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)
)

// RenderTitle renders the header line
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

// RenderError renders a failed input's report
func RenderError(report string) string {
	return ErrorMessageStyle.Render(report)
}

// RenderHelp renders key hints
func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}
