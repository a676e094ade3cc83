// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     deployview
// Description: Styles for the deployment progress TUI
// Author:      Mike Stoffels
// Created:     2026-08-18
// License:     MIT
// ============================================================================

package deployview

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette, kept in line with the dark theme of the other tooling
var (
	ColorPrimary = lipgloss.Color("#8B5CF6") // Violet
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorText    = lipgloss.Color("#F8FAFC") // Slate 50
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			MarginBottom(1)

	StepStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	StepDoneStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StepFailedStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)
)
