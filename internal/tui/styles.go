package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("99")  // Indigo
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	warningColor = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("196") // Red

	// Base styles
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("0"))

	// Layout
	borderColor    = lipgloss.Color("63")
	appBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// Header/Footer
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	// Status badges
	statusPaidStyle    = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	statusOverdueStyle = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	statusSentStyle    = lipgloss.NewStyle().Foreground(warningColor)
	statusDraftStyle   = lipgloss.NewStyle().Foreground(mutedColor)

	// Charts
	barStyle = lipgloss.NewStyle().Foreground(primaryColor)
)
