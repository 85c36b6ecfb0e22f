package tui

import (
	"fmt"

	"github.com/andy/ledgercraft/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// formatMoney formats an amount as "$X,XXX.XX" with comma separators
func formatMoney(symbol string, amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)

	// Split at decimal point
	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	// Add commas to integer part
	result := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	prefix := symbol
	if negative {
		prefix = "-" + symbol
	}
	return prefix + string(result) + decPart
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// orNoNumber substitutes a placeholder for an unassigned invoice number
func orNoNumber(number string) string {
	if number == "" {
		return "(no number)"
	}
	return number
}

// statusBadge renders a colored status label
func statusBadge(status domain.Status) string {
	var style lipgloss.Style
	switch status {
	case domain.StatusPaid:
		style = statusPaidStyle
	case domain.StatusOverdue:
		style = statusOverdueStyle
	case domain.StatusSent:
		style = statusSentStyle
	default:
		style = statusDraftStyle
	}
	return style.Render(string(status))
}
