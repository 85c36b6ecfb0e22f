package cli

import (
	"fmt"

	"github.com/andy/ledgercraft/internal/domain"
)

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// money formats an amount with the ledger's currency symbol
func money(v float64) string {
	symbol := "$"
	if appInstance != nil {
		symbol = appInstance.Store.Settings().Currency.Symbol
	}
	return fmt.Sprintf("%s%.2f", symbol, v)
}

// orDash substitutes a dash for empty display values
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// parseStatus validates a status flag value
func parseStatus(s string) (domain.Status, error) {
	status := domain.Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q (draft, sent, overdue, paid)", s)
	}
	return status, nil
}
