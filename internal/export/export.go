// Package export renders a single invoice to its portable forms: a JSON
// document and a flattened CSV of its line items.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/andy/ledgercraft/internal/domain"
)

// csvHeaders is the fixed column set for line-item CSV exports
var csvHeaders = []string{"Item", "Description", "Quantity", "Rate", "Total"}

// InvoiceJSON serializes one invoice as an indented JSON document
func InvoiceJSON(inv *domain.Invoice) ([]byte, error) {
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice: %w", err)
	}
	return data, nil
}

// LineItemsCSV flattens the invoice's line items to CSV with RFC 4180
// quoting for fields containing commas, quotes, or newlines.
func LineItemsCSV(inv *domain.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, item := range inv.LineItems {
		row := []string{
			item.Name,
			item.Description,
			formatAmount(item.Quantity),
			formatAmount(item.Rate),
			formatAmount(item.Total),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// FileStem returns the base name for export files: the invoice number, or
// "invoice" when none is set yet.
func FileStem(inv *domain.Invoice) string {
	if inv.Number == "" {
		return "invoice"
	}
	return inv.Number
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
