package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/andy/ledgercraft/internal/domain"
)

func sampleInvoice() *domain.Invoice {
	now := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	inv := domain.NewInvoice(domain.Party{Name: "Acme"}, now, 14)
	inv.Number = "INV-1001"
	inv.LineItems = append(inv.LineItems,
		domain.NewLineItem("Design", "Landing page", 2, 75),
		domain.NewLineItem("Hosting", "Monthly", 1, 25.5),
	)
	inv.Recalculate()
	return inv
}

func TestInvoiceJSON(t *testing.T) {
	inv := sampleInvoice()

	data, err := InvoiceJSON(inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var back domain.Invoice
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if back.Number != "INV-1001" || len(back.LineItems) != 2 {
		t.Fatalf("unexpected round trip: %+v", back)
	}
	if back.Totals.Total != inv.Totals.Total {
		t.Fatalf("expected totals preserved")
	}
}

func TestLineItemsCSV(t *testing.T) {
	data, err := LineItemsCSV(sampleInvoice())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Item,Description,Quantity,Rate,Total" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if lines[1] != "Design,Landing page,2,75,150" {
		t.Fatalf("unexpected row: %s", lines[1])
	}
	if lines[2] != "Hosting,Monthly,1,25.5,25.5" {
		t.Fatalf("unexpected row: %s", lines[2])
	}
}

func TestLineItemsCSV_QuotesSpecialCharacters(t *testing.T) {
	inv := sampleInvoice()
	inv.LineItems = []domain.LineItem{
		domain.NewLineItem(`Widgets, "deluxe"`, "line one\nline two", 1, 10),
	}

	data, err := LineItemsCSV(inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := string(data)
	if !strings.Contains(got, `"Widgets, ""deluxe"""`) {
		t.Fatalf("expected RFC 4180 quoting for commas and quotes, got %s", got)
	}
	if !strings.Contains(got, "\"line one\nline two\"") {
		t.Fatalf("expected embedded newline kept inside quotes, got %s", got)
	}
}

func TestLineItemsCSV_EmptyInvoice(t *testing.T) {
	inv := domain.NewInvoice(domain.Party{}, time.Now(), 14)
	data, err := LineItemsCSV(inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimRight(string(data), "\n") != "Item,Description,Quantity,Rate,Total" {
		t.Fatalf("expected header only, got %s", data)
	}
}

func TestFileStem(t *testing.T) {
	inv := sampleInvoice()
	if got := FileStem(inv); got != "INV-1001" {
		t.Fatalf("expected INV-1001, got %s", got)
	}

	inv.Number = ""
	if got := FileStem(inv); got != "invoice" {
		t.Fatalf("expected fallback stem, got %s", got)
	}
}
