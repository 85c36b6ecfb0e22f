package domain

import (
	"testing"
	"time"
)

func items(totals ...float64) []LineItem {
	out := make([]LineItem, len(totals))
	for i, total := range totals {
		out[i] = LineItem{Quantity: 1, Rate: total, Total: total}
	}
	return out
}

func TestComputeTotals_PercentDiscountAndTax(t *testing.T) {
	got := ComputeTotals(items(100), Discount{Type: DiscountPercent, Value: 10}, 8)

	if got.Subtotal != 100 {
		t.Fatalf("expected subtotal 100, got %v", got.Subtotal)
	}
	if got.Discount != 10 {
		t.Fatalf("expected discount 10, got %v", got.Discount)
	}
	// Tax applies to the discounted base: 90 * 8% = 7.2
	if got.Tax != 7.2 {
		t.Fatalf("expected tax 7.2, got %v", got.Tax)
	}
	if got.Total != 97.2 {
		t.Fatalf("expected total 97.2, got %v", got.Total)
	}
}

func TestComputeTotals_FlatDiscountClamped(t *testing.T) {
	got := ComputeTotals(items(30, 20), Discount{Type: DiscountFlat, Value: 500}, 10)

	if got.Discount != 50 {
		t.Fatalf("expected discount clamped to subtotal 50, got %v", got.Discount)
	}
	if got.Tax != 0 {
		t.Fatalf("expected zero tax on zero taxable base, got %v", got.Tax)
	}
	if got.Total != 0 {
		t.Fatalf("expected total 0, got %v", got.Total)
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	got := ComputeTotals(nil, Discount{Type: DiscountFlat}, 20)
	if got != (Totals{}) {
		t.Fatalf("expected all-zero totals, got %+v", got)
	}
}

func TestComputeTotals_NoDiscountNoTax(t *testing.T) {
	got := ComputeTotals(items(10, 15.5), Discount{Type: DiscountFlat}, 0)
	if got.Subtotal != 25.5 || got.Total != 25.5 {
		t.Fatalf("expected subtotal and total 25.5, got %+v", got)
	}
}

func TestLineItemRecalculate(t *testing.T) {
	item := NewLineItem("Design", "", 3, 40)
	if item.Total != 120 {
		t.Fatalf("expected total 120, got %v", item.Total)
	}

	item.Total = 999
	item.Recalculate()
	if item.Total != 120 {
		t.Fatalf("expected total restored to 120, got %v", item.Total)
	}
}

func TestResolveStatus_SentBecomesOverdue(t *testing.T) {
	due, _ := ParseDate("2026-03-10")
	inv := &Invoice{Status: StatusSent, DueDate: due}

	// Exactly midnight of the due date is not yet overdue
	if got := inv.ResolveStatus(due.Time); got != StatusSent {
		t.Fatalf("expected sent at midnight of due date, got %s", got)
	}

	if got := inv.ResolveStatus(due.Time.Add(time.Second)); got != StatusOverdue {
		t.Fatalf("expected overdue after midnight, got %s", got)
	}
}

func TestResolveStatus_PaidIsAbsorbing(t *testing.T) {
	due, _ := ParseDate("2020-01-01")
	inv := &Invoice{Status: StatusPaid, DueDate: due}
	if got := inv.ResolveStatus(time.Now()); got != StatusPaid {
		t.Fatalf("expected paid to stay paid, got %s", got)
	}
}

func TestResolveStatus_DraftNeverAutoTransitions(t *testing.T) {
	due, _ := ParseDate("2020-01-01")
	inv := &Invoice{Status: StatusDraft, DueDate: due}
	if got := inv.ResolveStatus(time.Now()); got != StatusDraft {
		t.Fatalf("expected draft to stay draft, got %s", got)
	}
}

func TestResolveStatus_NoDueDate(t *testing.T) {
	inv := &Invoice{Status: StatusSent}
	if got := inv.ResolveStatus(time.Now()); got != StatusSent {
		t.Fatalf("expected sent without a due date to stay sent, got %s", got)
	}
}

func TestInvoiceClone_Independent(t *testing.T) {
	inv := NewInvoice(Party{Name: "Acme"}, time.Now(), 14)
	inv.LineItems = append(inv.LineItems, NewLineItem("Work", "", 1, 100))

	cp := inv.Clone()
	cp.LineItems[0].Rate = 999
	cp.Client.Name = "Other"

	if inv.LineItems[0].Rate != 100 {
		t.Fatalf("expected original line item untouched, got rate %v", inv.LineItems[0].Rate)
	}
	if inv.Client.Name == "Other" {
		t.Fatalf("expected original client untouched")
	}
}

func TestInvoiceValidate(t *testing.T) {
	now := time.Now()

	inv := NewInvoice(Party{}, now, 14)
	if err := inv.Validate(); err == nil {
		t.Fatalf("expected error for missing number")
	}

	inv.Number = "INV-1001"
	if err := inv.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv.TaxRate = -5
	if err := inv.Validate(); err == nil {
		t.Fatalf("expected error for negative tax rate")
	}
	inv.TaxRate = 0

	inv.Status = Status("bogus")
	if err := inv.Validate(); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestDraftRecord(t *testing.T) {
	now := time.Now()
	inv := NewInvoice(Party{}, now, 14)

	saved := SavedRecord(inv)
	if saved.IsDraft || saved.SavedAt != nil {
		t.Fatalf("expected saved record without draft fields")
	}

	draft := DraftRecord(inv, now)
	if !draft.IsDraft {
		t.Fatalf("expected draft flag set")
	}
	if draft.SavedAt == nil || !draft.SavedAt.Equal(now) {
		t.Fatalf("expected savedAt %v, got %v", now, draft.SavedAt)
	}
}

func TestProductLineItem_Snapshot(t *testing.T) {
	product := NewProduct("Hosting", "Monthly", 25, time.Now())
	item := product.LineItem()

	if item.Quantity != 1 || item.Total != 25 {
		t.Fatalf("expected quantity 1 total 25, got %+v", item)
	}

	product.Rate = 100
	if item.Rate != 25 {
		t.Fatalf("expected line item to keep the rate it was created with")
	}
}
