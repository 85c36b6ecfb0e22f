package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusOverdue Status = "overdue"
	StatusPaid    Status = "paid"
)

// Valid reports whether s is one of the known lifecycle statuses
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusOverdue, StatusPaid:
		return true
	}
	return false
}

type DiscountType string

const (
	DiscountFlat    DiscountType = "flat"
	DiscountPercent DiscountType = "percent"
)

// Discount is either a flat amount or a percentage of the line-item
// subtotal. The effective amount is always clamped to the subtotal.
type Discount struct {
	Type  DiscountType `json:"type"`
	Value float64      `json:"value"`
}

type LineItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Total       float64 `json:"total"`
}

// NewLineItem creates a line item with a fresh id and a computed total
func NewLineItem(name, description string, quantity, rate float64) LineItem {
	item := LineItem{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Quantity:    quantity,
		Rate:        rate,
	}
	item.Recalculate()
	return item
}

// Recalculate restores the invariant total = quantity * rate. Total is
// never independently settable.
func (li *LineItem) Recalculate() {
	li.Total = li.Quantity * li.Rate
}

// Totals holds the derived amounts for an invoice. It is a cached pure
// projection of line items, discount, and tax rate.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives invoice totals from its inputs. The discount is
// clamped so the taxable amount never goes negative. All arithmetic is
// floating point; rounding is left to presentation formatting.
func ComputeTotals(items []LineItem, discount Discount, taxRate float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Total
	}

	discountValue := discount.Value
	if discount.Type == DiscountPercent {
		discountValue = subtotal * discount.Value / 100
	}
	if discountValue > subtotal {
		discountValue = subtotal
	}

	taxable := subtotal - discountValue
	tax := taxable * taxRate / 100

	return Totals{
		Subtotal: subtotal,
		Discount: discountValue,
		Tax:      tax,
		Total:    taxable + tax,
	}
}

// Party is a detached snapshot of contact details, used both for the
// invoice sender (company) and the billed client.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Logo    string `json:"logo,omitempty"`
}

type Invoice struct {
	ID        string     `json:"id"`
	Number    string     `json:"number"`
	IssueDate Date       `json:"issueDate"`
	DueDate   Date       `json:"dueDate"`
	Status    Status     `json:"status"`
	Sender    Party      `json:"sender"`
	ClientID  string     `json:"clientId,omitempty"`
	Client    Party      `json:"client"`
	LineItems []LineItem `json:"lineItems"`
	Discount  Discount   `json:"discount"`
	TaxRate   float64    `json:"taxRate"`
	Notes     string     `json:"notes"`
	Totals    Totals     `json:"totals"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewInvoice creates an empty draft invoice. The sender is a snapshot of
// the company profile at creation time, not a live reference.
func NewInvoice(sender Party, now time.Time, dueDays int) *Invoice {
	issued := DateOf(now)
	return &Invoice{
		ID:        uuid.NewString(),
		IssueDate: issued,
		DueDate:   issued.AddDays(dueDays),
		Status:    StatusDraft,
		Sender:    sender,
		Discount:  Discount{Type: DiscountFlat},
		LineItems: make([]LineItem, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Recalculate refreshes the cached totals from the current inputs. Called
// eagerly after every edit so Totals is always consistent before a save.
func (i *Invoice) Recalculate() {
	i.Totals = ComputeTotals(i.LineItems, i.Discount, i.TaxRate)
}

// ResolveStatus advances a sent invoice to overdue once the current time
// passes local midnight of its due date. Paid is absorbing; draft never
// auto-transitions. Returns the status after resolution.
func (i *Invoice) ResolveStatus(now time.Time) Status {
	if i.Status == StatusSent && !i.DueDate.IsZero() && now.After(i.DueDate.Time) {
		i.Status = StatusOverdue
	}
	return i.Status
}

// Clone returns a deep copy decoupled from later mutation of the source
func (i *Invoice) Clone() *Invoice {
	cp := *i
	cp.LineItems = make([]LineItem, len(i.LineItems))
	copy(cp.LineItems, i.LineItems)
	return &cp
}

// Validate returns an error if the invoice is invalid
func (i *Invoice) Validate() error {
	if i.Number == "" {
		return errors.New("invoice number is required")
	}
	if !i.Status.Valid() {
		return errors.New("unknown invoice status")
	}
	if i.TaxRate < 0 {
		return errors.New("tax rate cannot be negative")
	}
	if i.Discount.Value < 0 {
		return errors.New("discount cannot be negative")
	}
	for _, item := range i.LineItems {
		if item.Quantity < 0 || item.Rate < 0 {
			return errors.New("line item quantity and rate cannot be negative")
		}
	}
	return nil
}

// InvoiceRecord is a ledger-resident invoice snapshot. A record is either
// a manually saved invoice or an autosaved draft; the two never mix fields
// implicitly.
type InvoiceRecord struct {
	Invoice
	IsDraft bool       `json:"isDraft,omitempty"`
	SavedAt *time.Time `json:"savedAt,omitempty"`
}

// SavedRecord snapshots an invoice as a manually saved record. Draft-only
// fields are cleared.
func SavedRecord(inv *Invoice) *InvoiceRecord {
	return &InvoiceRecord{Invoice: *inv.Clone()}
}

// DraftRecord snapshots an invoice as an autosaved draft
func DraftRecord(inv *Invoice, now time.Time) *InvoiceRecord {
	return &InvoiceRecord{
		Invoice: *inv.Clone(),
		IsDraft: true,
		SavedAt: &now,
	}
}

// Clone returns a deep copy of the record
func (r *InvoiceRecord) Clone() *InvoiceRecord {
	cp := *r
	cp.Invoice = *r.Invoice.Clone()
	if r.SavedAt != nil {
		at := *r.SavedAt
		cp.SavedAt = &at
	}
	return &cp
}
