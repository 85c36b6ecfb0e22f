package domain

import "time"

// HistoryLimit caps the recent-save cache. Entries beyond the limit are
// silently dropped; the cache can always be rebuilt from the invoice list.
const HistoryLimit = 10

// HistoryEntry is a denormalized record of a manual save, kept for quick
// recent-activity display. It is a cache, never the only copy of a fact.
type HistoryEntry struct {
	InvoiceID string    `json:"invoiceId"`
	Number    string    `json:"number"`
	Client    string    `json:"client"`
	Total     float64   `json:"total"`
	Status    Status    `json:"status"`
	DueDate   Date      `json:"dueDate"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Ledger is the aggregate root: everything the application persists.
// Array order within Invoices, Clients, Products, and HistoryCache is
// meaningful and preserved across serialization.
type Ledger struct {
	LastInvoiceNumber int              `json:"lastInvoiceNumber"`
	Company           Party            `json:"company"`
	Clients           []*Client        `json:"clients"`
	Products          []*Product       `json:"products"`
	Invoices          []*InvoiceRecord `json:"invoices"`
	Settings          Settings         `json:"settings"`
	HistoryCache      []HistoryEntry   `json:"historyCache"`
}

// NewLedger returns an empty ledger with default settings
func NewLedger() *Ledger {
	return &Ledger{
		LastInvoiceNumber: 1000,
		Clients:           make([]*Client, 0),
		Products:          make([]*Product, 0),
		Invoices:          make([]*InvoiceRecord, 0),
		Settings:          DefaultSettings(),
		HistoryCache:      make([]HistoryEntry, 0),
	}
}

// FindClient returns the client with the given id, or nil. A dangling
// clientId on an invoice resolves to nil and is tolerated by callers.
func (l *Ledger) FindClient(id string) *Client {
	for _, c := range l.Clients {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// FindClientByName returns the first client with the given name, or nil
func (l *Ledger) FindClientByName(name string) *Client {
	for _, c := range l.Clients {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindProduct returns the product with the given id, or nil
func (l *Ledger) FindProduct(id string) *Product {
	for _, p := range l.Products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindInvoice returns the record with the given invoice id, or nil.
// Drafts and saved records share ids; the first match wins, matching
// lookup order in the invoice list.
func (l *Ledger) FindInvoice(id string) *InvoiceRecord {
	for _, r := range l.Invoices {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Clone returns a deep copy of the whole aggregate
func (l *Ledger) Clone() *Ledger {
	cp := &Ledger{
		LastInvoiceNumber: l.LastInvoiceNumber,
		Company:           l.Company,
		Settings:          l.Settings,
		Clients:           make([]*Client, len(l.Clients)),
		Products:          make([]*Product, len(l.Products)),
		Invoices:          make([]*InvoiceRecord, len(l.Invoices)),
		HistoryCache:      make([]HistoryEntry, len(l.HistoryCache)),
	}
	for i, c := range l.Clients {
		client := *c
		cp.Clients[i] = &client
	}
	for i, p := range l.Products {
		product := *p
		cp.Products[i] = &product
	}
	for i, r := range l.Invoices {
		cp.Invoices[i] = r.Clone()
	}
	copy(cp.HistoryCache, l.HistoryCache)
	return cp
}
