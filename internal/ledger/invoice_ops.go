package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andy/ledgercraft/internal/domain"
)

// NewInvoice starts a fresh working invoice. The sender is snapshotted
// from the company profile; the due date defaults to dueDays after today.
func (s *Store) NewInvoice(dueDays int) *domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = domain.NewInvoice(s.ledger.Company, s.now(), dueDays)
	if err := s.flushWorking(); err != nil {
		s.log.Warn().Err(err).Msg("working invoice not written to session slot")
	}
	return s.current.Clone()
}

// Current returns a copy of the working invoice, or nil if none exists
func (s *Store) Current() *domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return s.current.Clone()
}

// LoadInvoice makes a saved invoice the working invoice again. The record
// keeps its id, so a later save updates it in place.
func (s *Store) LoadInvoice(id string) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.ledger.FindInvoice(id)
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvoiceNotFound, id)
	}
	rec.ResolveStatus(s.now())
	s.current = rec.Invoice.Clone()
	if err := s.flushWorking(); err != nil {
		return nil, err
	}
	return s.current.Clone(), nil
}

// EditCurrent applies mutate to the working invoice and refreshes its
// cached totals. Line-item totals are restored first so they can never be
// set independently of quantity and rate.
func (s *Store) EditCurrent(mutate func(*domain.Invoice)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoCurrentInvoice
	}
	mutate(s.current)
	for idx := range s.current.LineItems {
		s.current.LineItems[idx].Recalculate()
	}
	s.current.Recalculate()
	return s.flushWorking()
}

// AddLineItem appends a blank-or-filled line item to the working invoice
func (s *Store) AddLineItem(name, description string, quantity, rate float64) (domain.LineItem, error) {
	item := domain.NewLineItem(name, description, quantity, rate)
	err := s.EditCurrent(func(inv *domain.Invoice) {
		inv.LineItems = append(inv.LineItems, item)
	})
	return item, err
}

// AddProductItem copies a product into a new line item on the working
// invoice. Snapshot semantics: later product edits leave the item alone.
func (s *Store) AddProductItem(productID string) (domain.LineItem, error) {
	s.mu.Lock()
	product := s.ledger.FindProduct(productID)
	s.mu.Unlock()
	if product == nil {
		return domain.LineItem{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	item := product.LineItem()
	err := s.EditCurrent(func(inv *domain.Invoice) {
		inv.LineItems = append(inv.LineItems, item)
	})
	return item, err
}

// RemoveLineItem deletes a line item from the working invoice by id
func (s *Store) RemoveLineItem(itemID string) error {
	found := false
	err := s.EditCurrent(func(inv *domain.Invoice) {
		for idx, item := range inv.LineItems {
			if item.ID == itemID {
				inv.LineItems = append(inv.LineItems[:idx], inv.LineItems[idx+1:]...)
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrLineItemNotFound, itemID)
	}
	return nil
}

// UseClient binds the working invoice to a registered client and copies
// the client's details into the invoice snapshot.
func (s *Store) UseClient(clientID string) error {
	s.mu.Lock()
	client := s.ledger.FindClient(clientID)
	s.mu.Unlock()
	if client == nil {
		return fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
	}
	return s.EditCurrent(func(inv *domain.Invoice) {
		inv.ClientID = client.ID
		inv.Client = client.Party()
	})
}

// GenerateNumber advances the running counter and assigns the formatted
// number to the working invoice. The counter move persists immediately.
func (s *Store) GenerateNumber(prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "", ErrNoCurrentInvoice
	}
	s.ledger.LastInvoiceNumber++
	number := fmt.Sprintf("%s-%d", prefix, s.ledger.LastInvoiceNumber)
	s.current.Number = number
	if err := s.flushWorking(); err != nil {
		return "", err
	}
	if err := s.flush(); err != nil {
		return "", err
	}
	return number, nil
}

// SaveInvoice promotes the working invoice to a saved record. It rejects
// the save before any state mutation when the invoice number is missing.
// Any autosaved draft sharing the id is removed, the matching saved record
// is updated in place (or a new one appended), the client is touched or
// auto-registered, and a history entry is pushed.
func (s *Store) SaveInvoice() (*domain.InvoiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoCurrentInvoice
	}
	if s.current.Number == "" {
		return nil, ErrNumberRequired
	}
	if err := s.current.Validate(); err != nil {
		return nil, fmt.Errorf("invalid invoice: %w", err)
	}

	now := s.now()
	s.current.UpdatedAt = now
	s.current.Recalculate()

	// Bind or register the client before snapshotting so the stored record
	// carries the back-reference.
	if s.current.ClientID != "" {
		if client := s.ledger.FindClient(s.current.ClientID); client != nil {
			client.Touch(now)
		}
	} else if s.current.Client.Name != "" {
		client := domain.NewClient(
			s.current.Client.Name,
			s.current.Client.Email,
			s.current.Client.Phone,
			s.current.Client.Address,
			now,
		)
		s.ledger.Clients = append(s.ledger.Clients, client)
		s.current.ClientID = client.ID
	}

	s.removeDraft(s.current.ID)

	rec := domain.SavedRecord(s.current)
	replaced := false
	for idx, existing := range s.ledger.Invoices {
		if existing.ID == rec.ID {
			s.ledger.Invoices[idx] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		s.ledger.Invoices = append(s.ledger.Invoices, rec)
	}

	s.pushHistory(domain.HistoryEntry{
		InvoiceID: rec.ID,
		Number:    rec.Number,
		Client:    rec.Client.Name,
		Total:     rec.Totals.Total,
		Status:    rec.Status,
		DueDate:   rec.DueDate,
		UpdatedAt: rec.UpdatedAt,
	})

	if err := s.flushWorking(); err != nil {
		return nil, err
	}
	if err := s.flush(); err != nil {
		return nil, err
	}
	s.log.Info().Str("invoice", rec.Number).Msg("invoice saved")
	return rec.Clone(), nil
}

// SaveDraft snapshots the working invoice as an autosaved draft, replacing
// any prior draft with the same id. It reports whether a draft was
// written; it is a no-op when autosave is disabled or nothing is edited.
func (s *Store) SaveDraft() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.Settings.AutoSave || s.current == nil {
		return false, nil
	}

	rec := domain.DraftRecord(s.current, s.now())
	s.removeDraft(rec.ID)
	s.ledger.Invoices = append(s.ledger.Invoices, rec)

	if err := s.flush(); err != nil {
		return false, err
	}
	s.log.Debug().Str("invoice", rec.ID).Msg("draft autosaved")
	return true, nil
}

// removeDraft drops the draft record with the given id, if any. At most
// one draft per working-invoice id ever exists. Caller holds the lock.
func (s *Store) removeDraft(id string) {
	for idx, rec := range s.ledger.Invoices {
		if rec.IsDraft && rec.ID == id {
			s.ledger.Invoices = append(s.ledger.Invoices[:idx], s.ledger.Invoices[idx+1:]...)
			return
		}
	}
}

// pushHistory prepends an entry and truncates the cache to its cap.
// Caller holds the lock.
func (s *Store) pushHistory(entry domain.HistoryEntry) {
	s.ledger.HistoryCache = append([]domain.HistoryEntry{entry}, s.ledger.HistoryCache...)
	if len(s.ledger.HistoryCache) > domain.HistoryLimit {
		s.ledger.HistoryCache = s.ledger.HistoryCache[:domain.HistoryLimit]
	}
}

// Filter narrows ListInvoices results
type Filter struct {
	Status domain.Status // zero value matches all statuses
	Search string        // case-insensitive match on number or client name
}

// ListInvoices returns matching records, statuses resolved against the
// current time, most recently updated first.
func (s *Store) ListInvoices(filter Filter) []*domain.InvoiceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	search := strings.ToLower(filter.Search)
	out := make([]*domain.InvoiceRecord, 0, len(s.ledger.Invoices))
	for _, rec := range s.ledger.Invoices {
		rec.ResolveStatus(now)
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.Number), search) &&
			!strings.Contains(strings.ToLower(rec.Client.Name), search) {
			continue
		}
		out = append(out, rec.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
