package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/andy/ledgercraft/internal/domain"
	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(domain.NewLedger(), nil, nil, zerolog.Nop())
}

func fixedTime(day int) time.Time {
	return time.Date(2026, time.June, day, 12, 0, 0, 0, time.Local)
}

func TestSaveInvoice_RequiresNumberBeforeMutation(t *testing.T) {
	s := newTestStore(t)
	s.NewInvoice(14)
	if _, err := s.AddLineItem("Work", "", 2, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := s.SaveInvoice()
	if !errors.Is(err, ErrNumberRequired) {
		t.Fatalf("expected ErrNumberRequired, got %v", err)
	}

	// The rejected save must not have produced a record or history entry
	if got := len(s.Records()); got != 0 {
		t.Fatalf("expected no records after rejected save, got %d", got)
	}
	if got := len(s.History()); got != 0 {
		t.Fatalf("expected no history after rejected save, got %d", got)
	}
}

func TestSaveInvoice_NoCurrent(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SaveInvoice(); !errors.Is(err, ErrNoCurrentInvoice) {
		t.Fatalf("expected ErrNoCurrentInvoice, got %v", err)
	}
}

func TestSaveInvoice_UpsertsById(t *testing.T) {
	s := newTestStore(t)
	inv := s.NewInvoice(14)
	s.AddLineItem("Work", "", 1, 100)
	s.EditCurrent(func(i *domain.Invoice) { i.Number = "INV-1001" })

	first, err := s.SaveInvoice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != inv.ID {
		t.Fatalf("expected record to keep the working invoice id")
	}

	// Saving again updates the same record instead of appending
	s.EditCurrent(func(i *domain.Invoice) { i.Notes = "updated" })
	if _, err := s.SaveInvoice(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := s.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record after re-save, got %d", len(records))
	}
	if records[0].Notes != "updated" {
		t.Fatalf("expected record updated in place")
	}
}

func TestSaveInvoice_AutoRegistersClient(t *testing.T) {
	s := newTestStore(t)
	s.NewInvoice(14)
	s.EditCurrent(func(i *domain.Invoice) {
		i.Number = "INV-1001"
		i.Client = domain.Party{Name: "New Co", Email: "new@co.test"}
	})

	rec, err := s.SaveInvoice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clients := s.ListClients()
	if len(clients) != 1 {
		t.Fatalf("expected 1 auto-registered client, got %d", len(clients))
	}
	if clients[0].Name != "New Co" || clients[0].Email != "new@co.test" {
		t.Fatalf("unexpected client: %+v", clients[0])
	}
	if rec.ClientID != clients[0].ID {
		t.Fatalf("expected record back-filled with client id")
	}
}

func TestSaveInvoice_TouchesExistingClient(t *testing.T) {
	s := newTestStore(t)
	s.now = func() time.Time { return fixedTime(1) }
	client, err := s.AddClient("Acme", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.NewInvoice(14)
	if err := s.UseClient(client.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.EditCurrent(func(i *domain.Invoice) { i.Number = "INV-1001" })

	s.now = func() time.Time { return fixedTime(5) }
	if _, err := s.SaveInvoice(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := s.GetClient(client.ID)
	if !got.LastUsed.Equal(fixedTime(5)) {
		t.Fatalf("expected lastUsed bumped to save time, got %v", got.LastUsed)
	}
	if len(s.ListClients()) != 1 {
		t.Fatalf("expected no duplicate client registration")
	}
}

func TestSaveInvoice_RemovesDraftOnPromotion(t *testing.T) {
	s := newTestStore(t)
	s.NewInvoice(14)
	s.EditCurrent(func(i *domain.Invoice) { i.Number = "INV-1001" })

	saved, err := s.SaveDraft()
	if err != nil || !saved {
		t.Fatalf("expected draft save, got saved=%v err=%v", saved, err)
	}
	if got := len(s.Records()); got != 1 {
		t.Fatalf("expected 1 draft record, got %d", got)
	}

	if _, err := s.SaveInvoice(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := s.Records()
	if len(records) != 1 {
		t.Fatalf("expected draft replaced by saved record, got %d records", len(records))
	}
	if records[0].IsDraft {
		t.Fatalf("expected the surviving record to be the saved one")
	}
}

func TestSaveDraft_ReplacesPriorDraft(t *testing.T) {
	s := newTestStore(t)
	s.NewInvoice(14)

	// Many ticks between manual saves still leave exactly one draft
	for i := 0; i < 5; i++ {
		if _, err := s.SaveDraft(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	records := s.Records()
	if len(records) != 1 {
		t.Fatalf("expected a single draft after repeated autosaves, got %d", len(records))
	}
	if !records[0].IsDraft {
		t.Fatalf("expected a draft record")
	}
}

func TestSaveDraft_NoOpWhenDisabledOrIdle(t *testing.T) {
	s := newTestStore(t)

	// No working invoice
	if saved, err := s.SaveDraft(); err != nil || saved {
		t.Fatalf("expected no-op with no invoice, got saved=%v err=%v", saved, err)
	}

	// Autosave disabled
	s.NewInvoice(14)
	s.SetAutoSave(false)
	if saved, err := s.SaveDraft(); err != nil || saved {
		t.Fatalf("expected no-op with autosave off, got saved=%v err=%v", saved, err)
	}
	if got := len(s.Records()); got != 0 {
		t.Fatalf("expected no records, got %d", got)
	}
}

func TestHistory_CapAndOrder(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < domain.HistoryLimit+3; i++ {
		s.NewInvoice(14)
		s.EditCurrent(func(inv *domain.Invoice) {
			inv.Number = fmt.Sprintf("INV-%d", 2000+i)
		})
		if _, err := s.SaveInvoice(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	history := s.History()
	if len(history) != domain.HistoryLimit {
		t.Fatalf("expected history capped at %d, got %d", domain.HistoryLimit, len(history))
	}
	if history[0].Number != fmt.Sprintf("INV-%d", 2000+domain.HistoryLimit+2) {
		t.Fatalf("expected newest entry first, got %s", history[0].Number)
	}
}

func TestGenerateNumber(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GenerateNumber("INV"); !errors.Is(err, ErrNoCurrentInvoice) {
		t.Fatalf("expected ErrNoCurrentInvoice, got %v", err)
	}

	s.NewInvoice(14)
	number, err := s.GenerateNumber("INV")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != "INV-1001" {
		t.Fatalf("expected INV-1001 from a fresh ledger, got %s", number)
	}

	number, _ = s.GenerateNumber("INV")
	if number != "INV-1002" {
		t.Fatalf("expected INV-1002, got %s", number)
	}
}

func TestGenerateNumber_ConfiguredPrefix(t *testing.T) {
	s := newTestStore(t)
	s.NewInvoice(14)

	number, err := s.GenerateNumber("ACME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != "ACME-1001" {
		t.Fatalf("expected ACME-1001, got %s", number)
	}
	if s.Current().Number != "ACME-1001" {
		t.Fatalf("expected number assigned to the working invoice")
	}
}

func TestAddProductItem_SnapshotSemantics(t *testing.T) {
	s := newTestStore(t)
	product, err := s.AddProduct("Hosting", "Monthly", 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.NewInvoice(14)
	item, err := s.AddProductItem(product.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Rate != 25 || item.Quantity != 1 {
		t.Fatalf("unexpected item: %+v", item)
	}

	// Later product edits leave the line item alone
	if err := s.UpdateProduct(product.ID, "Hosting", "Monthly", 99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	current := s.Current()
	if current.LineItems[0].Rate != 25 {
		t.Fatalf("expected line item to keep its snapshot rate, got %v", current.LineItems[0].Rate)
	}
}

func TestEditCurrent_RecalculatesTotals(t *testing.T) {
	s := newTestStore(t)
	s.NewInvoice(14)
	s.AddLineItem("Work", "", 2, 50)

	err := s.EditCurrent(func(inv *domain.Invoice) {
		inv.Discount = domain.Discount{Type: domain.DiscountPercent, Value: 10}
		inv.TaxRate = 8
		// Attempted direct total override is discarded by recalculation
		inv.LineItems[0].Total = 12345
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current := s.Current()
	if current.LineItems[0].Total != 100 {
		t.Fatalf("expected item total restored to 100, got %v", current.LineItems[0].Total)
	}
	if current.Totals.Total != 97.2 {
		t.Fatalf("expected total 97.2, got %v", current.Totals.Total)
	}
}

func TestRemoveLineItem(t *testing.T) {
	s := newTestStore(t)
	s.NewInvoice(14)
	item, _ := s.AddLineItem("Work", "", 1, 100)

	if err := s.RemoveLineItem("missing"); !errors.Is(err, ErrLineItemNotFound) {
		t.Fatalf("expected ErrLineItemNotFound, got %v", err)
	}

	if err := s.RemoveLineItem(item.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(s.Current().LineItems); got != 0 {
		t.Fatalf("expected no items left, got %d", got)
	}
}

func TestListInvoices_FilterAndSort(t *testing.T) {
	s := newTestStore(t)

	save := func(number, clientName string, status domain.Status, at time.Time) {
		s.now = func() time.Time { return at }
		s.NewInvoice(14)
		s.EditCurrent(func(inv *domain.Invoice) {
			inv.Number = number
			inv.Client.Name = clientName
			inv.Status = status
		})
		if _, err := s.SaveInvoice(); err != nil {
			t.Fatalf("save %s: %v", number, err)
		}
	}

	save("INV-1001", "Acme", domain.StatusPaid, fixedTime(1))
	save("INV-1002", "Globex", domain.StatusSent, fixedTime(2))
	save("INV-1003", "Acme", domain.StatusPaid, fixedTime(3))

	all := s.ListInvoices(Filter{})
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[0].Number != "INV-1003" {
		t.Fatalf("expected most recently updated first, got %s", all[0].Number)
	}

	paid := s.ListInvoices(Filter{Status: domain.StatusPaid})
	if len(paid) != 2 {
		t.Fatalf("expected 2 paid records, got %d", len(paid))
	}

	acme := s.ListInvoices(Filter{Search: "acme"})
	if len(acme) != 2 {
		t.Fatalf("expected case-insensitive client search to match 2, got %d", len(acme))
	}

	byNumber := s.ListInvoices(Filter{Search: "1002"})
	if len(byNumber) != 1 || byNumber[0].Number != "INV-1002" {
		t.Fatalf("expected number search to match INV-1002")
	}
}

func TestLoadInvoice(t *testing.T) {
	s := newTestStore(t)
	s.NewInvoice(14)
	s.EditCurrent(func(inv *domain.Invoice) { inv.Number = "INV-1001" })
	rec, _ := s.SaveInvoice()

	if _, err := s.LoadInvoice("missing"); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}

	loaded, err := s.LoadInvoice(rec.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.ID != rec.ID || loaded.Number != "INV-1001" {
		t.Fatalf("unexpected loaded invoice: %+v", loaded)
	}

	// A later save updates the loaded record in place
	s.EditCurrent(func(inv *domain.Invoice) { inv.Notes = "edited" })
	if _, err := s.SaveInvoice(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(s.Records()); got != 1 {
		t.Fatalf("expected in-place update, got %d records", got)
	}
}

func TestUseClient_DanglingIdTolerated(t *testing.T) {
	s := newTestStore(t)
	s.NewInvoice(14)
	if err := s.UseClient("missing"); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	// A record with a dangling clientId still lists and saves fine
	s.EditCurrent(func(inv *domain.Invoice) {
		inv.Number = "INV-1001"
		inv.ClientID = "gone"
		inv.Client.Name = "Orphaned"
	})
	if _, err := s.SaveInvoice(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(s.ListInvoices(Filter{})); got != 1 {
		t.Fatalf("expected record listed despite dangling clientId, got %d", got)
	}
}

func TestImport_ReplacesAtomically(t *testing.T) {
	var persisted *domain.Ledger
	s := NewStore(domain.NewLedger(), func(l *domain.Ledger) error {
		persisted = l
		return nil
	}, nil, zerolog.Nop())

	s.NewInvoice(14)
	incoming := domain.NewLedger()
	incoming.LastInvoiceNumber = 5000
	incoming.Clients = append(incoming.Clients, domain.NewClient("Imported", "", "", "", time.Now()))

	if err := s.Import(incoming); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Current() != nil {
		t.Fatalf("expected working invoice reset on import")
	}
	if len(s.ListClients()) != 1 {
		t.Fatalf("expected imported client visible")
	}
	if persisted == nil || persisted.LastInvoiceNumber != 5000 {
		t.Fatalf("expected imported ledger persisted")
	}
}

func TestPersistFailureSurfaces(t *testing.T) {
	boom := errors.New("disk full")
	s := NewStore(domain.NewLedger(), func(*domain.Ledger) error { return boom }, nil, zerolog.Nop())

	s.NewInvoice(14)
	s.EditCurrent(func(inv *domain.Invoice) { inv.Number = "INV-1001" })
	if _, err := s.SaveInvoice(); !errors.Is(err, boom) {
		t.Fatalf("expected persist error surfaced, got %v", err)
	}
}

func TestWorkingInvoice_WrittenThroughOnMutation(t *testing.T) {
	var slot *domain.Invoice
	s := NewStore(domain.NewLedger(), nil, func(inv *domain.Invoice) error {
		slot = inv
		return nil
	}, zerolog.Nop())

	started := s.NewInvoice(14)
	if slot == nil || slot.ID != started.ID {
		t.Fatalf("expected new invoice written to the session slot")
	}

	s.AddLineItem("Work", "", 2, 50)
	if len(slot.LineItems) != 1 || slot.Totals.Total != 100 {
		t.Fatalf("expected edited invoice written through, got %+v", slot)
	}

	// Import clears the slot along with the working invoice
	if err := s.Import(domain.NewLedger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot != nil {
		t.Fatalf("expected session slot cleared on import")
	}
}

func TestRestoreCurrent_ResumesAcrossSessions(t *testing.T) {
	var slot *domain.Invoice
	keep := func(inv *domain.Invoice) error {
		slot = inv
		return nil
	}

	first := NewStore(domain.NewLedger(), nil, keep, zerolog.Nop())
	started := first.NewInvoice(14)
	first.AddLineItem("Work", "", 2, 50)

	// A second store seeded from the slot picks up where the first left off
	second := NewStore(domain.NewLedger(), nil, keep, zerolog.Nop())
	if second.Current() != nil {
		t.Fatalf("expected no working invoice before restore")
	}
	second.RestoreCurrent(slot)

	resumed := second.Current()
	if resumed == nil || resumed.ID != started.ID {
		t.Fatalf("expected restored working invoice to keep its id")
	}
	if len(resumed.LineItems) != 1 {
		t.Fatalf("expected restored invoice to keep its items")
	}

	number, err := second.GenerateNumber("INV")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != "INV-1001" {
		t.Fatalf("unexpected number: %s", number)
	}
	if _, err := second.SaveInvoice(); err != nil {
		t.Fatalf("expected restored invoice to save, got %v", err)
	}
}

func TestSetCompany_UpdatesWorkingInvoiceSender(t *testing.T) {
	s := newTestStore(t)
	s.NewInvoice(14)
	s.EditCurrent(func(inv *domain.Invoice) { inv.Number = "INV-1001" })
	rec, _ := s.SaveInvoice()

	if err := s.SetCompany(domain.Party{Name: "Rebranded"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Current().Sender.Name != "Rebranded" {
		t.Fatalf("expected working invoice sender updated")
	}
	// Already-saved records keep the sender they were created with
	saved := s.Records()
	if saved[0].Sender.Name != rec.Sender.Name {
		t.Fatalf("expected saved record sender unchanged, got %q", saved[0].Sender.Name)
	}
}

func TestUpdateClient_RejectedEditLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t)
	client, _ := s.AddClient("Acme", "a@acme.test", "", "")

	err := s.UpdateClient(client.ID, "", "b@acme.test", "", "")
	if err == nil {
		t.Fatalf("expected error for empty name")
	}

	got, _ := s.GetClient(client.ID)
	if got.Name != "Acme" || got.Email != "a@acme.test" {
		t.Fatalf("expected client unchanged after rejected edit, got %+v", got)
	}
}

func TestListClients_RecencyOrder(t *testing.T) {
	s := newTestStore(t)
	s.now = func() time.Time { return fixedTime(1) }
	a, _ := s.AddClient("Alpha", "", "", "")
	s.now = func() time.Time { return fixedTime(2) }
	_, _ = s.AddClient("Beta", "", "", "")

	clients := s.ListClients()
	if clients[0].Name != "Beta" {
		t.Fatalf("expected most recently used first, got %s", clients[0].Name)
	}

	// Using Alpha on a save bumps it to the front
	s.now = func() time.Time { return fixedTime(3) }
	s.NewInvoice(14)
	s.UseClient(a.ID)
	s.EditCurrent(func(inv *domain.Invoice) { inv.Number = "INV-1001" })
	if _, err := s.SaveInvoice(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clients = s.ListClients()
	if clients[0].Name != "Alpha" {
		t.Fatalf("expected Alpha bumped to front, got %s", clients[0].Name)
	}
}
