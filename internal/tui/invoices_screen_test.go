package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/andy/ledgercraft/internal/app"
	"github.com/andy/ledgercraft/internal/config"
	"github.com/andy/ledgercraft/internal/ledger"
)

func newTestInvoicesModel(t *testing.T) (*InvoicesModel, *app.App) {
	t.Helper()
	a := &app.App{
		Config: config.DefaultConfig(),
		Store:  ledger.NewStore(nil, nil, nil, zerolog.Nop()),
	}
	return NewInvoicesModel(a).(*InvoicesModel), a
}

func pressKey(t *testing.T, m tea.Model, r rune) tea.Model {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	// Resolve any follow-up command so list data stays current
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		if _, ok := msg.(ErrorMsg); ok {
			t.Fatalf("unexpected error from key %q: %v", r, msg.(ErrorMsg).Err)
		}
		updated, cmd = updated.Update(msg)
	}
	return updated
}

func TestInvoicesScreen_NewNumberSaveFlow(t *testing.T) {
	m, a := newTestInvoicesModel(t)
	var model tea.Model = m

	model = pressKey(t, model, 'n')
	if a.Store.Current() == nil {
		t.Fatalf("expected a working invoice after pressing n")
	}

	model = pressKey(t, model, 'g')
	if got := a.Store.Current().Number; got != "INV-1001" {
		t.Fatalf("expected generated number INV-1001, got %q", got)
	}

	model = pressKey(t, model, 's')
	records := a.Store.ListInvoices(ledger.Filter{})
	if len(records) != 1 {
		t.Fatalf("expected 1 saved record, got %d", len(records))
	}
	if records[0].IsDraft || records[0].Number != "INV-1001" {
		t.Fatalf("unexpected record: %+v", records[0])
	}

	inv := model.(*InvoicesModel)
	if !strings.Contains(inv.statusMsg, "Saved invoice INV-1001") {
		t.Fatalf("unexpected status message: %q", inv.statusMsg)
	}
	if len(inv.records) != 1 {
		t.Fatalf("expected the list refreshed after save, got %d rows", len(inv.records))
	}
}

func TestInvoicesScreen_SaveWithoutNumberHints(t *testing.T) {
	m, a := newTestInvoicesModel(t)
	var model tea.Model = m

	model = pressKey(t, model, 'n')
	model = pressKey(t, model, 's')

	if got := len(a.Store.ListInvoices(ledger.Filter{})); got != 0 {
		t.Fatalf("expected no record from a rejected save, got %d", got)
	}
	inv := model.(*InvoicesModel)
	if !strings.Contains(inv.statusMsg, "needs a number") {
		t.Fatalf("expected a number hint, got %q", inv.statusMsg)
	}
}

func TestInvoicesScreen_ViewShowsWorkingInvoice(t *testing.T) {
	m, a := newTestInvoicesModel(t)
	var model tea.Model = m

	if strings.Contains(model.View(), "Editing:") {
		t.Fatalf("expected no working-invoice banner before starting one")
	}

	model = pressKey(t, model, 'n')
	a.Store.AddLineItem("Consulting", "", 2, 75)

	view := model.View()
	if !strings.Contains(view, "Editing:") || !strings.Contains(view, "1 item(s)") {
		t.Fatalf("expected the working invoice summarized in the view:\n%s", view)
	}
}
