package tui

import (
	"errors"
	"fmt"

	"github.com/andy/ledgercraft/internal/app"
	"github.com/andy/ledgercraft/internal/domain"
	"github.com/andy/ledgercraft/internal/ledger"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// invoiceMode represents the current screen mode
type invoiceMode int

const (
	invoiceModeList invoiceMode = iota
	invoiceModeSearch
	invoiceModeDetail
)

// statusCycle is the order the F key walks through status filters
var statusCycle = []domain.Status{"", domain.StatusDraft, domain.StatusSent, domain.StatusOverdue, domain.StatusPaid}

// InvoicesModel displays a filterable list of saved invoices and drafts
type InvoicesModel struct {
	app     *app.App
	records []*domain.InvoiceRecord
	cursor  int
	symbol  string

	mode        invoiceMode
	filterIndex int
	search      textinput.Model
	statusMsg   string
}

type invoicesDataMsg struct {
	records []*domain.InvoiceRecord
	symbol  string
}

// NewInvoicesModel creates a new invoices screen model
func NewInvoicesModel(a *app.App) tea.Model {
	search := textinput.New()
	search.Placeholder = "number or client"
	search.CharLimit = 60
	search.Width = 30
	return &InvoicesModel{app: a, search: search}
}

// IsCapturingInput returns true while the search box is focused
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.mode == invoiceModeSearch
}

func (m *InvoicesModel) Init() tea.Cmd {
	return m.loadRecords()
}

func (m *InvoicesModel) loadRecords() tea.Cmd {
	return func() tea.Msg {
		filter := ledger.Filter{
			Status: statusCycle[m.filterIndex],
			Search: m.search.Value(),
		}
		return invoicesDataMsg{
			records: m.app.Store.ListInvoices(filter),
			symbol:  m.app.Store.Settings().Currency.Symbol,
		}
	}
}

func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoicesDataMsg:
		m.records = msg.records
		m.symbol = msg.symbol
		if m.cursor >= len(m.records) {
			m.cursor = 0
		}
		return m, nil

	case RefreshDataMsg:
		return m, m.loadRecords()

	case tea.KeyMsg:
		if m.mode == invoiceModeSearch {
			switch msg.Type {
			case tea.KeyEnter, tea.KeyEsc:
				m.mode = invoiceModeList
				m.search.Blur()
				return m, m.loadRecords()
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, tea.Batch(cmd, m.loadRecords())
		}

		if m.mode == invoiceModeDetail {
			if key.Matches(msg, DefaultKeyMap.Back) {
				m.mode = invoiceModeList
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Filter):
			m.filterIndex = (m.filterIndex + 1) % len(statusCycle)
			m.cursor = 0
			return m, m.loadRecords()
		case key.Matches(msg, DefaultKeyMap.Search):
			m.mode = invoiceModeSearch
			m.search.Focus()
			return m, textinput.Blink
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.records) > 0 {
				m.mode = invoiceModeDetail
			}
		case key.Matches(msg, DefaultKeyMap.Edit):
			if len(m.records) > 0 {
				rec := m.records[m.cursor]
				if _, err := m.app.Store.LoadInvoice(rec.ID); err != nil {
					return m, func() tea.Msg { return ErrorMsg{Err: err} }
				}
				m.statusMsg = fmt.Sprintf("Loaded %s for editing", orNoNumber(rec.Number))
			}
		case key.Matches(msg, DefaultKeyMap.New):
			inv := m.app.Store.NewInvoice(m.app.Config.Invoice.DefaultDueDays)
			m.statusMsg = fmt.Sprintf("Started a new invoice (due %s)", inv.DueDate)
			return m, m.loadRecords()
		case key.Matches(msg, DefaultKeyMap.Number):
			number, err := m.app.Store.GenerateNumber(m.app.Config.Invoice.NumberPrefix)
			if err != nil {
				return m, func() tea.Msg { return ErrorMsg{Err: err} }
			}
			m.statusMsg = fmt.Sprintf("Assigned number %s", number)
		case key.Matches(msg, DefaultKeyMap.Save):
			rec, err := m.app.Store.SaveInvoice()
			if err != nil {
				if errors.Is(err, ledger.ErrNumberRequired) {
					m.statusMsg = "The invoice needs a number before saving (press g to generate one)"
					return m, nil
				}
				return m, func() tea.Msg { return ErrorMsg{Err: err} }
			}
			m.statusMsg = fmt.Sprintf("Saved invoice %s", rec.Number)
			return m, m.loadRecords()
		}
	}

	return m, nil
}

func (m *InvoicesModel) View() string {
	if m.mode == invoiceModeDetail && m.cursor < len(m.records) {
		return m.renderDetail(m.records[m.cursor])
	}

	filterLabel := "all"
	if s := statusCycle[m.filterIndex]; s != "" {
		filterLabel = string(s)
	}

	s := ""
	if current := m.app.Store.Current(); current != nil {
		working := fmt.Sprintf("  Editing: %s  %s  %d item(s)",
			orNoNumber(current.Number),
			formatMoney(m.symbol, current.Totals.Total),
			len(current.LineItems))
		s += selectedStyle.Render(working) + "\n"
	}

	s += fmt.Sprintf("  Filter: %s", filterLabel)
	if m.mode == invoiceModeSearch {
		s += "   Search: " + m.search.View()
	} else if m.search.Value() != "" {
		s += fmt.Sprintf("   Search: %q", m.search.Value())
	}
	s += "\n\n"

	if len(m.records) == 0 {
		s += subtitleStyle.Render("  No invoices match") + "\n"
	} else {
		s += fmt.Sprintf("  %-14s %-20s %10s  %-9s %-12s\n", "Number", "Client", "Total", "Status", "Due")
		for i, rec := range m.records {
			number := orNoNumber(rec.Number)
			if rec.IsDraft {
				number += " *"
			}
			line := fmt.Sprintf("%-14s %-20s %10s  %-9s %-12s",
				truncateStr(number, 14),
				truncateStr(rec.Client.Name, 20),
				formatMoney(m.symbol, rec.Totals.Total),
				rec.Status,
				rec.DueDate,
			)
			if i == m.cursor {
				s += "  " + selectedStyle.Render(line) + "\n"
			} else {
				s += "  " + line + "\n"
			}
		}
	}

	if m.statusMsg != "" {
		s += "\n  " + subtitleStyle.Render(m.statusMsg) + "\n"
	}

	s += "\n  " + subtitleStyle.Render("enter details  n new  e edit  g number  s save  f cycle filter  / search")
	return s
}

func (m *InvoicesModel) renderDetail(rec *domain.InvoiceRecord) string {
	s := fmt.Sprintf("  Invoice %s  %s\n", rec.Number, statusBadge(rec.Status))
	if rec.IsDraft {
		s += subtitleStyle.Render("  Draft (not yet saved)") + "\n"
	}
	s += fmt.Sprintf("  Issued %s, due %s\n", rec.IssueDate, rec.DueDate)
	s += fmt.Sprintf("  Bill to: %s\n\n", rec.Client.Name)

	for _, item := range rec.LineItems {
		s += fmt.Sprintf("  %-26s %8.2f x %10s = %10s\n",
			truncateStr(item.Name, 26), item.Quantity,
			formatMoney(m.symbol, item.Rate), formatMoney(m.symbol, item.Total))
	}

	s += fmt.Sprintf("\n  %14s %s\n", "Subtotal", formatMoney(m.symbol, rec.Totals.Subtotal))
	s += fmt.Sprintf("  %14s -%s\n", "Discount", formatMoney(m.symbol, rec.Totals.Discount))
	s += fmt.Sprintf("  %14s %s\n", "Tax", formatMoney(m.symbol, rec.Totals.Tax))
	s += fmt.Sprintf("  %14s %s\n", "Total Due", formatMoney(m.symbol, rec.Totals.Total))

	if rec.Notes != "" {
		s += "\n  " + subtitleStyle.Render(truncateStr(rec.Notes, 70)) + "\n"
	}

	s += "\n  " + subtitleStyle.Render("esc back")
	return s
}
