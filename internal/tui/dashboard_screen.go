package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/andy/ledgercraft/internal/app"
	"github.com/andy/ledgercraft/internal/domain"
	"github.com/andy/ledgercraft/internal/report"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DashboardModel represents the dashboard home screen
type DashboardModel struct {
	app *app.App

	// Data
	stats   report.Stats
	buckets []report.Bucket
	recent  []*domain.InvoiceRecord
	symbol  string

	loading bool
	err     error
}

type dashboardDataMsg struct {
	stats   report.Stats
	buckets []report.Bucket
	recent  []*domain.InvoiceRecord
	symbol  string
	err     error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	return &DashboardModel{
		app:     a,
		loading: true,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		records := m.app.Store.Records()

		return dashboardDataMsg{
			stats:   report.Summarize(records, now),
			buckets: report.Monthly(records, now),
			recent:  report.Recent(records, 8, now),
			symbol:  m.app.Store.Settings().Currency.Symbol,
		}
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.stats = msg.stats
		m.buckets = msg.buckets
		m.recent = msg.recent
		m.symbol = msg.symbol
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	// Summary row
	s += fmt.Sprintf(
		"  Paid:  %-14s  Outstanding:  %-14s  Overdue:  %-14s  Drafts:  %d\n",
		formatMoney(m.symbol, m.stats.Paid),
		formatMoney(m.symbol, m.stats.Outstanding),
		formatMoney(m.symbol, m.stats.Overdue),
		m.stats.Drafts,
	)

	// Monthly revenue chart
	s += "\n" + m.renderMonthly()

	// Recent invoices
	s += "\n" + m.renderRecent()

	return s
}

func (m *DashboardModel) renderMonthly() string {
	s := "  Revenue (Last 6 Months)\n"

	// Scale bars against the biggest month
	max := 0.0
	for _, b := range m.buckets {
		if v := b.Paid + b.Outstanding; v > max {
			max = v
		}
	}

	for _, b := range m.buckets {
		total := b.Paid + b.Outstanding
		width := 0
		if max > 0 {
			width = int(total / max * 24)
		}
		s += fmt.Sprintf("  %s %d  %-24s %10s paid, %s open\n",
			b.Label(), b.Year,
			barStyle.Render(strings.Repeat("█", width)),
			formatMoney(m.symbol, b.Paid),
			formatMoney(m.symbol, b.Outstanding),
		)
	}
	return s
}

func (m *DashboardModel) renderRecent() string {
	header := "  Recent Invoices\n"
	if len(m.recent) == 0 {
		return header + subtitleStyle.Render("  No invoices yet. Press I to start one.") + "\n"
	}

	s := header
	for _, rec := range m.recent {
		number := rec.Number
		if number == "" {
			number = "(no number)"
		}
		if rec.IsDraft {
			number += " *"
		}
		s += fmt.Sprintf("  %-14s %-20s %10s  %s\n",
			truncateStr(number, 14),
			truncateStr(rec.Client.Name, 20),
			formatMoney(m.symbol, rec.Totals.Total),
			statusBadge(rec.Status),
		)
	}
	return s
}
