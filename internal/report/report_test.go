package report

import (
	"testing"
	"time"

	"github.com/andy/ledgercraft/internal/domain"
)

func record(issue string, status domain.Status, total float64, updatedAt time.Time) *domain.InvoiceRecord {
	date, _ := domain.ParseDate(issue)
	return &domain.InvoiceRecord{Invoice: domain.Invoice{
		IssueDate: date,
		Status:    status,
		Totals:    domain.Totals{Total: total},
		UpdatedAt: updatedAt,
	}}
}

func TestMonthly_AlwaysSixBuckets(t *testing.T) {
	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.Local)

	buckets := Monthly(nil, now)
	if len(buckets) != MonthBuckets {
		t.Fatalf("expected %d buckets, got %d", MonthBuckets, len(buckets))
	}

	// Oldest first: Mar..Aug 2026
	if buckets[0].Month != time.March || buckets[0].Year != 2026 {
		t.Fatalf("expected first bucket Mar 2026, got %s %d", buckets[0].Month, buckets[0].Year)
	}
	if buckets[5].Month != time.August {
		t.Fatalf("expected last bucket Aug, got %s", buckets[5].Month)
	}

	// Empty months report zero, not absence
	for i, b := range buckets {
		if b.Paid != 0 || b.Outstanding != 0 {
			t.Fatalf("expected zero-filled bucket %d, got %+v", i, b)
		}
	}
}

func TestMonthly_YearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local)
	buckets := Monthly(nil, now)

	if buckets[0].Month != time.September || buckets[0].Year != 2025 {
		t.Fatalf("expected first bucket Sep 2025, got %s %d", buckets[0].Month, buckets[0].Year)
	}
	if buckets[5].Month != time.February || buckets[5].Year != 2026 {
		t.Fatalf("expected last bucket Feb 2026, got %s %d", buckets[5].Month, buckets[5].Year)
	}
}

func TestMonthly_PaidVsOutstanding(t *testing.T) {
	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.Local)
	records := []*domain.InvoiceRecord{
		record("2026-08-01", domain.StatusPaid, 100, now),
		record("2026-08-05", domain.StatusSent, 40, now),
		record("2026-07-10", domain.StatusDraft, 25, now),
		record("2026-01-01", domain.StatusPaid, 999, now), // outside the window
	}

	buckets := Monthly(records, now)

	aug := buckets[5]
	if aug.Paid != 100 || aug.Outstanding != 40 {
		t.Fatalf("expected Aug paid=100 outstanding=40, got %+v", aug)
	}

	jul := buckets[4]
	if jul.Outstanding != 25 {
		t.Fatalf("expected draft counted as outstanding, got %+v", jul)
	}

	var sum float64
	for _, b := range buckets {
		sum += b.Paid + b.Outstanding
	}
	if sum != 165 {
		t.Fatalf("expected out-of-window invoice excluded, sum %v", sum)
	}
}

func TestMonthly_ResolvesStatusFirst(t *testing.T) {
	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.Local)

	// Sent but past due: must bucket as outstanding with status overdue
	rec := record("2026-08-01", domain.StatusSent, 75, now)
	due, _ := domain.ParseDate("2026-08-05")
	rec.DueDate = due

	buckets := Monthly([]*domain.InvoiceRecord{rec}, now)
	if buckets[5].Outstanding != 75 {
		t.Fatalf("expected overdue total outstanding, got %+v", buckets[5])
	}
	if rec.Status != domain.StatusOverdue {
		t.Fatalf("expected status resolved to overdue, got %s", rec.Status)
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.Local)
	due, _ := domain.ParseDate("2026-08-01")

	overdue := record("2026-07-01", domain.StatusSent, 50, now)
	overdue.DueDate = due

	records := []*domain.InvoiceRecord{
		record("2026-08-01", domain.StatusPaid, 100, now),
		record("2026-08-02", domain.StatusSent, 30, now),
		overdue,
		record("2026-08-03", domain.StatusDraft, 10, now),
		record("2026-08-04", domain.StatusDraft, 20, now),
	}

	stats := Summarize(records, now)
	if stats.Paid != 100 {
		t.Fatalf("expected paid 100, got %v", stats.Paid)
	}
	if stats.Outstanding != 30 {
		t.Fatalf("expected outstanding 30, got %v", stats.Outstanding)
	}
	if stats.Overdue != 50 {
		t.Fatalf("expected overdue 50, got %v", stats.Overdue)
	}
	if stats.Drafts != 2 {
		t.Fatalf("expected 2 drafts, got %d", stats.Drafts)
	}
}

func TestRecent(t *testing.T) {
	now := time.Now()
	records := []*domain.InvoiceRecord{
		record("2026-08-01", domain.StatusPaid, 1, now.Add(-3*time.Hour)),
		record("2026-08-02", domain.StatusPaid, 2, now.Add(-1*time.Hour)),
		record("2026-08-03", domain.StatusPaid, 3, now.Add(-2*time.Hour)),
	}

	recent := Recent(records, 2, now)
	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}
	if recent[0].Totals.Total != 2 || recent[1].Totals.Total != 3 {
		t.Fatalf("expected newest first, got %v then %v", recent[0].Totals.Total, recent[1].Totals.Total)
	}
}

func TestBucketLabel(t *testing.T) {
	b := Bucket{Month: time.September}
	if b.Label() != "Sep" {
		t.Fatalf("expected Sep, got %s", b.Label())
	}
}
