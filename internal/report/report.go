// Package report provides read-only rollups over the invoice list for
// dashboard display. Consumers read these values and never recompute
// totals or statuses themselves.
package report

import (
	"sort"
	"time"

	"github.com/andy/ledgercraft/internal/domain"
)

// MonthBuckets is the number of trailing calendar months reported
const MonthBuckets = 6

// Bucket is one calendar-month aggregation unit
type Bucket struct {
	Year        int
	Month       time.Month
	Paid        float64
	Outstanding float64
}

// Label returns the short month name for chart axes
func (b Bucket) Label() string {
	return b.Month.String()[:3]
}

// Monthly buckets invoices by issue month over the trailing six calendar
// months including the current one, oldest first. Paid sums status=paid;
// everything else counts as outstanding. Empty months report zero, not
// absence: the result always has exactly six buckets.
func Monthly(records []*domain.InvoiceRecord, now time.Time) []Bucket {
	buckets := make([]Bucket, MonthBuckets)
	for i := 0; i < MonthBuckets; i++ {
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
			AddDate(0, i-MonthBuckets+1, 0)
		buckets[i] = Bucket{Year: anchor.Year(), Month: anchor.Month()}
	}

	for _, rec := range records {
		rec.ResolveStatus(now)
		if rec.IssueDate.IsZero() {
			continue
		}
		for i := range buckets {
			if rec.IssueDate.Year() == buckets[i].Year && rec.IssueDate.Month() == buckets[i].Month {
				if rec.Status == domain.StatusPaid {
					buckets[i].Paid += rec.Totals.Total
				} else {
					buckets[i].Outstanding += rec.Totals.Total
				}
				break
			}
		}
	}
	return buckets
}

// Stats summarizes the whole invoice list for the dashboard header
type Stats struct {
	Paid        float64
	Outstanding float64
	Overdue     float64
	Drafts      int
}

// Summarize totals the invoice list by lifecycle status, resolving each
// status against the current time first.
func Summarize(records []*domain.InvoiceRecord, now time.Time) Stats {
	var stats Stats
	for _, rec := range records {
		switch rec.ResolveStatus(now) {
		case domain.StatusPaid:
			stats.Paid += rec.Totals.Total
		case domain.StatusSent:
			stats.Outstanding += rec.Totals.Total
		case domain.StatusOverdue:
			stats.Overdue += rec.Totals.Total
		case domain.StatusDraft:
			stats.Drafts++
		}
	}
	return stats
}

// Recent returns the n most recently updated records, newest first
func Recent(records []*domain.InvoiceRecord, n int, now time.Time) []*domain.InvoiceRecord {
	out := make([]*domain.InvoiceRecord, len(records))
	copy(out, records)
	for _, rec := range out {
		rec.ResolveStatus(now)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
