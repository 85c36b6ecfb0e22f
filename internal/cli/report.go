package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/andy/ledgercraft/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show revenue rollups",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		records := appInstance.Store.Records()

		stats := report.Summarize(records, now)
		fmt.Printf("Paid %s   Outstanding %s   Overdue %s   Drafts %d\n\n",
			money(stats.Paid), money(stats.Outstanding), money(stats.Overdue), stats.Drafts)

		fmt.Println("Last 6 months (paid / outstanding):")
		for _, bucket := range report.Monthly(records, now) {
			fmt.Printf("  %s %d  %12s / %-12s %s\n",
				bucket.Label(), bucket.Year,
				money(bucket.Paid), money(bucket.Outstanding),
				bar(bucket.Paid+bucket.Outstanding, 30))
		}
		return nil
	},
}

// bar renders a crude magnitude indicator for terminal output
func bar(v float64, max int) string {
	n := int(v / 100)
	if n > max {
		n = max
	}
	return strings.Repeat("#", n)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the recent-save history",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := appInstance.Store.History()
		if len(entries) == 0 {
			fmt.Println("No saves yet")
			return nil
		}

		fmt.Printf("%-12s %-20s %10s %-9s %-12s %-16s\n", "Number", "Client", "Total", "Status", "Due", "Saved")
		for _, e := range entries {
			fmt.Printf("%-12s %-20s %10s %-9s %-12s %-16s\n",
				e.Number,
				truncate(orDash(e.Client), 20),
				money(e.Total),
				e.Status,
				e.DueDate,
				e.UpdatedAt.Format("2006-01-02 15:04"),
			)
		}
		return nil
	},
}
