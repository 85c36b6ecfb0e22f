package cli

import (
	"fmt"

	"github.com/andy/ledgercraft/internal/domain"
	"github.com/andy/ledgercraft/internal/ledger"
	"github.com/spf13/cobra"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Edit and save invoices",
	Long: `Work on the current invoice. Start one with "invoice new", edit it with
the item/set subcommands, then make it permanent with "invoice save".
The current invoice is kept between commands until it is saved or
replaced, so the workflow can span as many invocations as needed.`,
}

var invoiceNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a fresh invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv := appInstance.Store.NewInvoice(appInstance.Config.Invoice.DefaultDueDays)
		fmt.Printf("Started invoice %s (due %s)\n", inv.ID, inv.DueDate)
		return nil
	},
}

var invoiceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv := appInstance.Store.Current()
		if inv == nil {
			return ledger.ErrNoCurrentInvoice
		}

		fmt.Printf("Invoice %s  [%s]\n", orDash(inv.Number), inv.Status)
		fmt.Printf("Issued %s, due %s\n", inv.IssueDate, inv.DueDate)
		fmt.Printf("Bill to: %s\n\n", orDash(inv.Client.Name))

		if len(inv.LineItems) == 0 {
			fmt.Println("No items yet. Add line items.")
		} else {
			fmt.Printf("%-36s %-20s %8s %10s %10s\n", "ID", "Item", "Qty", "Rate", "Total")
			for _, item := range inv.LineItems {
				fmt.Printf("%-36s %-20s %8.2f %10s %10s\n",
					item.ID, truncate(item.Name, 20), item.Quantity, money(item.Rate), money(item.Total))
			}
		}

		fmt.Printf("\n%18s %s\n", "Subtotal", money(inv.Totals.Subtotal))
		fmt.Printf("%18s -%s\n", "Discount", money(inv.Totals.Discount))
		fmt.Printf("%18s %s\n", "Tax", money(inv.Totals.Tax))
		fmt.Printf("%18s %s\n", "Total Due", money(inv.Totals.Total))
		return nil
	},
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved invoices and drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter ledger.Filter
		if cmd.Flags().Changed("status") {
			statusStr, _ := cmd.Flags().GetString("status")
			status, err := parseStatus(statusStr)
			if err != nil {
				return err
			}
			filter.Status = status
		}
		filter.Search, _ = cmd.Flags().GetString("search")

		records := appInstance.Store.ListInvoices(filter)
		if len(records) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		fmt.Printf("%-36s %-12s %-20s %10s %-9s %-12s\n", "ID", "Number", "Client", "Total", "Status", "Due")
		for _, rec := range records {
			number := rec.Number
			if rec.IsDraft {
				number += " (draft)"
			}
			fmt.Printf("%-36s %-12s %-20s %10s %-9s %-12s\n",
				rec.ID,
				truncate(orDash(number), 12),
				truncate(orDash(rec.Client.Name), 20),
				money(rec.Totals.Total),
				rec.Status,
				rec.DueDate,
			)
		}
		fmt.Printf("\nTotal: %d invoice(s)\n", len(records))
		return nil
	},
}

var invoiceLoadCmd = &cobra.Command{
	Use:   "load [id]",
	Short: "Load a saved invoice for editing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := appInstance.Store.LoadInvoice(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %s for editing\n", orDash(inv.Number))
		return nil
	},
}

var invoiceSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current invoice to the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := appInstance.Store.SaveInvoice()
		if err != nil {
			return err
		}
		fmt.Printf("Saved invoice %s (%s)\n", rec.Number, money(rec.Totals.Total))
		return nil
	},
}

var invoiceNumberCmd = &cobra.Command{
	Use:   "number [value]",
	Short: "Set or generate the invoice number",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			err := appInstance.Store.EditCurrent(func(inv *domain.Invoice) {
				inv.Number = args[0]
			})
			if err != nil {
				return err
			}
			fmt.Printf("Invoice number set to %s\n", args[0])
			return nil
		}

		number, err := appInstance.Store.GenerateNumber(appInstance.Config.Invoice.NumberPrefix)
		if err != nil {
			return err
		}
		fmt.Printf("Generated invoice number %s\n", number)
		return nil
	},
}

var invoiceSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set fields on the current invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("client") {
			id, _ := cmd.Flags().GetString("client")
			if err := appInstance.Store.UseClient(id); err != nil {
				return err
			}
		}

		var issue, due domain.Date
		var parseErr error
		if cmd.Flags().Changed("issue") {
			s, _ := cmd.Flags().GetString("issue")
			if issue, parseErr = domain.ParseDate(s); parseErr != nil {
				return parseErr
			}
		}
		if cmd.Flags().Changed("due") {
			s, _ := cmd.Flags().GetString("due")
			if due, parseErr = domain.ParseDate(s); parseErr != nil {
				return parseErr
			}
		}

		var status domain.Status
		if cmd.Flags().Changed("status") {
			s, _ := cmd.Flags().GetString("status")
			var err error
			if status, err = parseStatus(s); err != nil {
				return err
			}
		}

		if cmd.Flags().Changed("discount-type") {
			t, _ := cmd.Flags().GetString("discount-type")
			if t != string(domain.DiscountFlat) && t != string(domain.DiscountPercent) {
				return fmt.Errorf("unknown discount type %q (flat or percent)", t)
			}
		}

		return appInstance.Store.EditCurrent(func(inv *domain.Invoice) {
			if !issue.IsZero() {
				inv.IssueDate = issue
			}
			if !due.IsZero() {
				inv.DueDate = due
			}
			if status != "" {
				inv.Status = status
			}
			if cmd.Flags().Changed("tax") {
				inv.TaxRate, _ = cmd.Flags().GetFloat64("tax")
			}
			if cmd.Flags().Changed("discount") {
				inv.Discount.Value, _ = cmd.Flags().GetFloat64("discount")
			}
			if cmd.Flags().Changed("discount-type") {
				t, _ := cmd.Flags().GetString("discount-type")
				inv.Discount.Type = domain.DiscountType(t)
			}
			if cmd.Flags().Changed("notes") {
				inv.Notes, _ = cmd.Flags().GetString("notes")
			}
			if cmd.Flags().Changed("bill-to") {
				inv.Client.Name, _ = cmd.Flags().GetString("bill-to")
			}
		})
	},
}

var invoiceItemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage line items on the current invoice",
}

var invoiceItemAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a line item, or copy one from a product",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("product") {
			productID, _ := cmd.Flags().GetString("product")
			item, err := appInstance.Store.AddProductItem(productID)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", item.Name, money(item.Total))
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("item name required unless --product is given")
		}
		description, _ := cmd.Flags().GetString("description")
		quantity, _ := cmd.Flags().GetFloat64("quantity")
		rate, _ := cmd.Flags().GetFloat64("rate")

		item, err := appInstance.Store.AddLineItem(args[0], description, quantity, rate)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%s)\n", item.Name, money(item.Total))
		return nil
	},
}

var invoiceItemRemoveCmd = &cobra.Command{
	Use:   "remove [item_id]",
	Short: "Remove a line item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appInstance.Store.RemoveLineItem(args[0]); err != nil {
			return err
		}
		fmt.Println("Item removed")
		return nil
	},
}

func init() {
	invoiceListCmd.Flags().String("status", "", "Filter by status (draft, sent, overdue, paid)")
	invoiceListCmd.Flags().String("search", "", "Search number or client name")

	invoiceSetCmd.Flags().String("client", "", "Bind a registered client by id")
	invoiceSetCmd.Flags().String("bill-to", "", "Free-form client name (registered on save)")
	invoiceSetCmd.Flags().String("issue", "", "Issue date (YYYY-MM-DD)")
	invoiceSetCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	invoiceSetCmd.Flags().String("status", "", "Lifecycle status")
	invoiceSetCmd.Flags().Float64("tax", 0, "Tax rate percent")
	invoiceSetCmd.Flags().Float64("discount", 0, "Discount value")
	invoiceSetCmd.Flags().String("discount-type", "", "Discount type (flat or percent)")
	invoiceSetCmd.Flags().String("notes", "", "Invoice notes")

	invoiceItemAddCmd.Flags().String("product", "", "Copy a product by id")
	invoiceItemAddCmd.Flags().String("description", "", "Item description")
	invoiceItemAddCmd.Flags().Float64("quantity", 1, "Quantity")
	invoiceItemAddCmd.Flags().Float64("rate", 0, "Unit rate")

	invoiceItemCmd.AddCommand(invoiceItemAddCmd)
	invoiceItemCmd.AddCommand(invoiceItemRemoveCmd)

	invoiceCmd.AddCommand(invoiceNewCmd)
	invoiceCmd.AddCommand(invoiceShowCmd)
	invoiceCmd.AddCommand(invoiceListCmd)
	invoiceCmd.AddCommand(invoiceLoadCmd)
	invoiceCmd.AddCommand(invoiceSaveCmd)
	invoiceCmd.AddCommand(invoiceNumberCmd)
	invoiceCmd.AddCommand(invoiceSetCmd)
	invoiceCmd.AddCommand(invoiceItemCmd)
}
