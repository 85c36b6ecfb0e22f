package cli

import (
	"fmt"
	"os"

	"github.com/andy/ledgercraft/internal/app"
	"github.com/andy/ledgercraft/internal/export"
	"github.com/andy/ledgercraft/internal/ledger"
	"github.com/andy/ledgercraft/internal/snapshot"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger or the current invoice",
}

var exportJSONCmd = &cobra.Command{
	Use:   "json [file]",
	Short: "Export the full ledger as plain JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := snapshot.EncodePretty(appInstance.Store.Snapshot())
		if err != nil {
			return err
		}
		path := "ledgercraft-data.json"
		if len(args) == 1 {
			path = args[0]
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Ledger exported to %s\n", path)
		return nil
	},
}

var exportEncryptedCmd = &cobra.Command{
	Use:   "encrypted [file]",
	Short: "Export the full ledger encrypted with a password",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := app.PromptPassword("Password for export")
		if err != nil {
			return err
		}

		data, err := snapshot.EncodeEncrypted(appInstance.Store.Snapshot(), password)
		if err != nil {
			// No partial file is ever written on failure
			return fmt.Errorf("encryption failed: %w", err)
		}
		path := "ledgercraft-data.encrypted.json"
		if len(args) == 1 {
			path = args[0]
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Encrypted export written to %s\n", path)
		return nil
	},
}

var exportLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Print a shareable URL embedding the whole ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("base")
		link, err := snapshot.EncodeShareLink(base, appInstance.Store.Snapshot())
		if err != nil {
			return err
		}
		fmt.Println(link)
		return nil
	},
}

var exportInvoiceCmd = &cobra.Command{
	Use:   "invoice [file]",
	Short: "Export the current invoice as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv := appInstance.Store.Current()
		if inv == nil {
			return ledger.ErrNoCurrentInvoice
		}
		data, err := export.InvoiceJSON(inv)
		if err != nil {
			return err
		}
		path := export.FileStem(inv) + ".json"
		if len(args) == 1 {
			path = args[0]
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Invoice exported to %s\n", path)
		return nil
	},
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv [file]",
	Short: "Export the current invoice's line items as CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv := appInstance.Store.Current()
		if inv == nil {
			return ledger.ErrNoCurrentInvoice
		}
		data, err := export.LineItemsCSV(inv)
		if err != nil {
			return err
		}
		path := export.FileStem(inv) + "-items.csv"
		if len(args) == 1 {
			path = args[0]
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Printf("Line items exported to %s\n", path)
		return nil
	},
}

func init() {
	exportLinkCmd.Flags().String("base", "https://ledgercraft.app/", "Base URL for the share link")

	exportCmd.AddCommand(exportJSONCmd)
	exportCmd.AddCommand(exportEncryptedCmd)
	exportCmd.AddCommand(exportLinkCmd)
	exportCmd.AddCommand(exportInvoiceCmd)
	exportCmd.AddCommand(exportCSVCmd)
}
