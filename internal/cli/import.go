package cli

import (
	"fmt"
	"os"

	"github.com/andy/ledgercraft/internal/app"
	"github.com/andy/ledgercraft/internal/domain"
	"github.com/andy/ledgercraft/internal/snapshot"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a ledger, replacing local data",
	Long: `Import a previously exported ledger. The import replaces the whole
local ledger atomically; on any failure the existing data is left
untouched. Encrypted exports are detected automatically.`,
}

var importFileCmd = &cobra.Command{
	Use:   "file [path]",
	Short: "Import a plain or encrypted export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}

		if snapshot.IsEncrypted(data) {
			password, err := app.PromptPassword("Password to decrypt")
			if err != nil {
				return err
			}
			decoded, err := snapshot.DecodeEncrypted(data, password)
			if err != nil {
				return fmt.Errorf("import aborted, ledger unchanged: %w", err)
			}
			return applyImport(decoded)
		}

		decoded, err := snapshot.Decode(data)
		if err != nil {
			return fmt.Errorf("import aborted, ledger unchanged: %w", err)
		}
		return applyImport(decoded)
	},
}

var importLinkCmd = &cobra.Command{
	Use:   "link [url]",
	Short: "Import a ledger embedded in a shared URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		led, scrubbed, err := snapshot.DecodeShareLink(args[0])
		if err != nil {
			return fmt.Errorf("invalid shared link, ledger unchanged: %w", err)
		}
		if led == nil {
			return fmt.Errorf("no embedded state in url")
		}
		if err := applyImport(led); err != nil {
			return err
		}
		fmt.Printf("State parameter consumed; share-free url: %s\n", scrubbed)
		return nil
	},
}

func applyImport(led *domain.Ledger) error {
	if err := appInstance.ImportLedger(led); err != nil {
		return err
	}
	fmt.Printf("Imported %d client(s), %d product(s), %d invoice(s)\n",
		len(led.Clients), len(led.Products), len(led.Invoices))
	return nil
}

func init() {
	importCmd.AddCommand(importFileCmd)
	importCmd.AddCommand(importLinkCmd)
}
