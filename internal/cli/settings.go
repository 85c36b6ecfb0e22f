package cli

import (
	"fmt"

	"github.com/andy/ledgercraft/internal/domain"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := appInstance.Store.Settings()
		company := appInstance.Store.Company()

		fmt.Printf("Company:   %s\n", orDash(company.Name))
		fmt.Printf("Currency:  %s (%s, %s)\n", s.Currency.Symbol, s.Currency.Code, s.Currency.Locale)
		fmt.Printf("Theme:     %s\n", s.Theme)
		fmt.Printf("Accent:    %s\n", s.Accent)
		fmt.Printf("Font:      %s\n", s.Font)
		fmt.Printf("Autosave:  %v\n", s.AutoSave)
		fmt.Printf("Footer:    %s\n", orDash(s.Footer))
		return nil
	},
}

var settingsAutosaveCmd = &cobra.Command{
	Use:   "autosave [on|off]",
	Short: "Toggle draft autosave",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "on":
			if err := appInstance.SetAutoSave(true); err != nil {
				return err
			}
			fmt.Println("Autosave enabled")
		case "off":
			if err := appInstance.SetAutoSave(false); err != nil {
				return err
			}
			fmt.Println("Autosave disabled")
		default:
			return fmt.Errorf("expected on or off, got %q", args[0])
		}
		return nil
	},
}

var settingsCurrencyCmd = &cobra.Command{
	Use:   "currency [code]",
	Short: "Set the display currency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol, _ := cmd.Flags().GetString("symbol")
		locale, _ := cmd.Flags().GetString("locale")
		return appInstance.Store.UpdateSettings(func(s *domain.Settings) {
			s.Currency = domain.Currency{Symbol: symbol, Code: args[0], Locale: locale}
		})
	},
}

var settingsFooterCmd = &cobra.Command{
	Use:   "footer [text]",
	Short: "Set the invoice footer text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return appInstance.Store.UpdateSettings(func(s *domain.Settings) {
			s.Footer = args[0]
		})
	},
}

var settingsCompanyCmd = &cobra.Command{
	Use:   "company [name]",
	Short: "Set the company profile used as invoice sender",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		company := appInstance.Store.Company()
		company.Name = args[0]
		if cmd.Flags().Changed("email") {
			company.Email, _ = cmd.Flags().GetString("email")
		}
		if cmd.Flags().Changed("phone") {
			company.Phone, _ = cmd.Flags().GetString("phone")
		}
		if cmd.Flags().Changed("address") {
			company.Address, _ = cmd.Flags().GetString("address")
		}
		if err := appInstance.Store.SetCompany(company); err != nil {
			return err
		}
		fmt.Printf("Company profile updated: %s\n", company.Name)
		return nil
	},
}

func init() {
	settingsCurrencyCmd.Flags().String("symbol", "$", "Currency symbol")
	settingsCurrencyCmd.Flags().String("locale", "en-US", "Formatting locale")

	settingsCompanyCmd.Flags().String("email", "", "Company email")
	settingsCompanyCmd.Flags().String("phone", "", "Company phone")
	settingsCompanyCmd.Flags().String("address", "", "Company address")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsAutosaveCmd)
	settingsCmd.AddCommand(settingsCurrencyCmd)
	settingsCmd.AddCommand(settingsFooterCmd)
	settingsCmd.AddCommand(settingsCompanyCmd)
}
