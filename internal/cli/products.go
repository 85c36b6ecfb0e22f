package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage reusable products",
	Long: `Manage the product presets you add to invoices. Adding a product to an
invoice copies its fields into the line item; later product edits never
rewrite existing invoices.`,
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		products := appInstance.Store.ListProducts()
		if len(products) == 0 {
			fmt.Println("No products yet")
			return nil
		}

		fmt.Printf("%-36s %-25s %-30s %10s\n", "ID", "Name", "Description", "Rate")
		for _, p := range products {
			fmt.Printf("%-36s %-25s %-30s %10s\n",
				p.ID,
				truncate(p.Name, 25),
				truncate(orDash(p.Description), 30),
				money(p.Rate),
			)
		}
		fmt.Printf("\nTotal: %d product(s)\n", len(products))
		return nil
	},
}

var productsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rate, _ := cmd.Flags().GetFloat64("rate")
		description, _ := cmd.Flags().GetString("description")

		product, err := appInstance.Store.AddProduct(args[0], description, rate)
		if err != nil {
			return fmt.Errorf("failed to add product: %w", err)
		}
		fmt.Printf("Added product %s at %s (%s)\n", product.Name, money(product.Rate), product.ID)
		return nil
	},
}

var productsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		products := appInstance.Store.ListProducts()
		for _, p := range products {
			if p.ID != args[0] {
				continue
			}
			name := p.Name
			if cmd.Flags().Changed("name") {
				name, _ = cmd.Flags().GetString("name")
			}
			description := p.Description
			if cmd.Flags().Changed("description") {
				description, _ = cmd.Flags().GetString("description")
			}
			rate := p.Rate
			if cmd.Flags().Changed("rate") {
				rate, _ = cmd.Flags().GetFloat64("rate")
			}
			if err := appInstance.Store.UpdateProduct(p.ID, name, description, rate); err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
			fmt.Printf("Updated product %s\n", name)
			return nil
		}
		return fmt.Errorf("product %s not found", args[0])
	},
}

func init() {
	productsAddCmd.Flags().Float64("rate", 0, "Unit rate")
	productsAddCmd.Flags().String("description", "", "Product description")

	productsEditCmd.Flags().String("name", "", "New name")
	productsEditCmd.Flags().String("description", "", "New description")
	productsEditCmd.Flags().Float64("rate", 0, "New rate")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsAddCmd)
	productsCmd.AddCommand(productsEditCmd)
}
