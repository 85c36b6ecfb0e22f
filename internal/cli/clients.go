package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `Add, list, and edit the clients you invoice.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients, most recently used first",
	RunE: func(cmd *cobra.Command, args []string) error {
		clients := appInstance.Store.ListClients()
		if len(clients) == 0 {
			fmt.Println("No clients yet")
			return nil
		}

		fmt.Printf("%-36s %-25s %-25s %-12s\n", "ID", "Name", "Email", "Last used")
		for _, c := range clients {
			fmt.Printf("%-36s %-25s %-25s %-12s\n",
				c.ID,
				truncate(c.Name, 25),
				truncate(orDash(c.Email), 25),
				c.LastUsed.Format("2006-01-02"),
			)
		}
		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")
		address, _ := cmd.Flags().GetString("address")

		client, err := appInstance.Store.AddClient(args[0], email, phone, address)
		if err != nil {
			return fmt.Errorf("failed to add client: %w", err)
		}
		fmt.Printf("Added client %s (%s)\n", client.Name, client.ID)
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a client's details",
	Long: `Edit a client's details. Client snapshots already embedded in saved
invoices keep the values they were saved with.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := appInstance.Store.GetClient(args[0])
		if err != nil {
			return err
		}

		name := client.Name
		if cmd.Flags().Changed("name") {
			name, _ = cmd.Flags().GetString("name")
		}
		email := client.Email
		if cmd.Flags().Changed("email") {
			email, _ = cmd.Flags().GetString("email")
		}
		phone := client.Phone
		if cmd.Flags().Changed("phone") {
			phone, _ = cmd.Flags().GetString("phone")
		}
		address := client.Address
		if cmd.Flags().Changed("address") {
			address, _ = cmd.Flags().GetString("address")
		}

		if err := appInstance.Store.UpdateClient(client.ID, name, email, phone, address); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}
		fmt.Printf("Updated client %s\n", name)
		return nil
	},
}

func init() {
	clientsAddCmd.Flags().String("email", "", "Client email")
	clientsAddCmd.Flags().String("phone", "", "Client phone")
	clientsAddCmd.Flags().String("address", "", "Client address")

	clientsEditCmd.Flags().String("name", "", "New name")
	clientsEditCmd.Flags().String("email", "", "New email")
	clientsEditCmd.Flags().String("phone", "", "New phone")
	clientsEditCmd.Flags().String("address", "", "New address")

	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
}
