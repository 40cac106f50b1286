package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klingberg/bokfor/internal/client"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage employees, suppliers, and customers",
}

var contactListKind string

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer, flagOwner)
		contacts, err := c.ListContacts(context.Background(), contactListKind)
		if err != nil {
			return err
		}

		fmt.Printf("%-6s %-10s %s\n", "ID", "KIND", "NAME")
		for _, ct := range contacts {
			fmt.Printf("%-6d %-10s %s\n", ct.ID, ct.Kind, ct.Name)
		}
		return nil
	},
}

var (
	contactAddKind string
	contactAddName string
)

var contactAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a contact",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer, flagOwner)
		ct, err := c.CreateContact(context.Background(), contactAddKind, contactAddName)
		if err != nil {
			return err
		}
		fmt.Printf("Contact created: %d (%s %s)\n", ct.ID, ct.Kind, ct.Name)
		return nil
	},
}

func init() {
	contactListCmd.Flags().StringVar(&contactListKind, "kind", "", "Filter by kind: employee, supplier, customer")

	contactAddCmd.Flags().StringVar(&contactAddKind, "kind", "", "Contact kind: employee, supplier, customer")
	contactAddCmd.Flags().StringVar(&contactAddName, "name", "", "Contact name")
	contactAddCmd.MarkFlagRequired("kind")
	contactAddCmd.MarkFlagRequired("name")

	contactCmd.AddCommand(contactListCmd)
	contactCmd.AddCommand(contactAddCmd)
	rootCmd.AddCommand(contactCmd)
}
