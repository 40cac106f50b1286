package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klingberg/bokfor/internal/client"
	"github.com/klingberg/bokfor/internal/ledger"
)

var transactionCmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"txn"},
	Short:   "Inspect committed transactions",
}

var txnListAccount string

var transactionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer, flagOwner)
		txns, err := c.ListTransactions(context.Background(), txnListAccount)
		if err != nil {
			return err
		}

		if len(txns) == 0 {
			fmt.Println("No transactions found.")
			return nil
		}

		fmt.Printf("%-38s %-12s %12s %-6s %s\n", "ID", "DATE", "AMOUNT", "LINES", "DESCRIPTION")
		for _, t := range txns {
			desc := t.Description
			if len(desc) > 40 {
				desc = desc[:38] + ".."
			}
			fmt.Printf("%-38s %-12s %12s %-6d %s\n",
				t.ID,
				t.Date.Format("2006-01-02"),
				ledger.FormatAmount(t.GrossAmount),
				len(t.Lines),
				desc,
			)
		}
		return nil
	},
}

var transactionGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show transaction details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer, flagOwner)
		txn, err := c.GetTransaction(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:          %s\n", txn.ID)
		fmt.Printf("Date:        %s\n", txn.Date.Format("2006-01-02"))
		fmt.Printf("Description: %s\n", txn.Description)
		fmt.Printf("Gross:       %s\n", ledger.FormatAmount(txn.GrossAmount))
		if txn.Comment != "" {
			fmt.Printf("Comment:     %s\n", txn.Comment)
		}
		if txn.AttachmentRef != "" {
			fmt.Printf("Attachment:  %s\n", txn.AttachmentRef)
		}
		fmt.Println("Lines:")
		printLines(txn.Lines)
		return nil
	},
}

func init() {
	transactionListCmd.Flags().StringVar(&txnListAccount, "account", "", "Filter by account number")
	transactionCmd.AddCommand(transactionListCmd)
	transactionCmd.AddCommand(transactionGetCmd)
	rootCmd.AddCommand(transactionCmd)
}
