package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klingberg/bokfor/internal/client"
	"github.com/klingberg/bokfor/internal/ledger"
)

var accountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"acct"},
	Short:   "Inspect the chart of accounts",
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the owner's accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer, flagOwner)
		accounts, err := c.ListAccounts(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("%-8s %-48s %s\n", "NUMBER", "NAME", "CLASS")
		for _, a := range accounts {
			fmt.Printf("%-8s %-48s %s\n", a.Number, a.Name, ledger.ClassLabel(a.Class))
		}
		return nil
	},
}

var accountChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show the base BAS chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer, flagOwner)
		chart, err := c.GetChart(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("%-8s %-48s %s\n", "NUMBER", "NAME", "DESCRIPTION")
		for _, e := range chart {
			fmt.Printf("%-8s %-48s %s\n", e.Number, e.Name, e.Description)
		}
		return nil
	},
}

func init() {
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountChartCmd)
	rootCmd.AddCommand(accountCmd)
}
