package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klingberg/bokfor/internal/client"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Inspect transaction presets",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer, flagOwner)
		presets, err := c.ListPresets(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("%-24s %-32s %-14s %-6s %s\n", "ID", "NAME", "CATEGORY", "VAT", "SPECIAL")
		for _, p := range presets {
			special := string(p.Special)
			if special == "" {
				special = "-"
			}
			fmt.Printf("%-24s %-32s %-14s %-6s %s\n", p.ID, p.Name, p.Category, p.VATRate.String(), special)
		}
		return nil
	},
}

var presetGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a preset's account rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer, flagOwner)
		p, err := c.GetPreset(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:       %s\n", p.ID)
		fmt.Printf("Name:     %s\n", p.Name)
		fmt.Printf("Category: %s\n", p.Category)
		fmt.Printf("VAT rate: %s\n", p.VATRate)
		if p.Special != "" {
			fmt.Printf("Special:  %s\n", p.Special)
			return nil
		}
		fmt.Println("Rows:")
		for _, r := range p.Rows {
			side := "credit"
			if r.Debit {
				side = "debit"
			}
			fmt.Printf("  %-6s %-36s %s\n", r.Number, r.Label, side)
		}
		return nil
	},
}

func init() {
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetGetCmd)
	rootCmd.AddCommand(presetCmd)
}
