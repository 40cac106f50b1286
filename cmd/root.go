package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagDB     string
	flagOwner  string
	flagLog    string
)

var rootCmd = &cobra.Command{
	Use:   "bokfor",
	Short: "Double-entry bookkeeping with preset-driven VAT posting",
	Long: "A double-entry bookkeeping ledger backed by SQLite. Transaction presets\n" +
		"produce balanced postings against a BAS chart of accounts, with VAT\n" +
		"extraction, reverse-charge and import VAT rules, and per-mode account\n" +
		"remapping for reimbursements and invoices.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(flagLog)
	},
}

func setupLogging(format string) {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8888", "Server address")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "bokfor.db", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&flagOwner, "owner", "", "Owner id sent as X-Owner-Id")
	rootCmd.PersistentFlags().StringVar(&flagLog, "log-format", "text", "Log format: text or json")
}

func Execute() error {
	return rootCmd.Execute()
}
