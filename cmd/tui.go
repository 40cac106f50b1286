package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/klingberg/bokfor/internal/catalog"
	"github.com/klingberg/bokfor/internal/client"
	"github.com/klingberg/bokfor/internal/server"
	"github.com/klingberg/bokfor/internal/store"
	"github.com/klingberg/bokfor/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive posting terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagOwner == "" {
			return fmt.Errorf("--owner is required")
		}
		serverAddr := flagServer

		if !cmd.Flags().Changed("server") {
			// Start embedded server in background
			st, err := store.Open(flagDB)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			cat, err := catalog.New()
			if err != nil {
				return err
			}

			srv := server.New(st, cat, "127.0.0.1:8888")
			go func() {
				if err := srv.ListenAndServe(); err != nil {
					slog.Error("embedded server", "err", err)
				}
			}()
			serverAddr = "http://127.0.0.1:8888"

			// Wait for server to be ready
			c := client.New(serverAddr, flagOwner)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for {
				if err := c.Ping(ctx); err == nil {
					break
				}
				if ctx.Err() != nil {
					return fmt.Errorf("timeout waiting for embedded server")
				}
				time.Sleep(50 * time.Millisecond)
			}
		}

		c := client.New(serverAddr, flagOwner)
		app := tui.NewApp(c)
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
