package cmd

import (
	"github.com/spf13/cobra"

	"github.com/klingberg/bokfor/internal/catalog"
	"github.com/klingberg/bokfor/internal/server"
	"github.com/klingberg/bokfor/internal/store"
)

var (
	serveAddr    string
	servePresets string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(flagDB)
		if err != nil {
			return err
		}
		defer st.Close()

		var cat *catalog.Catalog
		if servePresets != "" {
			cat, err = catalog.LoadFile(servePresets)
		} else {
			cat, err = catalog.New()
		}
		if err != nil {
			return err
		}

		srv := server.New(st, cat, serveAddr)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8888", "Listen address")
	serveCmd.Flags().StringVar(&servePresets, "presets", "", "Optional YAML file with custom presets")
	rootCmd.AddCommand(serveCmd)
}
