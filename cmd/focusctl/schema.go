package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var schemaCMD = &cobra.Command{
	Use:   "schema",
	Short: "Create missing tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Ping(cmd.Context()); err != nil {
			return err
		}
		slog.Info("Schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCMD)
}
