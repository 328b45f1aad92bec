package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoice-manager/internal/db"
	"invoice-manager/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := db.NewPool(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := migrations.Apply(cmd.Context(), pool)
		if err != nil {
			return err
		}
		for _, name := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
