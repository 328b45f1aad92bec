package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	webAdapter "invoice-manager/internal/adapters/web"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := webAdapter.IssueToken(cfg.JWTSecret, subject, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("subject", "cli", "Token subject")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
}
