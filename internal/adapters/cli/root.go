// Package cli is the cobra command tree behind cmd/app.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"invoice-manager/internal/config"
	"invoice-manager/internal/logger"
)

var version = "1.0.0"

var (
	cfg        *config.Config
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "invoice-manager",
	Short: "Manage purchase orders and GST tax invoices",
	Long: `invoice-manager issues GST tax invoices against client purchase orders.

It stores companies, purchase orders and invoices in PostgreSQL, renders
invoice PDFs and emails them to client companies. Configuration is read
from the environment and an optional .env file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return err
		}
		if err := logger.Setup(c.LoggerConfig()); err != nil {
			return fmt.Errorf("logger setup: %w", err)
		}
		cfg = c
		return nil
	},
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	log := logger.WithComponent("cmd")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Debug().Err(err).Msg("command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}
