package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	webAdapter "invoice-manager/internal/adapters/web"
	"invoice-manager/internal/config"
	"invoice-manager/internal/jobs"
	"invoice-manager/internal/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// Serve runs the HTTP API, and the PDF backfill job when scheduled, until ctx is cancelled.
func Serve(ctx context.Context, c *config.Config) error {
	log := logger.WithComponent("server")

	rt, err := newRuntime(ctx, c)
	if err != nil {
		return err
	}
	defer rt.Close()

	if c.PDFBackfillSchedule != "" {
		job, err := jobs.NewPDFBackfill(c.PDFBackfillSchedule, rt.svc, logger.WithComponent("pdf_backfill"))
		if err != nil {
			return err
		}
		job.Start()
		defer job.Stop()
	}

	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set, the API is unauthenticated")
	}

	srv := &http.Server{
		Addr:              ":" + c.ServerPort,
		Handler:           webAdapter.NewHandler(rt.svc, c.AllowedOrigins, c.JWTSecret),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
