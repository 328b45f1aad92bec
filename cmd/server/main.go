package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"invoice-manager/internal/adapters/cli"
	"invoice-manager/internal/config"
	"invoice-manager/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if err := logger.Setup(cfg.LoggerConfig()); err != nil {
		log.Fatal().Err(err).Msg("logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Serve(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
