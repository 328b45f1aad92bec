package config

import (
	"fmt"
	"os"
	"strconv"

	"invoice-manager/internal/logger"
)

type Config struct {
	DatabaseURL string

	// HTTP
	ServerPort     string
	AllowedOrigins string
	JWTSecret      string // empty disables API authentication

	// Documents
	InvoiceDir          string
	PDFBackfillSchedule string // cron spec; empty disables the job

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from the environment. Call godotenv.Load first to pick up .env.
func Load() (*Config, error) {
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("SMTP_PORT must be a number: %w", err)
	}

	config := &Config{
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		AllowedOrigins:      getEnv("ALLOWED_ORIGINS", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		InvoiceDir:          getEnv("INVOICE_DIR", "invoices"),
		PDFBackfillSchedule: getEnv("PDF_BACKFILL_SCHEDULE", ""),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            smtpPort,
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		MailFrom:            getEnv("MAIL_FROM", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:       getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:           getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks the settings every entrypoint needs.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.InvoiceDir == "" {
		return fmt.Errorf("INVOICE_DIR must not be empty")
	}
	return nil
}

// LoggerConfig returns a logger configuration from the main config
func (c *Config) LoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
