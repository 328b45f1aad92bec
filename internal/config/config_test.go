package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/invoices")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("INVOICE_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("expected default SMTP port 587, got %d", cfg.SMTPPort)
	}
	if cfg.InvoiceDir != "invoices" {
		t.Errorf("expected default invoice dir 'invoices', got %s", cfg.InvoiceDir)
	}
	if cfg.LoggerConfig().Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LoggerConfig().Level)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing, got nil")
	}
}

func TestLoad_InvalidSMTPPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/invoices")
	t.Setenv("SMTP_PORT", "smtp")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric SMTP_PORT, got nil")
	}
}
