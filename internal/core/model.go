package core

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type POStatus string

const (
	POStatusPending  POStatus = "PENDING"
	POStatusInvoiced POStatus = "INVOICED"
)

type InvoiceStatus string

const (
	InvoiceStatusGenerated InvoiceStatus = "GENERATED"
	InvoiceStatusSent      InvoiceStatus = "SENT"
)

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique_violation, optionally
// restricted to a named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func toPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
