package core

import (
	"errors"
	"fmt"
)

// Error categories. Every domain error returned by this package matches exactly one
// of them via errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrValidation     = errors.New("validation failed")
	ErrInfrastructure = errors.New("infrastructure failure")
)

var (
	ErrCompanyNotConfigured     = fmt.Errorf("our company not configured: %w", ErrNotFound)
	ErrPurchaseOrderNotFound    = fmt.Errorf("purchase order %w", ErrNotFound)
	ErrInvoiceNotFound          = fmt.Errorf("invoice %w", ErrNotFound)
	ErrClientNotFound           = fmt.Errorf("client company %w", ErrNotFound)
	ErrAlreadyInvoiced          = fmt.Errorf("invoice already generated for this PO: %w", ErrConflict)
	ErrHasInvoices              = fmt.Errorf("purchase order has generated invoices: %w", ErrConflict)
	ErrCompanyAlreadyConfigured = fmt.Errorf("our company is already configured: %w", ErrConflict)
	ErrDuplicatePONumber        = fmt.Errorf("purchase order number already exists: %w", ErrConflict)
	ErrClientRequired           = fmt.Errorf("client company is required for creating a PO: %w", ErrValidation)
	ErrClientEmailMissing       = fmt.Errorf("client email is not set: %w", ErrValidation)
	ErrPDFMissing               = fmt.Errorf("invoice PDF file not found: %w", ErrValidation)
	ErrInvalidAmount            = fmt.Errorf("training amount must be greater than zero: %w", ErrValidation)
	ErrCompanyMismatch          = fmt.Errorf("company id does not match the configured company: %w", ErrValidation)
	ErrInvoiceOrphaned          = fmt.Errorf("invoice references a purchase order that no longer exists: %w", ErrValidation)
)

// InfraError wraps a failure of an external collaborator (database, PDF renderer,
// mail transport). It matches ErrInfrastructure and unwraps to the root cause.
type InfraError struct {
	Op  string
	Err error
}

func (e *InfraError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfraError) Unwrap() error {
	return e.Err
}

func (e *InfraError) Is(target error) bool {
	return target == ErrInfrastructure
}

// Infra wraps err as an InfraError unless it is nil or already carries a domain category.
func Infra(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrValidation) || errors.Is(err, ErrInfrastructure) {
		return err
	}
	return &InfraError{Op: op, Err: err}
}

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func requiredField(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}
