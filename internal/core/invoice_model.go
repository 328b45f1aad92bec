package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is issued once against a purchase order. Subtotal, GSTAmount and TotalAmount
// are copied from the PO at generation time and never follow later PO edits.
type Invoice struct {
	ID            int             `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CompanyID     string          `json:"our_company_id"`
	PONumber      string          `json:"po_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PDFPath       *string         `json:"pdf_path,omitempty"`
	Status        InvoiceStatus   `json:"status"`
	CreatedDate   time.Time       `json:"created_date"`
}

// InvoiceDetail is an invoice with the records it references resolved.
// PurchaseOrder and Client are nil when the PO was force-deleted.
type InvoiceDetail struct {
	Invoice       Invoice        `json:"invoice"`
	Company       OurCompany     `json:"our_company"`
	PurchaseOrder *PurchaseOrder `json:"purchase_order,omitempty"`
	Client        *ClientCompany `json:"client_company,omitempty"`
}

// InvoiceService generates invoices and tracks their document lifecycle.
type InvoiceService interface {
	// GenerateInvoice issues an invoice for a PENDING purchase order and moves the PO to
	// INVOICED in the same transaction. companyID may be empty; when set it must match
	// the configured company.
	GenerateInvoice(ctx context.Context, companyID, poNumber string) (*Invoice, error)

	// GetInvoice returns an invoice by its surrogate ID.
	GetInvoice(ctx context.Context, id int) (*Invoice, error)

	// GetInvoiceDetail returns an invoice with its company, PO and client.
	GetInvoiceDetail(ctx context.Context, id int) (*InvoiceDetail, error)

	// ListInvoices returns all invoices, newest first.
	ListInvoices(ctx context.Context) ([]Invoice, error)

	// ListInvoicesMissingPDF returns invoices that have no rendered document yet.
	ListInvoicesMissingPDF(ctx context.Context) ([]Invoice, error)

	// InvoiceNumberExists reports whether an invoice number has been issued.
	InvoiceNumberExists(ctx context.Context, invoiceNumber string) (bool, error)

	// HasInvoices reports whether any invoice references poNumber.
	HasInvoices(ctx context.Context, poNumber string) (bool, error)

	// SetPDFPath records where the rendered document lives.
	SetPDFPath(ctx context.Context, id int, path string) error

	// MarkSent moves an invoice to SENT. Marking a SENT invoice again is a no-op.
	MarkSent(ctx context.Context, id int) error
}
