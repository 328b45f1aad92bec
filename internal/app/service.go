package app

import (
	"context"

	"invoice-manager/internal/core"
)

// PDFRenderer turns an invoice into a document on disk and returns its path.
type PDFRenderer interface {
	Render(detail *core.InvoiceDetail) (string, error)
}

// InvoiceMailer emails a rendered invoice to the client company.
type InvoiceMailer interface {
	SendInvoice(ctx context.Context, detail *core.InvoiceDetail, pdfPath string) error
}

// ApplicationService is the single interface all adapters (CLI, Web, jobs) call.
// Implementations must contain no display logic of any kind.
type ApplicationService interface {
	// Health reports whether the service can reach its store and whether the
	// company profile still has to be configured.
	Health(ctx context.Context) (*HealthResult, error)

	// SetupCompany configures the invoicing business. Fails with a conflict if it already exists.
	SetupCompany(ctx context.Context, input core.OurCompanyInput) (*core.OurCompany, error)
	GetCompany(ctx context.Context) (*core.OurCompany, error)
	UpdateCompany(ctx context.Context, input core.OurCompanyInput) (*core.OurCompany, error)

	AddClient(ctx context.Context, input core.ClientCompanyInput) (*core.ClientCompany, error)
	GetClient(ctx context.Context, id int) (*core.ClientCompany, error)
	ListClients(ctx context.Context) (*ClientListResult, error)

	CreatePurchaseOrder(ctx context.Context, input core.PurchaseOrderInput) (*core.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, poNumber string) (*core.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context) (*PurchaseOrderListResult, error)
	UpdatePurchaseOrder(ctx context.Context, poNumber string, update core.PurchaseOrderUpdate) (*core.PurchaseOrder, error)

	// DeletePurchaseOrder removes a PO. Without force it refuses when invoices reference it.
	DeletePurchaseOrder(ctx context.Context, poNumber string, force bool) error

	// GenerateInvoice issues the invoice for a pending PO and then renders its PDF.
	// A rendering failure is reported in the result and does not undo the invoice.
	GenerateInvoice(ctx context.Context, req GenerateInvoiceRequest) (*InvoiceResult, error)

	// GetInvoice returns the invoice together with its company, PO and client.
	GetInvoice(ctx context.Context, id int) (*core.InvoiceDetail, error)
	ListInvoices(ctx context.Context) (*InvoiceListResult, error)

	// SendInvoice emails the invoice PDF, rendering it first when it is missing.
	SendInvoice(ctx context.Context, req SendInvoiceRequest) (*SendInvoiceResult, error)

	// InvoicePDF returns the path of the invoice document, rendering it when missing.
	InvoicePDF(ctx context.Context, id int) (string, error)

	// RenderMissingPDFs renders every invoice that has no document yet.
	RenderMissingPDFs(ctx context.Context) (*RenderResult, error)
}
