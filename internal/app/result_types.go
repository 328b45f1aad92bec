package app

import "invoice-manager/internal/core"

// HealthResult is returned by Health.
type HealthResult struct {
	Status     string `json:"status"`
	Company    string `json:"company"`
	NeedsSetup bool   `json:"needs_setup"`
}

// ClientListResult is returned by ListClients.
type ClientListResult struct {
	Clients []core.ClientCompany `json:"clients"`
}

// PurchaseOrderListResult is returned by ListPurchaseOrders.
type PurchaseOrderListResult struct {
	PurchaseOrders []core.PurchaseOrder `json:"purchase_orders"`
}

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices []core.Invoice `json:"invoices"`
}

// InvoiceResult is returned by GenerateInvoice. PDFError is set when the invoice
// was issued but its document could not be rendered.
type InvoiceResult struct {
	Invoice  *core.Invoice `json:"invoice"`
	PDFPath  string        `json:"pdf_path,omitempty"`
	PDFError string        `json:"pdf_error,omitempty"`
}

// SendInvoiceResult is returned by SendInvoice.
type SendInvoiceResult struct {
	Invoice *core.Invoice `json:"invoice"`
	SentTo  string        `json:"sent_to"`
	PDFPath string        `json:"pdf_path"`
}

// RenderResult is returned by RenderMissingPDFs.
type RenderResult struct {
	Rendered []string          `json:"rendered"`
	Failed   map[string]string `json:"failed,omitempty"`
}
