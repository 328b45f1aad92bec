package app

// GenerateInvoiceRequest is the input for issuing an invoice.
type GenerateInvoiceRequest struct {
	CompanyID string `json:"companyId"` // optional; must match the configured company when set
	PONumber  string `json:"poNumber"`
}

// SendInvoiceRequest is the input for emailing an invoice.
type SendInvoiceRequest struct {
	InvoiceID int
	MarkSent  bool
}
