// Package document renders tax invoices to PDF files.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"invoice-manager/internal/core"
)

const (
	pageMargin = 15.0
	lineHeight = 5.0

	// The core PDF fonts have no rupee glyph.
	pdfCurrency = "Rs. "
)

var (
	primaryColor   = [3]int{0, 82, 147}
	lightGrayColor = [3]int{242, 242, 242}
	netFillColor   = [3]int{232, 245, 233}
)

// Renderer writes invoice PDFs into a single output directory.
type Renderer struct {
	dir string
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Path returns the file an invoice number is rendered to.
func (r *Renderer) Path(invoiceNumber string) string {
	return filepath.Join(r.dir, "Invoice_"+invoiceNumber+".pdf")
}

// Render writes the invoice document and returns its path. Rendering the same
// invoice again overwrites the previous file.
func (r *Renderer) Render(detail *core.InvoiceDetail) (string, error) {
	if detail == nil {
		return "", fmt.Errorf("render invoice: nil detail")
	}
	if detail.PurchaseOrder == nil || detail.Client == nil {
		return "", fmt.Errorf("render invoice %s: %w", detail.Invoice.InvoiceNumber, core.ErrInvoiceOrphaned)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", core.Infra("create invoice directory", err)
	}

	pdf := layout(detail)
	path := r.Path(detail.Invoice.InvoiceNumber)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", core.Infra("write invoice pdf", err)
	}
	return path, nil
}

func layout(d *core.InvoiceDetail) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Invoice "+d.Invoice.InvoiceNumber, true)
	pdf.SetAuthor(d.Company.Name, true)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	width := pageWidth - 2*pageMargin
	inv := d.Invoice
	co := d.Company

	// Company header
	pdf.SetTextColor(primaryColor[0], primaryColor[1], primaryColor[2])
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(width, 9, tr(co.Name), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(width, 4.5, tr(co.Address), "", "C", false)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(width, 4.5, tr("GSTIN: "+co.GSTNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(width, 4.5, tr("Email: "+co.Email+" | Phone: "+co.Phone), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetTextColor(64, 64, 64)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(width, 8, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		"Invoice Number: " + inv.InvoiceNumber,
		"Invoice Date: " + inv.InvoiceDate.Format("02-Jan-2006"),
		"PO Reference: " + d.PurchaseOrder.PONumber,
	} {
		pdf.CellFormat(width, lineHeight, tr(line), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	billParty(pdf, tr, width, d)
	pdf.Ln(6)

	// Service table
	cols := []struct {
		title string
		width float64
		align string
	}{
		{"S.No", width * 1 / 11, "C"},
		{"Service Description", width * 4 / 11, "L"},
		{"Duration", width * 2 / 11, "C"},
		{"Start Date", width * 2 / 11, "C"},
		{"Amount", width * 2 / 11, "R"},
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(primaryColor[0], primaryColor[1], primaryColor[2])
	pdf.SetTextColor(255, 255, 255)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	row := []string{
		"1",
		truncate(d.PurchaseOrder.TrainingDetails, 48),
		"4 Hours",
		inv.InvoiceDate.Format("02-Jan-06"),
		money(inv.Subtotal),
	}
	for i, c := range cols {
		pdf.CellFormat(c.width, 7, tr(row[i]), "1", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)
	pdf.Ln(6)

	// Totals
	labelW, valueW := width*0.2, width*0.2
	indent := width - labelW - valueW
	totals := []struct {
		label string
		value decimal.Decimal
		net   bool
	}{
		{"Subtotal", inv.Subtotal, false},
		{"GST @ " + core.GSTPercentage.String() + "%", inv.GSTAmount, false},
		{"Net Payable", inv.TotalAmount, true},
	}
	for _, t := range totals {
		pdf.SetX(pageMargin + indent)
		if t.net {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetFillColor(netFillColor[0], netFillColor[1], netFillColor[2])
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(labelW, 7, t.label, "1", 0, "L", t.net, 0, "")
		pdf.CellFormat(valueW, 7, money(t.value), "1", 1, "R", t.net, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(width, lineHeight, "Amount (in words): "+core.AmountInWords(inv.TotalAmount), "", "L", false)
	pdf.Ln(4)

	// Bank details
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(primaryColor[0], primaryColor[1], primaryColor[2])
	pdf.CellFormat(width, 6, "Bank Details for Payment", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		"Bank Name: " + co.BankName,
		"Account Number: " + co.AccountNumber,
		"IFSC Code: " + co.IFSCCode,
		"Account Holder: " + co.Name,
	} {
		pdf.CellFormat(width, lineHeight, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(width, lineHeight, "Note: TDS Certificate will be issued within 15 days of payment.", "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(width, lineHeight, tr("For "+co.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(width, lineHeight, "Authorized Signatory", "", 1, "L", false, 0, "")

	return pdf
}

// billParty draws the Bill From and Bill To boxes side by side.
func billParty(pdf *fpdf.Fpdf, tr func(string) string, width float64, d *core.InvoiceDetail) {
	half := width / 2
	from := []string{d.Company.Name, d.Company.Email, d.Company.Phone, d.Company.Address}
	to := []string{d.Client.Name, d.Client.Email, derefOr(d.Client.Phone, ""), d.Client.Address}

	pdf.SetFillColor(lightGrayColor[0], lightGrayColor[1], lightGrayColor[2])
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(half, 6, "Bill From", "LTR", 0, "L", true, 0, "")
	pdf.CellFormat(half, 6, "Bill To", "LTR", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for i := range from {
		border := "LR"
		if i == len(from)-1 {
			border = "LRB"
		}
		pdf.CellFormat(half, lineHeight, tr(truncate(from[i], 55)), border, 0, "L", true, 0, "")
		pdf.CellFormat(half, lineHeight, tr(truncate(to[i], 55)), border, 1, "L", true, 0, "")
	}
}

func money(d decimal.Decimal) string {
	return pdfCurrency + d.StringFixed(2)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
