package app

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"invoice-manager/internal/core"
)

// ErrMailNotConfigured is returned by SendInvoice when no SMTP server is configured.
var ErrMailNotConfigured = core.Infra("send invoice email", errors.New("SMTP is not configured"))

type appService struct {
	companies core.CompanyService
	pos       core.PurchaseOrderService
	invoices  core.InvoiceService
	renderer  PDFRenderer
	mailer    InvoiceMailer // nil when SMTP is not configured
	log       zerolog.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	companies core.CompanyService,
	pos core.PurchaseOrderService,
	invoices core.InvoiceService,
	renderer PDFRenderer,
	mailer InvoiceMailer,
	log zerolog.Logger,
) ApplicationService {
	return &appService{
		companies: companies,
		pos:       pos,
		invoices:  invoices,
		renderer:  renderer,
		mailer:    mailer,
		log:       log,
	}
}

func (s *appService) Health(ctx context.Context) (*HealthResult, error) {
	company, err := s.companies.GetOurCompany(ctx)
	if errors.Is(err, core.ErrCompanyNotConfigured) {
		return &HealthResult{Status: "ok", NeedsSetup: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &HealthResult{Status: "ok", Company: company.Name}, nil
}

func (s *appService) SetupCompany(ctx context.Context, input core.OurCompanyInput) (*core.OurCompany, error) {
	return s.companies.CreateOurCompany(ctx, input)
}

func (s *appService) GetCompany(ctx context.Context) (*core.OurCompany, error) {
	return s.companies.GetOurCompany(ctx)
}

func (s *appService) UpdateCompany(ctx context.Context, input core.OurCompanyInput) (*core.OurCompany, error) {
	return s.companies.UpdateOurCompany(ctx, input)
}

func (s *appService) AddClient(ctx context.Context, input core.ClientCompanyInput) (*core.ClientCompany, error) {
	return s.companies.CreateClientCompany(ctx, input)
}

func (s *appService) GetClient(ctx context.Context, id int) (*core.ClientCompany, error) {
	return s.companies.GetClientCompany(ctx, id)
}

func (s *appService) ListClients(ctx context.Context) (*ClientListResult, error) {
	clients, err := s.companies.ListClientCompanies(ctx)
	if err != nil {
		return nil, err
	}
	return &ClientListResult{Clients: clients}, nil
}

func (s *appService) CreatePurchaseOrder(ctx context.Context, input core.PurchaseOrderInput) (*core.PurchaseOrder, error) {
	return s.pos.CreatePO(ctx, input)
}

func (s *appService) GetPurchaseOrder(ctx context.Context, poNumber string) (*core.PurchaseOrder, error) {
	return s.pos.GetPO(ctx, poNumber)
}

func (s *appService) ListPurchaseOrders(ctx context.Context) (*PurchaseOrderListResult, error) {
	pos, err := s.pos.GetPOs(ctx)
	if err != nil {
		return nil, err
	}
	return &PurchaseOrderListResult{PurchaseOrders: pos}, nil
}

func (s *appService) UpdatePurchaseOrder(ctx context.Context, poNumber string, update core.PurchaseOrderUpdate) (*core.PurchaseOrder, error) {
	return s.pos.UpdatePO(ctx, poNumber, update)
}

func (s *appService) DeletePurchaseOrder(ctx context.Context, poNumber string, force bool) error {
	return s.pos.DeletePO(ctx, poNumber, force)
}

// GenerateInvoice commits the invoice first; rendering runs afterwards so a
// document failure never loses an issued invoice number.
func (s *appService) GenerateInvoice(ctx context.Context, req GenerateInvoiceRequest) (*InvoiceResult, error) {
	inv, err := s.invoices.GenerateInvoice(ctx, req.CompanyID, req.PONumber)
	if err != nil {
		return nil, err
	}

	result := &InvoiceResult{Invoice: inv}
	detail, err := s.invoices.GetInvoiceDetail(ctx, inv.ID)
	if err == nil {
		var path string
		path, err = s.renderAndRecord(ctx, detail)
		if err == nil {
			result.PDFPath = path
			inv.PDFPath = &path
		}
	}
	if err != nil {
		s.log.Warn().Err(err).
			Str("invoice_number", inv.InvoiceNumber).
			Msg("invoice generated but PDF rendering failed")
		result.PDFError = err.Error()
	}
	return result, nil
}

func (s *appService) GetInvoice(ctx context.Context, id int) (*core.InvoiceDetail, error) {
	return s.invoices.GetInvoiceDetail(ctx, id)
}

func (s *appService) ListInvoices(ctx context.Context) (*InvoiceListResult, error) {
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Invoices: invoices}, nil
}

func (s *appService) SendInvoice(ctx context.Context, req SendInvoiceRequest) (*SendInvoiceResult, error) {
	if s.mailer == nil {
		return nil, ErrMailNotConfigured
	}

	detail, err := s.invoices.GetInvoiceDetail(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	path, err := s.ensurePDF(ctx, detail)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.SendInvoice(ctx, detail, path); err != nil {
		return nil, err
	}

	if req.MarkSent {
		if err := s.invoices.MarkSent(ctx, detail.Invoice.ID); err != nil {
			return nil, err
		}
		detail.Invoice.Status = core.InvoiceStatusSent
	}

	inv := detail.Invoice
	return &SendInvoiceResult{Invoice: &inv, SentTo: detail.Client.Email, PDFPath: path}, nil
}

func (s *appService) InvoicePDF(ctx context.Context, id int) (string, error) {
	detail, err := s.invoices.GetInvoiceDetail(ctx, id)
	if err != nil {
		return "", err
	}
	return s.ensurePDF(ctx, detail)
}

// RenderMissingPDFs keeps going past individual failures and reports them per invoice number.
func (s *appService) RenderMissingPDFs(ctx context.Context) (*RenderResult, error) {
	pending, err := s.invoices.ListInvoicesMissingPDF(ctx)
	if err != nil {
		return nil, err
	}

	result := &RenderResult{Rendered: []string{}}
	for _, inv := range pending {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		detail, err := s.invoices.GetInvoiceDetail(ctx, inv.ID)
		if err == nil {
			_, err = s.renderAndRecord(ctx, detail)
		}
		if err != nil {
			if result.Failed == nil {
				result.Failed = make(map[string]string)
			}
			result.Failed[inv.InvoiceNumber] = err.Error()
			s.log.Warn().Err(err).Str("invoice_number", inv.InvoiceNumber).Msg("PDF backfill failed")
			continue
		}
		result.Rendered = append(result.Rendered, inv.InvoiceNumber)
	}
	return result, nil
}

// ensurePDF returns the recorded document path, rendering again when none is
// recorded or the file has disappeared from disk.
func (s *appService) ensurePDF(ctx context.Context, detail *core.InvoiceDetail) (string, error) {
	if p := detail.Invoice.PDFPath; p != nil && *p != "" {
		if _, err := os.Stat(*p); err == nil {
			return *p, nil
		}
		s.log.Info().Str("path", *p).Msg("invoice PDF missing on disk, re-rendering")
	}
	return s.renderAndRecord(ctx, detail)
}

func (s *appService) renderAndRecord(ctx context.Context, detail *core.InvoiceDetail) (string, error) {
	path, err := s.renderer.Render(detail)
	if err != nil {
		return "", err
	}
	if err := s.invoices.SetPDFPath(ctx, detail.Invoice.ID, path); err != nil {
		return "", err
	}
	detail.Invoice.PDFPath = &path
	return path, nil
}
