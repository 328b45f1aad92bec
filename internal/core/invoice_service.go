package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const invoiceColumns = `id, invoice_number, our_company_id, po_number, invoice_date,
	subtotal, gst_amount, total_amount, pdf_path, status, created_date`

type invoiceService struct {
	pool      *pgxpool.Pool
	poService PurchaseOrderService
	idGen     *IDGenerator
	log       zerolog.Logger
}

// NewInvoiceService constructs an InvoiceService backed by PostgreSQL.
func NewInvoiceService(pool *pgxpool.Pool, poService PurchaseOrderService, idGen *IDGenerator, log zerolog.Logger) InvoiceService {
	return &invoiceService{pool: pool, poService: poService, idGen: idGen, log: log}
}

// GenerateInvoice issues an invoice for a PENDING purchase order.
// The PO row is locked for the duration of the transaction, so concurrent calls for the
// same PO serialize and the second one observes INVOICED.
func (s *invoiceService) GenerateInvoice(ctx context.Context, companyID, poNumber string) (*Invoice, error) {
	company, err := getOurCompany(ctx, s.pool)
	if err != nil {
		return nil, err
	}
	if companyID != "" && companyID != company.CompanyID {
		return nil, fmt.Errorf("%w: got %s", ErrCompanyMismatch, companyID)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, Infra("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	po, err := getPO(ctx, tx, poNumber, true)
	if err != nil {
		return nil, err
	}
	if po.Status == POStatusInvoiced {
		return nil, fmt.Errorf("PO %s: %w", poNumber, ErrAlreadyInvoiced)
	}

	exists := func(ctx context.Context, candidate string) (bool, error) {
		return invoiceNumberExists(ctx, tx, candidate)
	}

	var inv *Invoice
	for attempt := 1; inv == nil; attempt++ {
		number, err := s.idGen.InvoiceNumber(ctx, exists)
		if err != nil {
			return nil, Infra("generate invoice number", err)
		}

		inv, err = insertInvoice(ctx, tx, number, company.CompanyID, po)
		if err != nil {
			if isUniqueViolation(err, "invoices_invoice_number_key") && attempt < maxInsertAttempts {
				s.log.Debug().Str("invoice_number", number).Msg("invoice number taken concurrently, regenerating")
				continue
			}
			return nil, Infra("insert invoice", err)
		}
	}

	if err := s.poService.UpdatePOStatusTx(ctx, tx, poNumber, POStatusInvoiced); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, Infra("commit invoice", err)
	}

	s.log.Info().Str("invoice_number", inv.InvoiceNumber).Str("po_number", poNumber).
		Str("total", inv.TotalAmount.StringFixed(2)).Msg("invoice generated")
	return inv, nil
}

// insertInvoice inserts under a savepoint so a unique violation leaves tx usable.
func insertInvoice(ctx context.Context, tx pgx.Tx, number, companyID string, po *PurchaseOrder) (*Invoice, error) {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sp.Rollback(ctx)

	inv, err := scanInvoice(sp.QueryRow(ctx, `
		INSERT INTO invoices (invoice_number, our_company_id, po_number, invoice_date,
		                      subtotal, gst_amount, total_amount, status, created_date)
		VALUES ($1, $2, $3, CURRENT_DATE, $4, $5, $6, $7, CURRENT_DATE)
		RETURNING `+invoiceColumns,
		number, companyID, po.PONumber,
		po.TrainingAmount, po.GSTAmount, po.TotalAmount, string(InvoiceStatusGenerated),
	))
	if err != nil {
		return nil, err
	}
	if err := sp.Commit(ctx); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetInvoice returns an invoice by ID.
func (s *invoiceService) GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	inv, err := scanInvoice(s.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrInvoiceNotFound, id)
		}
		return nil, Infra(fmt.Sprintf("get invoice %d", id), err)
	}
	return inv, nil
}

// GetInvoiceDetail returns an invoice with its company, PO and client resolved.
func (s *invoiceService) GetInvoiceDetail(ctx context.Context, id int) (*InvoiceDetail, error) {
	inv, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	company, err := getOurCompany(ctx, s.pool)
	if err != nil {
		return nil, err
	}

	detail := &InvoiceDetail{Invoice: *inv, Company: *company}

	po, err := getPO(ctx, s.pool, inv.PONumber, false)
	switch {
	case errors.Is(err, ErrNotFound):
		s.log.Warn().Int("invoice_id", id).Str("po_number", inv.PONumber).
			Msg("invoice references a deleted purchase order")
		return detail, nil
	case err != nil:
		return nil, err
	}
	detail.PurchaseOrder = po

	client, err := getClient(ctx, s.pool, po.ClientID)
	if err != nil {
		return nil, err
	}
	detail.Client = client
	return detail, nil
}

// ListInvoices returns all invoices.
func (s *invoiceService) ListInvoices(ctx context.Context) ([]Invoice, error) {
	return s.listInvoices(ctx, "")
}

// ListInvoicesMissingPDF returns invoices without a rendered document.
func (s *invoiceService) ListInvoicesMissingPDF(ctx context.Context) ([]Invoice, error) {
	return s.listInvoices(ctx, "WHERE pdf_path IS NULL")
}

func (s *invoiceService) listInvoices(ctx context.Context, where string) ([]Invoice, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices `+where+` ORDER BY created_date DESC, id DESC`)
	if err != nil {
		return nil, Infra("list invoices", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, Infra("scan invoice", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, Infra("list invoices", err)
	}
	return invoices, nil
}

// InvoiceNumberExists reports whether invoiceNumber has been issued.
func (s *invoiceService) InvoiceNumberExists(ctx context.Context, invoiceNumber string) (bool, error) {
	return invoiceNumberExists(ctx, s.pool, invoiceNumber)
}

func invoiceNumberExists(ctx context.Context, q dbtx, invoiceNumber string) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM invoices WHERE invoice_number = $1)", invoiceNumber,
	).Scan(&exists); err != nil {
		return false, Infra("check invoice number", err)
	}
	return exists, nil
}

// HasInvoices reports whether any invoice references poNumber.
func (s *invoiceService) HasInvoices(ctx context.Context, poNumber string) (bool, error) {
	return invoicesExistForPO(ctx, s.pool, poNumber)
}

func invoicesExistForPO(ctx context.Context, q dbtx, poNumber string) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM invoices WHERE po_number = $1)", poNumber,
	).Scan(&exists); err != nil {
		return false, Infra("check invoices for purchase order", err)
	}
	return exists, nil
}

// SetPDFPath records the rendered document location.
func (s *invoiceService) SetPDFPath(ctx context.Context, id int, path string) error {
	tag, err := s.pool.Exec(ctx, "UPDATE invoices SET pdf_path = $1 WHERE id = $2", path, id)
	if err != nil {
		return Infra(fmt.Sprintf("set pdf path of invoice %d", id), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", ErrInvoiceNotFound, id)
	}
	return nil
}

// MarkSent transitions an invoice to SENT.
func (s *invoiceService) MarkSent(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE invoices SET status = $1 WHERE id = $2",
		string(InvoiceStatusSent), id,
	)
	if err != nil {
		return Infra(fmt.Sprintf("mark invoice %d sent", id), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", ErrInvoiceNotFound, id)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*Invoice, error) {
	inv := &Invoice{}
	var status string
	if err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.CompanyID, &inv.PONumber, &inv.InvoiceDate,
		&inv.Subtotal, &inv.GSTAmount, &inv.TotalAmount, &inv.PDFPath, &status, &inv.CreatedDate,
	); err != nil {
		return nil, err
	}
	inv.Status = InvoiceStatus(status)
	return inv, nil
}
