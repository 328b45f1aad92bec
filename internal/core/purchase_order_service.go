package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const poSelect = `
	SELECT po.po_number, po.client_id, c.company_name, po.training_details,
	       po.training_amount, po.gst_percentage, po.gst_amount, po.total_amount,
	       po.po_date, po.client_pan_number, po.client_gst_number, po.status, po.created_date
	FROM purchase_orders po
	JOIN client_companies c ON c.id = po.client_id`

type purchaseOrderService struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPurchaseOrderService constructs a PurchaseOrderService backed by PostgreSQL.
func NewPurchaseOrderService(pool *pgxpool.Pool, log zerolog.Logger) PurchaseOrderService {
	return &purchaseOrderService{pool: pool, log: log}
}

// CreatePO creates a new PENDING purchase order.
func (s *purchaseOrderService) CreatePO(ctx context.Context, input PurchaseOrderInput) (*PurchaseOrder, error) {
	if err := requiredField("po_number", input.PONumber); err != nil {
		return nil, err
	}
	if input.ClientID == 0 {
		return nil, ErrClientRequired
	}
	if !input.TrainingAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, Infra("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	client, err := getClient(ctx, tx, input.ClientID)
	if err != nil {
		return nil, err
	}

	po := &PurchaseOrder{
		PONumber:        input.PONumber,
		ClientID:        client.ID,
		TrainingDetails: input.TrainingDetails,
		TrainingAmount:  input.TrainingAmount,
		ClientPANNumber: deref(client.PANNumber),
		ClientGSTNumber: deref(client.GSTNumber),
		Status:          POStatusPending,
	}
	applyTax(po)

	if _, err := tx.Exec(ctx, `
		INSERT INTO purchase_orders (po_number, client_id, training_details, training_amount,
		                             gst_percentage, gst_amount, total_amount, po_date,
		                             client_pan_number, client_gst_number, status, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_DATE, $8, $9, $10, CURRENT_DATE)`,
		po.PONumber, po.ClientID, po.TrainingDetails, po.TrainingAmount,
		po.GSTPercentage, po.GSTAmount, po.TotalAmount,
		po.ClientPANNumber, po.ClientGSTNumber, string(po.Status),
	); err != nil {
		if isUniqueViolation(err, "purchase_orders_pkey") {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePONumber, po.PONumber)
		}
		return nil, Infra(fmt.Sprintf("insert purchase order %s", po.PONumber), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, Infra("commit purchase order", err)
	}

	s.log.Info().Str("po_number", po.PONumber).Int("client_id", po.ClientID).
		Str("total", po.TotalAmount.StringFixed(2)).Msg("purchase order created")

	return s.GetPO(ctx, po.PONumber)
}

// GetPO returns a purchase order by PO number.
func (s *purchaseOrderService) GetPO(ctx context.Context, poNumber string) (*PurchaseOrder, error) {
	return getPO(ctx, s.pool, poNumber, false)
}

// getPO loads a purchase order, optionally locking its row for the rest of the transaction.
func getPO(ctx context.Context, q dbtx, poNumber string, forUpdate bool) (*PurchaseOrder, error) {
	query := poSelect + " WHERE po.po_number = $1"
	if forUpdate {
		query += " FOR UPDATE OF po"
	}
	po, err := scanPO(q.QueryRow(ctx, query, poNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPurchaseOrderNotFound, poNumber)
		}
		return nil, Infra(fmt.Sprintf("get purchase order %s", poNumber), err)
	}
	return po, nil
}

// GetPOs returns all purchase orders.
func (s *purchaseOrderService) GetPOs(ctx context.Context) ([]PurchaseOrder, error) {
	rows, err := s.pool.Query(ctx, poSelect+" ORDER BY po.created_date DESC, po.po_number")
	if err != nil {
		return nil, Infra("list purchase orders", err)
	}
	defer rows.Close()

	var orders []PurchaseOrder
	for rows.Next() {
		po, err := scanPO(rows)
		if err != nil {
			return nil, Infra("scan purchase order", err)
		}
		orders = append(orders, *po)
	}
	if err := rows.Err(); err != nil {
		return nil, Infra("list purchase orders", err)
	}
	return orders, nil
}

// UpdatePO overwrites the supplied fields and recomputes GST and total.
func (s *purchaseOrderService) UpdatePO(ctx context.Context, poNumber string, update PurchaseOrderUpdate) (*PurchaseOrder, error) {
	if update.TrainingAmount != nil && !update.TrainingAmount.IsPositive() {
		return nil, ErrInvalidAmount
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

	if update.TrainingDetails != nil {
		po.TrainingDetails = *update.TrainingDetails
	}
	if update.TrainingAmount != nil {
		po.TrainingAmount = *update.TrainingAmount
	}
	if update.ClientID != nil && *update.ClientID != 0 {
		client, err := getClient(ctx, tx, *update.ClientID)
		if err != nil {
			return nil, err
		}
		po.ClientID = client.ID
		po.ClientName = client.Name
		po.ClientPANNumber = deref(client.PANNumber)
		po.ClientGSTNumber = deref(client.GSTNumber)
	}
	applyTax(po)

	if _, err := tx.Exec(ctx, `
		UPDATE purchase_orders
		SET client_id = $1, training_details = $2, training_amount = $3,
		    gst_percentage = $4, gst_amount = $5, total_amount = $6,
		    client_pan_number = $7, client_gst_number = $8
		WHERE po_number = $9`,
		po.ClientID, po.TrainingDetails, po.TrainingAmount,
		po.GSTPercentage, po.GSTAmount, po.TotalAmount,
		po.ClientPANNumber, po.ClientGSTNumber, po.PONumber,
	); err != nil {
		return nil, Infra(fmt.Sprintf("update purchase order %s", poNumber), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, Infra("commit purchase order update", err)
	}

	s.log.Info().Str("po_number", poNumber).Str("total", po.TotalAmount.StringFixed(2)).
		Msg("purchase order updated")
	return po, nil
}

// UpdatePOStatus overwrites the status of a purchase order in its own transaction.
func (s *purchaseOrderService) UpdatePOStatus(ctx context.Context, poNumber string, status POStatus) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Infra("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := updatePOStatusWithTx(ctx, tx, poNumber, status); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return Infra("commit status change", err)
	}
	return nil
}

// UpdatePOStatusTx overwrites the status inside the caller's transaction.
// The caller is responsible for committing or rolling back.
func (s *purchaseOrderService) UpdatePOStatusTx(ctx context.Context, tx pgx.Tx, poNumber string, status POStatus) error {
	return updatePOStatusWithTx(ctx, tx, poNumber, status)
}

func updatePOStatusWithTx(ctx context.Context, tx pgx.Tx, poNumber string, status POStatus) error {
	tag, err := tx.Exec(ctx,
		"UPDATE purchase_orders SET status = $1 WHERE po_number = $2",
		string(status), poNumber,
	)
	if err != nil {
		return Infra(fmt.Sprintf("update status of purchase order %s", poNumber), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrPurchaseOrderNotFound, poNumber)
	}
	return nil
}

// DeletePO removes a purchase order, guarded by the existence of referencing invoices.
func (s *purchaseOrderService) DeletePO(ctx context.Context, poNumber string, force bool) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Infra("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if _, err := getPO(ctx, tx, poNumber, true); err != nil {
		return err
	}

	hasInvoices, err := invoicesExistForPO(ctx, tx, poNumber)
	if err != nil {
		return err
	}
	if hasInvoices && !force {
		return fmt.Errorf("cannot delete PO %s, use force to override: %w", poNumber, ErrHasInvoices)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM purchase_orders WHERE po_number = $1", poNumber); err != nil {
		return Infra(fmt.Sprintf("delete purchase order %s", poNumber), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Infra("commit purchase order delete", err)
	}

	ev := s.log.Info()
	if hasInvoices {
		ev = s.log.Warn().Bool("orphaned_invoices", true)
	}
	ev.Str("po_number", poNumber).Msg("purchase order deleted")
	return nil
}

func scanPO(row pgx.Row) (*PurchaseOrder, error) {
	po := &PurchaseOrder{}
	var status string
	if err := row.Scan(
		&po.PONumber, &po.ClientID, &po.ClientName, &po.TrainingDetails,
		&po.TrainingAmount, &po.GSTPercentage, &po.GSTAmount, &po.TotalAmount,
		&po.PODate, &po.ClientPANNumber, &po.ClientGSTNumber, &status, &po.CreatedDate,
	); err != nil {
		return nil, err
	}
	po.Status = POStatus(status)
	return po, nil
}
