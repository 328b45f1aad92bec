package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PurchaseOrder is a client's commitment to pay for a training engagement.
// PONumber is the caller-supplied business key and never changes after creation.
type PurchaseOrder struct {
	PONumber        string          `json:"po_number"`
	ClientID        int             `json:"client_company_id"`
	ClientName      string          `json:"client_company_name"`
	TrainingDetails string          `json:"training_details"`
	TrainingAmount  decimal.Decimal `json:"training_amount"`
	GSTPercentage   decimal.Decimal `json:"gst_percentage"`
	GSTAmount       decimal.Decimal `json:"gst_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PODate          time.Time       `json:"po_date"`
	// PAN and GST are copied from the client when the PO is created or its client changes.
	ClientPANNumber string    `json:"client_pan_number"`
	ClientGSTNumber string    `json:"client_gst_number"`
	Status          POStatus  `json:"status"`
	CreatedDate     time.Time `json:"created_date"`
}

// PurchaseOrderInput holds the fields required to create a purchase order.
type PurchaseOrderInput struct {
	PONumber        string          `json:"po_number"`
	ClientID        int             `json:"client_company_id"`
	TrainingDetails string          `json:"training_details"`
	TrainingAmount  decimal.Decimal `json:"training_amount"`
}

// PurchaseOrderUpdate selects the fields to overwrite; nil fields are left unchanged.
type PurchaseOrderUpdate struct {
	TrainingDetails *string          `json:"training_details,omitempty"`
	TrainingAmount  *decimal.Decimal `json:"training_amount,omitempty"`
	ClientID        *int             `json:"client_company_id,omitempty"`
}

// PurchaseOrderService provides purchase order lifecycle operations.
type PurchaseOrderService interface {
	// CreatePO creates a PENDING purchase order, snapshotting the client's PAN/GST
	// and computing GST and total.
	CreatePO(ctx context.Context, input PurchaseOrderInput) (*PurchaseOrder, error)

	// GetPO returns a purchase order by its PO number.
	GetPO(ctx context.Context, poNumber string) (*PurchaseOrder, error)

	// GetPOs returns every purchase order, newest first.
	GetPOs(ctx context.Context) ([]PurchaseOrder, error)

	// UpdatePO overwrites the supplied fields and recomputes GST and total.
	// Invoices already generated against the PO keep their own amounts.
	UpdatePO(ctx context.Context, poNumber string, update PurchaseOrderUpdate) (*PurchaseOrder, error)

	// UpdatePOStatus overwrites the status in its own transaction.
	UpdatePOStatus(ctx context.Context, poNumber string, status POStatus) error

	// UpdatePOStatusTx overwrites the status inside the caller's transaction.
	UpdatePOStatusTx(ctx context.Context, tx pgx.Tx, poNumber string, status POStatus) error

	// DeletePO removes a purchase order. Fails with ErrHasInvoices when invoices reference it,
	// unless force is set, in which case those invoices are left pointing at a missing PO.
	DeletePO(ctx context.Context, poNumber string, force bool) error
}
