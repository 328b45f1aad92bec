package core

import "github.com/shopspring/decimal"

// GSTPercentage is the fixed GST rate applied to every purchase order.
var GSTPercentage = decimal.NewFromInt(18)

var gstRate = decimal.RequireFromString("0.18")

// TaxBreakdown is the derived tax view of a training amount.
type TaxBreakdown struct {
	GSTPercentage decimal.Decimal
	GSTAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
}

// CalculateTax derives GST and the total payable from a base training amount.
// No rounding is applied.
func CalculateTax(trainingAmount decimal.Decimal) TaxBreakdown {
	gst := trainingAmount.Mul(gstRate)
	return TaxBreakdown{
		GSTPercentage: GSTPercentage,
		GSTAmount:     gst,
		TotalAmount:   trainingAmount.Add(gst),
	}
}

// applyTax recomputes the derived monetary fields of po from its training amount.
func applyTax(po *PurchaseOrder) {
	t := CalculateTax(po.TrainingAmount)
	po.GSTPercentage = t.GSTPercentage
	po.GSTAmount = t.GSTAmount
	po.TotalAmount = t.TotalAmount
}
