package core

import "github.com/shopspring/decimal"

// CurrencySymbol prefixes every amount shown on documents and emails.
const CurrencySymbol = "₹"

// FormatMoney renders an amount as the currency symbol followed by two decimal places.
func FormatMoney(amount decimal.Decimal) string {
	return CurrencySymbol + amount.StringFixed(2)
}
