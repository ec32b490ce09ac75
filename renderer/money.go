package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the display currency for amounts in reports. The transaction
// master carries IFSC routing codes, so INR is the natural default.
var Currency = money.INR

// formatAmount renders a decimal amount in the display currency.
func formatAmount(d decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), Currency).Display()
}
