// Package pricing holds the storefront's price arithmetic. All functions are
// pure; inputs are trusted numerics. Arithmetic runs on decimals so that
// values such as 500 at 10% off come out as exactly 450.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Breakdown is the rounded result of OrderTotal
type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// TotalPrice returns unitPrice × quantity
func TotalPrice(unitPrice, quantity float64) float64 {
	return toFloat(d(unitPrice).Mul(d(quantity)))
}

// DiscountAmount returns base × pct / 100
func DiscountAmount(base, pct float64) float64 {
	return toFloat(discount(d(base), d(pct)))
}

// SalePrice returns base minus its discount
func SalePrice(base, pct float64) float64 {
	b := d(base)
	return toFloat(b.Sub(discount(b, d(pct))))
}

// Savings returns base − sale
func Savings(base, sale float64) float64 {
	return toFloat(d(base).Sub(d(sale)))
}

// OrderTotal computes subtotal, discount on the subtotal and the final total.
// Each value is rounded to the nearest whole currency unit on its own, so
// Discount + Total may differ from Subtotal by one unit.
func OrderTotal(unitPrice, quantity, pct float64) Breakdown {
	subtotal := d(unitPrice).Mul(d(quantity))
	disc := discount(subtotal, d(pct))
	total := subtotal.Sub(disc)

	return Breakdown{
		Subtotal: toFloat(subtotal.Round(0)),
		Discount: toFloat(disc.Round(0)),
		Total:    toFloat(total.Round(0)),
	}
}

func discount(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func toFloat(v decimal.Decimal) float64 {
	f, _ := v.Float64()
	return f
}
