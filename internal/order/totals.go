package order

import "github.com/shopspring/decimal"

var (
	freeShippingAbove = decimal.NewFromInt(499)
	shippingFee       = decimal.RequireFromString("5.99")
	taxRate           = decimal.RequireFromString("0.08")
)

// Totals are kept in decimal and rounded to paise.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals charges shipping up to and including a 499 subtotal and
// taxes the subtotal at 8%.
func ComputeTotals(items []Item) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	subtotal = subtotal.Round(2)

	shipping := decimal.Zero
	if subtotal.IsPositive() && subtotal.LessThanOrEqual(freeShippingAbove) {
		shipping = shippingFee
	}
	tax := subtotal.Mul(taxRate).Round(2)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
