// internal/pricing/summary.go
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/javajoker/stylehub/internal/models"
)

var (
	// FreeShippingThreshold is the subtotal that must be exceeded for free shipping.
	FreeShippingThreshold = decimal.NewFromInt(5000)
	// ShippingFee is charged when the subtotal does not exceed the threshold.
	ShippingFee = decimal.NewFromInt(250)
	// TaxRate applies to the subtotal.
	TaxRate = decimal.RequireFromString("0.05")
)

// Compute derives the order summary for the given items. It has no side
// effects and never caches.
func Compute(items []models.CartItem) models.OrderSummary {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	shipping := ShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(TaxRate)
	total := subtotal.Add(shipping).Add(tax)

	return models.OrderSummary{
		Subtotal: subtotal.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

// Equal compares two summaries to the cent.
func Equal(a, b models.OrderSummary) bool {
	same := func(x, y float64) bool {
		return decimal.NewFromFloat(x).Round(2).Equal(decimal.NewFromFloat(y).Round(2))
	}
	return same(a.Subtotal, b.Subtotal) &&
		same(a.Shipping, b.Shipping) &&
		same(a.Tax, b.Tax) &&
		same(a.Total, b.Total)
}
