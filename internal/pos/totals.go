package pos

import (
	"github.com/shopspring/decimal"

	"restaurant-pos/internal/database/models"
)

var hundred = decimal.NewFromInt(100)

// round2 rounds half away from zero to cents; money here is never negative,
// so this is round-half-up.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RecalcTotals returns cart with subtotal, tax and total derived from its lines.
// Tax and total are rounded independently; the subtotal is exact.
func RecalcTotals(cart models.Cart, taxRatePercent decimal.Decimal) models.Cart {
	subtotal := decimal.Zero
	for _, line := range cart.Items {
		subtotal = subtotal.Add(line.LineTotal())
	}

	tax := round2(subtotal.Mul(taxRatePercent).Div(hundred))

	cart.Subtotal = subtotal
	cart.Tax = tax
	cart.Total = round2(subtotal.Add(tax))
	return cart
}
