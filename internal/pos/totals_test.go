package pos

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"restaurant-pos/internal/database/models"
)

func TestRecalcTotals(t *testing.T) {
	tests := []struct {
		name     string
		lines    []models.CartLine
		rate     string
		subtotal string
		tax      string
		total    string
	}{
		{
			name:     "empty cart",
			rate:     "0",
			subtotal: "0.00", tax: "0.00", total: "0.00",
		},
		{
			name: "no tax",
			lines: []models.CartLine{
				{ItemID: "a", Qty: 2, Price: money("20")},
				{ItemID: "b", Qty: 1, Price: money("35")},
			},
			rate:     "0",
			subtotal: "75.00", tax: "0.00", total: "75.00",
		},
		{
			name:     "five percent",
			lines:    []models.CartLine{{ItemID: "a", Qty: 1, Price: money("45")}},
			rate:     "5",
			subtotal: "45.00", tax: "2.25", total: "47.25",
		},
		{
			name:     "half cent rounds up",
			lines:    []models.CartLine{{ItemID: "a", Qty: 1, Price: money("15")}},
			rate:     "7.5",
			subtotal: "15.00", tax: "1.13", total: "16.13",
		},
		{
			name: "fractional prices add without drift",
			lines: []models.CartLine{
				{ItemID: "a", Qty: 3, Price: money("0.10")},
				{ItemID: "b", Qty: 1, Price: money("0.20")},
			},
			rate:     "0",
			subtotal: "0.50", tax: "0.00", total: "0.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := models.EmptyCart()
			cart.Items = tt.lines
			got := RecalcTotals(cart, decimal.RequireFromString(tt.rate))

			assertMoney(t, tt.subtotal, got.Subtotal)
			assertMoney(t, tt.tax, got.Tax)
			assertMoney(t, tt.total, got.Total)
		})
	}
}

func TestRecalcTotals_RandomCarts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		cart := models.EmptyCart()
		var subtotalCents int64
		for n := 1 + rng.Intn(6); n > 0; n-- {
			cents := int64(rng.Intn(100000))
			qty := 1 + rng.Intn(20)
			cart.Items = append(cart.Items, models.CartLine{
				ItemID: fmt.Sprintf("item-%d", n),
				Qty:    qty,
				Price:  decimal.New(cents, -2),
			})
			subtotalCents += cents * int64(qty)
		}
		rateTenths := int64(rng.Intn(300))
		rate := decimal.New(rateTenths, -1)

		got := RecalcTotals(cart, rate)

		subtotal := decimal.New(subtotalCents, -2)
		tax := decimal.New(subtotalCents*rateTenths, -5).Round(2)
		msg := fmt.Sprintf("cart %d: rate %s, lines %v", i, rate, cart.Items)

		assert.True(t, got.Subtotal.Equal(subtotal), msg)
		assert.True(t, got.Tax.Equal(tax), msg)
		assert.True(t, got.Total.Equal(subtotal.Add(tax).Round(2)), msg)
		assert.True(t, got.Tax.Equal(got.Tax.Round(2)), msg)
		assert.True(t, got.Total.Equal(got.Total.Round(2)), msg)
		assert.Equal(t, cart.Items, got.Items, msg)
	}
}
