package service

import (
	"testing"

	"github.com/2063ti/flugede-gadgets-store/internal/models"

	"github.com/shopspring/decimal"
)

func money(v float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
}

func TestComputeSubtotal(t *testing.T) {
	lines := []PricingLine{
		{UnitPrice: money(199.99), Quantity: 2},
		{UnitPrice: money(50), Quantity: 1},
		{UnitPrice: money(10), Quantity: 0},
	}
	got := ComputeSubtotal(lines)
	if got.String() != "449.98" {
		t.Fatalf("subtotal want 449.98 got %s", got.String())
	}
}

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name     string
		subtotal float64
		discount float64
		tax      string
		shipping string
		total    string
	}{
		{name: "above free shipping", subtotal: 600, discount: 0, tax: "108.00", shipping: "0.00", total: "708.00"},
		{name: "at threshold", subtotal: 500, discount: 0, tax: "90.00", shipping: "0.00", total: "590.00"},
		{name: "below threshold", subtotal: 499, discount: 0, tax: "89.82", shipping: "50.00", total: "638.82"},
		{name: "with discount", subtotal: 1000, discount: 200, tax: "180.00", shipping: "0.00", total: "980.00"},
		{name: "discount exceeds charges", subtotal: 100, discount: 5000, tax: "18.00", shipping: "50.00", total: "0.00"},
		{name: "empty cart", subtotal: 0, discount: 0, tax: "0.00", shipping: "0.00", total: "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := ComputeTotals(money(tc.subtotal), money(tc.discount))
			if totals.Tax.String() != tc.tax {
				t.Fatalf("tax want %s got %s", tc.tax, totals.Tax.String())
			}
			if totals.Shipping.String() != tc.shipping {
				t.Fatalf("shipping want %s got %s", tc.shipping, totals.Shipping.String())
			}
			if totals.Total.String() != tc.total {
				t.Fatalf("total want %s got %s", tc.total, totals.Total.String())
			}
		})
	}
}

func TestComputeTotalsRoundsTax(t *testing.T) {
	// 99.99 * 0.18 = 17.9982 which rounds to 18.00
	totals := ComputeTotals(money(99.99), money(0))
	if totals.Tax.String() != "18.00" {
		t.Fatalf("tax want 18.00 got %s", totals.Tax.String())
	}
}

func TestAmountMinorUnits(t *testing.T) {
	if got := AmountMinorUnits(money(708)); got != 70800 {
		t.Fatalf("minor units want 70800 got %d", got)
	}
	if got := AmountMinorUnits(money(638.82)); got != 63882 {
		t.Fatalf("minor units want 63882 got %d", got)
	}
}
