package service

import (
	"github.com/2063ti/flugede-gadgets-store/internal/models"

	"github.com/shopspring/decimal"
)

// taxRate is the 18% GST applied to every order.
var taxRate = decimal.NewFromFloat(0.18)

// freeShippingThreshold and flatShippingFee implement the 500/50 shipping
// rule: orders at or above the threshold ship free.
var (
	freeShippingThreshold = decimal.NewFromInt(500)
	flatShippingFee       = decimal.NewFromInt(50)
)

// PricingLine is one cart line feeding the totals computation.
type PricingLine struct {
	UnitPrice models.Money
	Quantity  int
}

// OrderTotals is the complete pricing snapshot for an order.
type OrderTotals struct {
	Subtotal models.Money `json:"subtotal"`
	Tax      models.Money `json:"tax"`
	Shipping models.Money `json:"shipping"`
	Discount models.Money `json:"discount"`
	Total    models.Money `json:"total"`
}

// ComputeSubtotal sums the rounded line totals.
func ComputeSubtotal(lines []PricingLine) models.Money {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		subtotal = subtotal.Add(lineTotal)
	}
	return models.NewMoneyFromDecimal(subtotal)
}

// ComputeTotals derives tax, shipping and the final total from a subtotal and
// an already-validated discount. The total never goes below zero.
func ComputeTotals(subtotal, discount models.Money) OrderTotals {
	sub := subtotal.Round(2)

	tax := decimal.Zero
	shipping := decimal.Zero
	if sub.GreaterThan(decimal.Zero) {
		tax = sub.Mul(taxRate).Round(2)
		if sub.LessThan(freeShippingThreshold) {
			shipping = flatShippingFee
		}
	}

	disc := discount.Round(2)
	if disc.LessThan(decimal.Zero) {
		disc = decimal.Zero
	}

	total := sub.Add(tax).Add(shipping).Sub(disc)
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}

	return OrderTotals{
		Subtotal: models.NewMoneyFromDecimal(sub),
		Tax:      models.NewMoneyFromDecimal(tax),
		Shipping: models.NewMoneyFromDecimal(shipping),
		Discount: models.NewMoneyFromDecimal(disc),
		Total:    models.NewMoneyFromDecimal(total),
	}
}

// AmountMinorUnits converts a total into integer minor units (paise) for the
// payment gateway.
func AmountMinorUnits(total models.Money) int64 {
	return total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
