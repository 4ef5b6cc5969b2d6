package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func discountOf(v int64) *Money {
	m := NewMoneyFromDecimal(decimal.NewFromInt(v))
	return &m
}

func TestFinalPrice(t *testing.T) {
	cases := []struct {
		name     string
		price    int64
		discount *Money
		want     string
	}{
		{name: "no discount", price: 100, discount: nil, want: "100.00"},
		{name: "discount below list", price: 100, discount: discountOf(80), want: "80.00"},
		{name: "discount equals list", price: 100, discount: discountOf(100), want: "100.00"},
		{name: "discount above list ignored", price: 100, discount: discountOf(150), want: "100.00"},
		{name: "zero discount ignored", price: 100, discount: discountOf(0), want: "100.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{
				Price:         NewMoneyFromDecimal(decimal.NewFromInt(tc.price)),
				DiscountPrice: tc.discount,
			}
			if got := p.FinalPrice(); got.String() != tc.want {
				t.Fatalf("final price want %s got %s", tc.want, got.String())
			}
		})
	}
}

func TestDiscountPercentage(t *testing.T) {
	p := Product{
		Price:         NewMoneyFromDecimal(decimal.NewFromInt(200)),
		DiscountPrice: discountOf(150),
	}
	if got := p.DiscountPercentage(); got != 25 {
		t.Fatalf("discount percentage want 25 got %d", got)
	}

	p.DiscountPrice = discountOf(250)
	if got := p.DiscountPercentage(); got != 0 {
		t.Fatalf("discount above list should report 0, got %d", got)
	}
}
