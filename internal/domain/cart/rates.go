// internal/domain/cart/rates.go
package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rates bundles the static promo and shipping tables a ledger consults.
// They are injected rather than referenced globally so a real promotion
// backend can be substituted without touching the ledger logic.
type Rates struct {
	Promos            []PromoCode
	Shipping          []ShippingOption
	DefaultShippingID string

	// FreeShippingOver zeroes the default tier's cost once the subtotal
	// reaches the threshold. A zero value disables the rule.
	FreeShippingOver decimal.Decimal
}

// LookupPromo finds a promo by case-insensitive exact match.
func (r Rates) LookupPromo(code string) (PromoCode, bool) {
	for _, p := range r.Promos {
		if strings.EqualFold(p.Code, code) {
			return p, true
		}
	}
	return PromoCode{}, false
}

// LookupShipping finds a shipping tier by id.
func (r Rates) LookupShipping(id string) (ShippingOption, bool) {
	for _, opt := range r.Shipping {
		if opt.ID == id {
			return opt, true
		}
	}
	return ShippingOption{}, false
}

// DefaultRates returns the storefront's built-in promo codes and shipping
// tiers. Standard shipping is the designated default and becomes free on
// orders of 500.00 or more.
func DefaultRates() Rates {
	return Rates{
		Promos: []PromoCode{
			{Code: "DREAM10", Discount: decimal.NewFromInt(10), Type: DiscountPercentage},
			{Code: "ETHEREAL20", Discount: decimal.NewFromInt(20), Type: DiscountPercentage},
			{Code: "MYSTIC25", Discount: decimal.NewFromInt(25), Type: DiscountFixed},
		},
		Shipping: []ShippingOption{
			{
				ID:            "standard",
				Name:          "Standard Shipping",
				Price:         decimal.RequireFromString("15.99"),
				EstimatedDays: "5-7 business days",
			},
			{
				ID:            "express",
				Name:          "Express Shipping",
				Price:         decimal.RequireFromString("29.99"),
				EstimatedDays: "2-3 business days",
			},
			{
				ID:            "overnight",
				Name:          "Overnight Shipping",
				Price:         decimal.RequireFromString("49.99"),
				EstimatedDays: "Next business day",
			},
		},
		DefaultShippingID: "standard",
		FreeShippingOver:  decimal.RequireFromString("500.00"),
	}
}
