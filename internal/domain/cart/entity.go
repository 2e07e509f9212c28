// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem represents one product entry in the cart with its own quantity
// and variant selection. Quantity is always >= 1; an update below that is
// rejected rather than applied or treated as a removal.
type LineItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"` // price at time of adding
	Quantity  int             `json:"quantity"`
	Color     string          `json:"color,omitempty"`
	Material  string          `json:"material,omitempty"`
	AddedAt   time.Time       `json:"added_at"`
}

// PromoDiscountType distinguishes percentage promos from fixed-amount ones.
type PromoDiscountType string

const (
	DiscountPercentage PromoDiscountType = "percentage"
	DiscountFixed      PromoDiscountType = "fixed"
)

// PromoCode represents a discount token. Codes are matched case-insensitively
// and at most one promo is active on a cart at a time.
type PromoCode struct {
	Code     string            `json:"code"`
	Discount decimal.Decimal   `json:"discount"` // percentage points or flat amount
	Type     PromoDiscountType `json:"type"`
}

// ShippingOption represents a named shipping speed/price tier. Exactly one
// tier is selected per cart.
type ShippingOption struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	EstimatedDays string          `json:"estimated_days"`
}

// Totals represents the derived cart summary. Every field is recomputed from
// scratch on each derivation; nothing is cached incrementally.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
}

// State is the persisted form of a cart ledger: the ordered line items
// (insertion order, relevant for display), the applied promo if any, the
// selected shipping tier and the checkout flag. It round-trips through JSON
// for Redis session storage.
type State struct {
	SessionID   string     `json:"session_id"`
	Items       []LineItem `json:"items"`
	Promo       *PromoCode `json:"promo,omitempty"`
	ShippingID  string     `json:"shipping_id"`
	CheckingOut bool       `json:"checking_out"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewState creates an empty cart state with the default shipping tier
// selected.
func NewState(sessionID, defaultShippingID string) *State {
	now := time.Now().UTC()
	return &State{
		SessionID:  sessionID,
		Items:      []LineItem{},
		ShippingID: defaultShippingID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
