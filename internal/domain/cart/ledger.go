// internal/domain/cart/ledger.go
package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Validation failures are recoverable and reported as sentinel errors; the
// caller decides how to surface them. Nothing the ledger does is fatal.
var (
	ErrInvalidPromoCode = errors.New("invalid promo code")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrItemNotFound     = errors.New("cart item not found")
	ErrShippingNotFound = errors.New("shipping option not found")
)

// MissingIDPolicy is the single switch governing every unknown-id case in
// the ledger: quantity updates, removals and shipping selection.
type MissingIDPolicy int

const (
	// IgnoreMissing treats an unknown id as a silent no-op.
	IgnoreMissing MissingIDPolicy = iota
	// RejectMissing surfaces an unknown id as an explicit not-found error.
	RejectMissing
)

// Ledger owns a cart's line items and derives its totals. Every operation
// is a synchronous, atomic transition; there is no partial state observable
// between operations.
type Ledger struct {
	state  *State
	rates  Rates
	policy MissingIDPolicy
}

// NewLedger creates a ledger over fresh state.
func NewLedger(sessionID string, rates Rates, policy MissingIDPolicy) *Ledger {
	return &Ledger{
		state:  NewState(sessionID, rates.DefaultShippingID),
		rates:  rates,
		policy: policy,
	}
}

// Restore creates a ledger over previously persisted state.
func Restore(state *State, rates Rates, policy MissingIDPolicy) *Ledger {
	return &Ledger{state: state, rates: rates, policy: policy}
}

// State exposes the persisted form of the ledger for storage.
func (l *Ledger) State() *State {
	return l.state
}

// Items returns the line items in insertion order.
func (l *Ledger) Items() []LineItem {
	return l.state.Items
}

// Promo returns the currently applied promo code, if any.
func (l *Ledger) Promo() *PromoCode {
	return l.state.Promo
}

// ShippingOption returns the currently selected shipping tier, if its id is
// still known.
func (l *Ledger) ShippingOption() *ShippingOption {
	if opt, ok := l.rates.LookupShipping(l.state.ShippingID); ok {
		return &opt
	}
	return nil
}

// IsCheckingOut reports the checkout flag.
func (l *Ledger) IsCheckingOut() bool {
	return l.state.CheckingOut
}

// AddItemRequest carries everything needed to append a line item. Price and
// name are captured at add time so later catalog changes do not ripple into
// an open cart.
type AddItemRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	Color     string          `json:"color"`
	Material  string          `json:"material"`
}

// AddItem appends a line item, merging with an existing line when product
// and variant attributes match.
func (l *Ledger) AddItem(req AddItemRequest) (*LineItem, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	for i := range l.state.Items {
		it := &l.state.Items[i]
		if it.ProductID == req.ProductID && it.Color == req.Color && it.Material == req.Material {
			it.Quantity += req.Quantity
			l.touch()
			return it, nil
		}
	}

	item := LineItem{
		ID:        uuid.New().String(),
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Color:     req.Color,
		Material:  req.Material,
		AddedAt:   time.Now().UTC(),
	}
	l.state.Items = append(l.state.Items, item)
	l.touch()
	return &l.state.Items[len(l.state.Items)-1], nil
}

// UpdateQuantity replaces an item's quantity in place, preserving its
// position. A quantity below 1 is rejected and the item left unchanged; a
// decrement never removes the item.
func (l *Ledger) UpdateQuantity(itemID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	for i := range l.state.Items {
		if l.state.Items[i].ID == itemID {
			l.state.Items[i].Quantity = quantity
			l.touch()
			return nil
		}
	}
	return l.missing(ErrItemNotFound)
}

// RemoveItem deletes the matching item, keeping the remaining order intact.
func (l *Ledger) RemoveItem(itemID string) error {
	for i := range l.state.Items {
		if l.state.Items[i].ID == itemID {
			l.state.Items = append(l.state.Items[:i], l.state.Items[i+1:]...)
			l.touch()
			return nil
		}
	}
	return l.missing(ErrItemNotFound)
}

// Clear removes every line item.
func (l *Ledger) Clear() {
	l.state.Items = []LineItem{}
	l.touch()
}

// ApplyPromoCode looks the code up case-insensitively. On a miss the
// previously applied promo, if any, stays untouched and ErrInvalidPromoCode
// is returned as a recoverable validation result.
func (l *Ledger) ApplyPromoCode(code string) error {
	promo, ok := l.rates.LookupPromo(code)
	if !ok {
		return ErrInvalidPromoCode
	}
	l.state.Promo = &promo
	l.touch()
	return nil
}

// ClearPromoCode unsets the active promo unconditionally.
func (l *Ledger) ClearPromoCode() {
	l.state.Promo = nil
	l.touch()
}

// SelectShipping sets the selected tier when the id is known; unknown ids
// follow the missing-id policy.
func (l *Ledger) SelectShipping(optionID string) error {
	if _, ok := l.rates.LookupShipping(optionID); !ok {
		return l.missing(ErrShippingNotFound)
	}
	l.state.ShippingID = optionID
	l.touch()
	return nil
}

// BeginCheckout marks the cart as checking out. The flag has no externally
// visible effect; payment is outside this service.
func (l *Ledger) BeginCheckout() {
	l.state.CheckingOut = true
	l.touch()
}

// CancelCheckout clears the checkout flag.
func (l *Ledger) CancelCheckout() {
	l.state.CheckingOut = false
	l.touch()
}

// Totals derives the cart summary from scratch. The derivation is pure and
// side-effect-free: calling it any number of times with unchanged state
// yields identical output.
//
// Money is rounded half-up to 2 decimals at this boundary, with the total
// computed from unrounded intermediates first. The discount is deliberately
// not capped to the subtotal, but the total is clamped at zero so a large
// fixed promo can never drive it negative.
func (l *Ledger) Totals() Totals {
	subtotal := decimal.Zero
	for _, item := range l.state.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := decimal.Zero
	if opt, ok := l.rates.LookupShipping(l.state.ShippingID); ok {
		shipping = opt.Price
		if opt.ID == l.rates.DefaultShippingID &&
			l.rates.FreeShippingOver.IsPositive() &&
			subtotal.GreaterThanOrEqual(l.rates.FreeShippingOver) {
			shipping = decimal.Zero
		}
	}

	discount := decimal.Zero
	if p := l.state.Promo; p != nil {
		switch p.Type {
		case DiscountPercentage:
			discount = subtotal.Mul(p.Discount).Div(decimal.NewFromInt(100))
		case DiscountFixed:
			discount = p.Discount
		}
	}

	total := subtotal.Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:     subtotal.Round(2),
		ShippingCost: shipping.Round(2),
		Discount:     discount.Round(2),
		Total:        total.Round(2),
	}
}

func (l *Ledger) touch() {
	l.state.UpdatedAt = time.Now().UTC()
}

// missing applies the ledger's policy to a not-found condition.
func (l *Ledger) missing(err error) error {
	if l.policy == RejectMissing {
		return err
	}
	return nil
}
