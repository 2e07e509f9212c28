// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereal-designs/storefront-backend/internal/config"
	"github.com/ethereal-designs/storefront-backend/internal/domain/catalog"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Service keys one cart ledger per storefront session and persists its
// state in Redis as JSON with a TTL. Within a session every operation is a
// single synchronous mutation followed by a save, so no observable
// intermediate state exists.
type Service struct {
	redisClient *redis.Client
	catalog     catalog.Repository
	rates       Rates
	policy      MissingIDPolicy
	config      *config.Config
}

// NewService creates a new cart service
func NewService(redisClient *redis.Client, catalogRepo catalog.Repository, rates Rates, cfg *config.Config) *Service {
	policy := IgnoreMissing
	if cfg.Cart.StrictIDs {
		policy = RejectMissing
	}
	if override, err := decimal.NewFromString(cfg.Cart.FreeShippingOver); err == nil {
		rates.FreeShippingOver = override
	}
	return &Service{
		redisClient: redisClient,
		catalog:     catalogRepo,
		rates:       rates,
		policy:      policy,
		config:      cfg,
	}
}

// Response represents a cart with its derived summary.
type Response struct {
	SessionID      string          `json:"session_id"`
	Items          []LineItem      `json:"items"`
	Promo          *PromoCode      `json:"promo,omitempty"`
	ShippingOption *ShippingOption `json:"shipping_option,omitempty"`
	Totals         Totals          `json:"totals"`
	CheckingOut    bool            `json:"checking_out"`
}

// AddRequest represents an add-to-cart request from the presentation layer.
type AddRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Color     string `json:"color"`
	Material  string `json:"material"`
}

// UpdateRequest represents a quantity update request. The quantity is not
// range-checked at the binding layer; the ledger decides whether an
// out-of-range value is a rejection.
type UpdateRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart retrieves the session's cart, creating an empty one on first use.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*Response, error) {
	ledger, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.respond(ledger), nil
}

// AddItem validates the product against the catalog and appends it to the
// session's cart, capturing the catalog price at add time.
func (s *Service) AddItem(ctx context.Context, sessionID string, req *AddRequest) (*Response, error) {
	product, err := s.catalog.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	ledger, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := ledger.AddItem(AddItemRequest{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  req.Quantity,
		Color:     req.Color,
		Material:  req.Material,
	}); err != nil {
		return nil, err
	}

	return s.commit(ctx, ledger)
}

// UpdateQuantity replaces a line item's quantity.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*Response, error) {
	return s.mutate(ctx, sessionID, func(l *Ledger) error {
		return l.UpdateQuantity(itemID, quantity)
	})
}

// RemoveItem deletes a line item.
func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (*Response, error) {
	return s.mutate(ctx, sessionID, func(l *Ledger) error {
		return l.RemoveItem(itemID)
	})
}

// ClearCart removes all items from the session's cart.
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	cartKey := s.key(sessionID)
	return s.redisClient.Del(ctx, cartKey).Err()
}

// ApplyPromo applies a promo code to the session's cart.
func (s *Service) ApplyPromo(ctx context.Context, sessionID, code string) (*Response, error) {
	return s.mutate(ctx, sessionID, func(l *Ledger) error {
		return l.ApplyPromoCode(code)
	})
}

// ClearPromo removes any applied promo code.
func (s *Service) ClearPromo(ctx context.Context, sessionID string) (*Response, error) {
	return s.mutate(ctx, sessionID, func(l *Ledger) error {
		l.ClearPromoCode()
		return nil
	})
}

// SelectShipping selects a shipping tier for the session's cart.
func (s *Service) SelectShipping(ctx context.Context, sessionID, optionID string) (*Response, error) {
	return s.mutate(ctx, sessionID, func(l *Ledger) error {
		return l.SelectShipping(optionID)
	})
}

// BeginCheckout marks the session's cart as checking out.
func (s *Service) BeginCheckout(ctx context.Context, sessionID string) (*Response, error) {
	return s.mutate(ctx, sessionID, func(l *Ledger) error {
		l.BeginCheckout()
		return nil
	})
}

// CancelCheckout clears the checkout flag.
func (s *Service) CancelCheckout(ctx context.Context, sessionID string) (*Response, error) {
	return s.mutate(ctx, sessionID, func(l *Ledger) error {
		l.CancelCheckout()
		return nil
	})
}

// ShippingOptions returns the available shipping tiers.
func (s *Service) ShippingOptions() []ShippingOption {
	return s.rates.Shipping
}

// Private helper methods

func (s *Service) mutate(ctx context.Context, sessionID string, op func(*Ledger) error) (*Response, error) {
	ledger, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := op(ledger); err != nil {
		return nil, err
	}
	return s.commit(ctx, ledger)
}

func (s *Service) commit(ctx context.Context, ledger *Ledger) (*Response, error) {
	if err := s.save(ctx, ledger.State()); err != nil {
		return nil, err
	}
	return s.respond(ledger), nil
}

func (s *Service) respond(ledger *Ledger) *Response {
	return &Response{
		SessionID:      ledger.State().SessionID,
		Items:          ledger.Items(),
		Promo:          ledger.Promo(),
		ShippingOption: ledger.ShippingOption(),
		Totals:         ledger.Totals(),
		CheckingOut:    ledger.IsCheckingOut(),
	}
}

func (s *Service) load(ctx context.Context, sessionID string) (*Ledger, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for cart")
	}

	data, err := s.redisClient.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return NewLedger(sessionID, s.rates, s.policy), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart session: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to decode cart session: %w", err)
	}
	return Restore(&state, s.rates, s.policy), nil
}

func (s *Service) save(ctx context.Context, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.redisClient.Set(ctx, s.key(state.SessionID), data, s.config.Cart.SessionTTL).Err()
}

func (s *Service) key(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}
