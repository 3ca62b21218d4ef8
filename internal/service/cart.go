package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jswan/mercantile/internal/domain"
)

// CartService manages server-owned shopping carts.
type CartService struct {
	store Store
}

// NewCartService creates a new cart service.
func NewCartService(store Store) *CartService {
	return &CartService{store: store}
}

// CreateCart opens a cart for the user. Returns domain.ErrCartExists if the
// user already has one open.
func (s *CartService) CreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	return s.store.CreateCart(ctx, userID)
}

// AddItem puts quantity units of a product into the user's open cart.
// Returns domain.ErrCartNotFound when the user has none; carts are opened
// explicitly through CreateCart. Adding a product already in the cart
// increases the line quantity. Stock is not checked here; availability is
// enforced at order placement.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*domain.CartSummary, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	// Product must exist before it can be carted.
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.store.GetOpenCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpsertCartItem(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}

	return s.summarize(ctx, cart)
}

// RemoveItem deletes the product's line from the user's open cart. Removing
// a product that is not in the cart is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*domain.CartSummary, error) {
	cart, err := s.store.GetOpenCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.RemoveCartItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}

	return s.summarize(ctx, cart)
}

// GetCart returns the user's open cart with lines and a running subtotal
// computed from live catalog prices.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*domain.CartSummary, error) {
	cart, err := s.store.GetOpenCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, cart)
}

// MergeGuestCart folds a client-held guest cart into the user's server-side
// cart in one transaction. Quantities for products present on both sides are
// summed into a single line. Partial merges never happen: one bad line
// aborts the whole merge.
func (s *CartService) MergeGuestCart(ctx context.Context, userID uuid.UUID, items []domain.GuestCartItem) (*domain.CartSummary, error) {
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	var cart *domain.Cart
	err := s.store.WithinTx(ctx, func(tx Store) error {
		var err error
		cart, err = tx.GetOpenCartByUser(ctx, userID)
		if errors.Is(err, domain.ErrCartNotFound) {
			cart, err = tx.CreateCart(ctx, userID)
		}
		if err != nil {
			return err
		}

		for _, item := range items {
			if _, err := tx.GetProduct(ctx, item.ProductID); err != nil {
				return err
			}
			if err := tx.UpsertCartItem(ctx, cart.ID, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.summarize(ctx, cart)
}

func (s *CartService) summarize(ctx context.Context, cart *domain.Cart) (*domain.CartSummary, error) {
	lines, err := s.store.ListCartLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal)
	}

	return &domain.CartSummary{
		Cart:     *cart,
		Lines:    lines,
		Subtotal: subtotal,
	}, nil
}
