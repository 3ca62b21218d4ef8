package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jswan/mercantile/internal/domain"
	"github.com/jswan/mercantile/internal/tax"
)

// OrderService handles order placement and fulfillment status changes.
type OrderService struct {
	store        Store
	taxes        tax.Calculator
	shippingCost decimal.Decimal
}

// NewOrderService creates a new order service. shippingCost is the flat
// per-order shipping charge; it is never taxed.
func NewOrderService(store Store, taxes tax.Calculator, shippingCost decimal.Decimal) *OrderService {
	return &OrderService{
		store:        store,
		taxes:        taxes,
		shippingCost: shippingCost,
	}
}

// PlaceOrder converts the user's open cart into an order. In one
// transaction it snapshots current prices into order items, computes totals
// with active sale events applied before tax, decrements stock for every
// line, and closes the cart. Any failure, including insufficient stock on a
// single line, rolls the whole order back.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, shippingAddressID uuid.UUID, paymentMethodID *uuid.UUID) (*domain.OrderDetail, error) {
	if _, err := s.store.GetAddress(ctx, shippingAddressID); err != nil {
		return nil, err
	}

	if paymentMethodID != nil {
		pm, err := s.store.GetPaymentMethod(ctx, *paymentMethodID)
		if err != nil {
			return nil, err
		}
		if pm.UserID != userID {
			return nil, domain.Forbidden("order.place", "payment method belongs to another user")
		}
	}

	var detail *domain.OrderDetail
	err := s.store.WithinTx(ctx, func(tx Store) error {
		cart, err := tx.GetOpenCartByUser(ctx, userID)
		if err != nil {
			return err
		}

		lines, err := tx.ListCartLines(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		now := time.Now()
		events, err := tx.ListActiveSaleEvents(ctx, now)
		if err != nil {
			return err
		}

		products := make([]domain.Product, len(lines))
		pricing := make([]domain.PricingLine, len(lines))
		for i, line := range lines {
			p, err := tx.GetProduct(ctx, line.ProductID)
			if err != nil {
				return err
			}
			products[i] = *p
			pricing[i] = domain.PricingLine{Product: *p, Quantity: line.Quantity}
		}

		totals := domain.PriceOrder(pricing, events, now, s.taxes.Tax, s.shippingCost)

		order := &domain.Order{
			UserID:            userID,
			ShippingAddressID: shippingAddressID,
			PaymentMethodID:   paymentMethodID,
			Status:            domain.OrderStatusPending,
			ShippingCost:      totals.Shipping,
			DiscountTotal:     totals.Discount,
			TaxTotal:          totals.Tax,
			TotalAmount:       totals.Total,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		items := make([]domain.OrderItem, len(lines))
		for i, line := range lines {
			item := domain.OrderItem{
				OrderID:        order.ID,
				ProductID:      line.ProductID,
				Quantity:       line.Quantity,
				UnitPrice:      products[i].Price,
				TotalItemPrice: products[i].Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
			}
			if err := tx.CreateOrderItem(ctx, &item); err != nil {
				return err
			}
			if err := tx.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
			items[i] = item
		}

		if err := tx.MarkCartCheckedOut(ctx, cart.ID); err != nil {
			return err
		}
		if err := tx.ClearCartItems(ctx, cart.ID); err != nil {
			return err
		}
		if err := tx.AppendActivity(ctx, userID, domain.ActivityOrderPlaced, "order", order.ID); err != nil {
			return err
		}

		detail = &domain.OrderDetail{Order: *order, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// UpdateStatus moves an order along its fulfillment lifecycle. Illegal
// transitions are rejected with domain.ErrInvalidTransition.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, orderID uuid.UUID, next domain.OrderStatus) (*domain.Order, error) {
	if !next.Valid() {
		return nil, domain.Invalid("order.update_status", "unknown order status: "+string(next))
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransition(next) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, order.Status, next); err != nil {
		return nil, err
	}
	if err := s.store.AppendActivity(ctx, actorID, domain.ActivityOrderStatus, "order", orderID); err != nil {
		return nil, err
	}

	order.Status = next
	return order, nil
}

// GetOrder returns an order with its item snapshots. Customers may only see
// their own orders; staff may see any.
func (s *OrderService) GetOrder(ctx context.Context, requester *domain.User, orderID uuid.UUID) (*domain.OrderDetail, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !requester.IsStaff() && order.UserID != requester.ID {
		return nil, domain.ErrOrderNotFound
	}

	items, err := s.store.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &domain.OrderDetail{Order: *order, Items: items}, nil
}

// ListOrders returns the user's order history, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return s.store.ListOrdersByUser(ctx, userID)
}
