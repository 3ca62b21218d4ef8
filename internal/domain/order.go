package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order-related domain errors.
var (
	ErrOrderNotFound     = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrInsufficientStock = &Error{Code: ECONFLICT, Message: "Insufficient stock for one or more items"}
	ErrInvalidTransition = &Error{Code: EINVALID, Message: "Invalid order status transition"}
)

// OrderStatus represents the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusReturned  OrderStatus = "returned"
)

// orderTransitions is the set of legal status changes. Cancelled and
// returned are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {OrderStatusReturned},
	OrderStatusCancelled: {},
	OrderStatusReturned:  {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from s to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Order is a placed order. Monetary fields are computed once at placement
// and never recalculated.
type Order struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	ShippingAddressID uuid.UUID
	PaymentMethodID   *uuid.UUID
	Status            OrderStatus
	OrderDate         time.Time
	ShippingCost      decimal.Decimal
	DiscountTotal     decimal.Decimal
	TaxTotal          decimal.Decimal
	TotalAmount       decimal.Decimal
}

// OrderItem is an immutable snapshot of a purchased product line.
// UnitPrice is the catalog price at the moment the order was placed.
type OrderItem struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	ProductID      uuid.UUID
	Quantity       int32
	UnitPrice      decimal.Decimal
	TotalItemPrice decimal.Decimal
}

// OrderDetail aggregates an order with its item snapshots.
type OrderDetail struct {
	Order Order
	Items []OrderItem
}
