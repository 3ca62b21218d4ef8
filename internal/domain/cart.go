package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart-related domain errors.
var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartExists       = &Error{Code: ECONFLICT, Message: "An open cart already exists for this user"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrEmptyCart        = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// CartStatus represents the lifecycle state of a cart.
type CartStatus string

const (
	CartStatusOpen       CartStatus = "open"
	CartStatusCheckedOut CartStatus = "checked_out"
)

// Cart is a server-owned shopping cart. A user has at most one open cart;
// checked out carts are kept for history.
type Cart struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Status    CartStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is a single product line in a cart. A cart holds at most one
// line per product; adding the same product again increases the quantity.
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
}

// CartLine is a cart item joined with current product details for display.
// UnitPrice is the live catalog price, not a snapshot.
type CartLine struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int32
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// CartSummary aggregates a cart with its lines and a running subtotal.
type CartSummary struct {
	Cart     Cart
	Lines    []CartLine
	Subtotal decimal.Decimal
}

// GuestCartItem is a client-held cart line submitted at login for merging.
type GuestCartItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int32     `json:"quantity" validate:"required,gt=0"`
}
