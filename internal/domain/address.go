package domain

import (
	"time"

	"github.com/google/uuid"
)

// Address and payment-related domain errors.
var (
	ErrAddressNotFound       = &Error{Code: ENOTFOUND, Message: "Address not found"}
	ErrPaymentMethodNotFound = &Error{Code: ENOTFOUND, Message: "Payment method not found"}
	ErrDuplicateCard         = &Error{Code: ECONFLICT, Message: "This card is already on file"}
)

// Address is a shipping or billing address. Addresses are immutable once
// created; editing an address on an order means creating a new row.
type Address struct {
	ID         uuid.UUID
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	CreatedAt  time.Time
}

// CreateAddressParams contains the fields required to create an address.
type CreateAddressParams struct {
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

// PaymentMethod is a stored card reference belonging to a user.
// Card numbers are unique across the system.
type PaymentMethod struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	CardNumber       string
	ExpirationDate   string
	CVV              string
	BillingAddressID uuid.UUID
	CreatedAt        time.Time
}
