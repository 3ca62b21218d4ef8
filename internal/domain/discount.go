package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrSaleEventNotFound is returned when a sale event does not exist.
var ErrSaleEventNotFound = &Error{Code: ENOTFOUND, Message: "Sale event not found"}

// SaleEvent is a time-bounded percentage discount. It targets either a
// single product, a whole category, or everything when both targets are nil.
type SaleEvent struct {
	ID         uuid.UUID
	Name       string
	PercentOff decimal.Decimal
	ProductID  *uuid.UUID
	CategoryID *uuid.UUID
	StartsAt   time.Time
	EndsAt     time.Time
}

// ActiveAt reports whether the event is running at the given instant.
func (e SaleEvent) ActiveAt(t time.Time) bool {
	return !t.Before(e.StartsAt) && !t.After(e.EndsAt)
}

// AppliesTo reports whether the event discounts the given product.
func (e SaleEvent) AppliesTo(p Product) bool {
	if e.ProductID != nil {
		return *e.ProductID == p.ID
	}
	if e.CategoryID != nil {
		return *e.CategoryID == p.CategoryID
	}
	return true
}

// CreateSaleEventParams contains the fields required to create a sale event.
type CreateSaleEventParams struct {
	Name       string
	PercentOff decimal.Decimal
	ProductID  *uuid.UUID
	CategoryID *uuid.UUID
	StartsAt   time.Time
	EndsAt     time.Time
}
