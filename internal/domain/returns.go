package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Return-related domain errors.
var (
	ErrReturnNotFound         = &Error{Code: ENOTFOUND, Message: "Return not found"}
	ErrReturnAlreadyDecided   = &Error{Code: ECONFLICT, Message: "Return has already been decided"}
	ErrOrderNotReturnable     = &Error{Code: EINVALID, Message: "Only delivered orders can be returned"}
	ErrExceedsOrderedQuantity = &Error{Code: EINVALID, Message: "Return quantity exceeds ordered quantity"}
)

// ReturnStatus represents the review state of a return request.
type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "pending"
	ReturnStatusApproved ReturnStatus = "approved"
	ReturnStatusRejected ReturnStatus = "rejected"
)

// Return is a customer request to send back items from a delivered order.
type Return struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	Status      ReturnStatus
	Reason      string
	RequestedAt time.Time
	DecidedAt   *time.Time
}

// ReturnItem is a single order item line within a return request.
// Quantity never exceeds the quantity originally ordered.
type ReturnItem struct {
	ID          uuid.UUID
	ReturnID    uuid.UUID
	OrderItemID uuid.UUID
	Quantity    int32
	Reason      string
}

// ReturnDetail aggregates a return with its item lines.
type ReturnDetail struct {
	Return Return
	Items  []ReturnItem
}

// Refund records the amount credited for an approved return. Exactly one
// refund exists per approved return.
type Refund struct {
	ID         uuid.UUID
	ReturnID   uuid.UUID
	Amount     decimal.Decimal
	RefundedAt time.Time
}

// RequestReturnItem is one line of an incoming return request.
type RequestReturnItem struct {
	OrderItemID uuid.UUID `json:"order_item_id" validate:"required"`
	Quantity    int32     `json:"quantity" validate:"required,gt=0"`
	Reason      string    `json:"reason"`
}
