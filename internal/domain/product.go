package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Catalog-related domain errors.
var (
	ErrProductNotFound  = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrCategoryNotFound = &Error{Code: ENOTFOUND, Message: "Category not found"}
)

// Category groups products by department.
// Sex is the department code: "M" (men), "F" (women), or "K" (kids).
type Category struct {
	ID   uuid.UUID
	Name string
	Sex  string
}

// Product represents a catalog item with its live inventory count.
type Product struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description string

	// Apparel attributes
	Size  string
	Color string
	Brand string

	ImageURL string
	Price    decimal.Decimal

	// Inventory
	StockQuantity    int32
	ReorderThreshold int32

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LowStock reports whether the product is at or below its reorder threshold.
func (p Product) LowStock() bool {
	return p.StockQuantity <= p.ReorderThreshold
}

// CreateProductParams contains the fields required to create a product.
type CreateProductParams struct {
	CategoryID       uuid.UUID
	Name             string
	Description      string
	Size             string
	Color            string
	Brand            string
	ImageURL         string
	Price            decimal.Decimal
	StockQuantity    int32
	ReorderThreshold int32
}

// UpdateProductParams contains optional fields for updating a product.
// Nil fields are left unchanged.
type UpdateProductParams struct {
	Name             *string
	Description      *string
	Size             *string
	Color            *string
	Brand            *string
	ImageURL         *string
	Price            *decimal.Decimal
	ReorderThreshold *int32
}
