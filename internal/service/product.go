package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jswan/mercantile/internal/domain"
)

// ProductService manages the catalog, inventory adjustments, and sale
// events.
type ProductService struct {
	store Store
}

// NewProductService creates a new product service.
func NewProductService(store Store) *ProductService {
	return &ProductService{store: store}
}

// CreateProduct adds a catalog item.
func (s *ProductService) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	var verr error
	if params.Name == "" {
		verr = domain.AddFieldError(verr, "name", "name is required")
	}
	if params.Price.IsNegative() {
		verr = domain.AddFieldError(verr, "price", "price must not be negative")
	}
	if params.StockQuantity < 0 {
		verr = domain.AddFieldError(verr, "stock_quantity", "stock must not be negative")
	}
	if params.ReorderThreshold < 0 {
		verr = domain.AddFieldError(verr, "reorder_threshold", "reorder threshold must not be negative")
	}
	if verr != nil {
		return nil, verr
	}

	return s.store.CreateProduct(ctx, params)
}

// UpdateProduct applies partial updates to a product.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) (*domain.Product, error) {
	if params.Price != nil && params.Price.IsNegative() {
		return nil, domain.NewValidationError("product.update", "price", "price must not be negative")
	}
	if err := s.store.UpdateProduct(ctx, id, params); err != nil {
		return nil, err
	}
	return s.store.GetProduct(ctx, id)
}

// GetProduct retrieves a product by ID.
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// ListProducts returns the catalog.
func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListProducts(ctx)
}

// ListLowStock returns products at or below their reorder threshold.
func (s *ProductService) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListLowStockProducts(ctx)
}

// ListCategories returns all categories.
func (s *ProductService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.store.ListCategories(ctx)
}

// Restock adds quantity units of a product back into inventory and records
// who did it. The stock change and the activity entry commit together, so a
// reported failure means no stock moved.
func (s *ProductService) Restock(ctx context.Context, actorID, productID uuid.UUID, quantity int32) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	err := s.store.WithinTx(ctx, func(tx Store) error {
		if err := tx.IncrementStock(ctx, productID, quantity); err != nil {
			return err
		}
		return tx.AppendActivity(ctx, actorID, domain.ActivityStockRestocked, "product", productID)
	})
	if err != nil {
		return nil, err
	}

	return s.store.GetProduct(ctx, productID)
}

// CreateSaleEvent adds a time-bounded discount.
func (s *ProductService) CreateSaleEvent(ctx context.Context, params domain.CreateSaleEventParams) (*domain.SaleEvent, error) {
	var verr error
	if params.Name == "" {
		verr = domain.AddFieldError(verr, "name", "name is required")
	}
	if !params.PercentOff.IsPositive() || params.PercentOff.GreaterThan(decimal.NewFromInt(100)) {
		verr = domain.AddFieldError(verr, "percent_off", "percent off must be between 0 and 100")
	}
	if !params.EndsAt.After(params.StartsAt) {
		verr = domain.AddFieldError(verr, "ends_at", "end must be after start")
	}
	if params.ProductID != nil && params.CategoryID != nil {
		verr = domain.AddFieldError(verr, "category_id", "target either a product or a category, not both")
	}
	if verr != nil {
		return nil, verr
	}

	if params.ProductID != nil {
		if _, err := s.store.GetProduct(ctx, *params.ProductID); err != nil {
			return nil, err
		}
	}

	return s.store.CreateSaleEvent(ctx, params)
}

// ListSaleEvents returns all sale events.
func (s *ProductService) ListSaleEvents(ctx context.Context) ([]domain.SaleEvent, error) {
	return s.store.ListSaleEvents(ctx)
}

// DeleteSaleEvent removes a sale event.
func (s *ProductService) DeleteSaleEvent(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteSaleEvent(ctx, id)
}
