package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jswan/mercantile/internal/domain"
)

// Store is the persistence boundary for all services. The postgres package
// provides the production implementation; tests use function-field mocks.
//
// WithinTx runs fn against a transaction-bound Store. Every call made on
// that Store commits or rolls back together. Transactions are flat: calling
// WithinTx on an already transaction-bound Store is an error.
type Store interface {
	WithinTx(ctx context.Context, fn func(Store) error) error

	// Catalog
	CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) error
	ListLowStockProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// Inventory ledger. DecrementStock refuses to take stock below zero and
	// returns domain.ErrInsufficientStock instead.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int32) error
	IncrementStock(ctx context.Context, productID uuid.UUID, quantity int32) error

	// Carts
	CreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	GetOpenCartByUser(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	UpsertCartItem(ctx context.Context, cartID, productID uuid.UUID, quantity int32) error
	RemoveCartItem(ctx context.Context, cartID, productID uuid.UUID) error
	ListCartLines(ctx context.Context, cartID uuid.UUID) ([]domain.CartLine, error)
	ClearCartItems(ctx context.Context, cartID uuid.UUID) error
	MarkCartCheckedOut(ctx context.Context, cartID uuid.UUID) error

	// Orders. UpdateOrderStatus only applies when the order is still in the
	// from status, so a concurrent update cannot land an illegal sequence;
	// a stale from returns domain.ErrInvalidTransition.
	CreateOrder(ctx context.Context, order *domain.Order) error
	CreateOrderItem(ctx context.Context, item *domain.OrderItem) error
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetOrderItem(ctx context.Context, id uuid.UUID) (*domain.OrderItem, error)
	ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error

	// Returns and refunds
	CreateReturn(ctx context.Context, ret *domain.Return) error
	CreateReturnItem(ctx context.Context, item *domain.ReturnItem) error
	GetReturn(ctx context.Context, id uuid.UUID) (*domain.Return, error)
	ListReturnItems(ctx context.Context, returnID uuid.UUID) ([]domain.ReturnItem, error)
	ListPendingReturns(ctx context.Context) ([]domain.Return, error)
	UpdateReturnStatus(ctx context.Context, id uuid.UUID, status domain.ReturnStatus, decidedAt time.Time) error
	CreateRefund(ctx context.Context, refund *domain.Refund) error
	GetRefundByReturn(ctx context.Context, returnID uuid.UUID) (*domain.Refund, error)

	// Sale events
	CreateSaleEvent(ctx context.Context, params domain.CreateSaleEventParams) (*domain.SaleEvent, error)
	ListSaleEvents(ctx context.Context) ([]domain.SaleEvent, error)
	ListActiveSaleEvents(ctx context.Context, at time.Time) ([]domain.SaleEvent, error)
	DeleteSaleEvent(ctx context.Context, id uuid.UUID) error

	// Users and roles
	CreateUser(ctx context.Context, params domain.CreateUserParams) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetRoleByName(ctx context.Context, name string) (*domain.Role, error)

	// Addresses and payment methods
	CreateAddress(ctx context.Context, params domain.CreateAddressParams) (*domain.Address, error)
	GetAddress(ctx context.Context, id uuid.UUID) (*domain.Address, error)
	CreatePaymentMethod(ctx context.Context, pm *domain.PaymentMethod) error
	GetPaymentMethod(ctx context.Context, id uuid.UUID) (*domain.PaymentMethod, error)
	ListPaymentMethodsByUser(ctx context.Context, userID uuid.UUID) ([]domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id, userID uuid.UUID) error

	// Activity log (append-only)
	AppendActivity(ctx context.Context, userID uuid.UUID, action, entity string, entityID uuid.UUID) error
	ListActivity(ctx context.Context, limit int32) ([]domain.ActivityEntry, error)
}
