package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jswan/mercantile/internal/domain"
)

// mockStore implements Store for testing. Set only the function fields a
// test cares about; unset getters report not found and unset writes
// succeed. WithinTx runs fn against the mock itself unless overridden.
type mockStore struct {
	WithinTxFunc func(ctx context.Context, fn func(Store) error) error

	CreateProductFunc        func(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error)
	GetProductFunc           func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProductsFunc         func(ctx context.Context) ([]domain.Product, error)
	UpdateProductFunc        func(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) error
	ListLowStockProductsFunc func(ctx context.Context) ([]domain.Product, error)
	ListCategoriesFunc       func(ctx context.Context) ([]domain.Category, error)

	DecrementStockFunc func(ctx context.Context, productID uuid.UUID, quantity int32) error
	IncrementStockFunc func(ctx context.Context, productID uuid.UUID, quantity int32) error

	CreateCartFunc         func(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	GetOpenCartByUserFunc  func(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	UpsertCartItemFunc     func(ctx context.Context, cartID, productID uuid.UUID, quantity int32) error
	RemoveCartItemFunc     func(ctx context.Context, cartID, productID uuid.UUID) error
	ListCartLinesFunc      func(ctx context.Context, cartID uuid.UUID) ([]domain.CartLine, error)
	ClearCartItemsFunc     func(ctx context.Context, cartID uuid.UUID) error
	MarkCartCheckedOutFunc func(ctx context.Context, cartID uuid.UUID) error

	CreateOrderFunc       func(ctx context.Context, order *domain.Order) error
	CreateOrderItemFunc   func(ctx context.Context, item *domain.OrderItem) error
	GetOrderFunc          func(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetOrderItemFunc      func(ctx context.Context, id uuid.UUID) (*domain.OrderItem, error)
	ListOrderItemsFunc    func(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error)
	ListOrdersByUserFunc  func(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	UpdateOrderStatusFunc func(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error

	CreateReturnFunc       func(ctx context.Context, ret *domain.Return) error
	CreateReturnItemFunc   func(ctx context.Context, item *domain.ReturnItem) error
	GetReturnFunc          func(ctx context.Context, id uuid.UUID) (*domain.Return, error)
	ListReturnItemsFunc    func(ctx context.Context, returnID uuid.UUID) ([]domain.ReturnItem, error)
	ListPendingReturnsFunc func(ctx context.Context) ([]domain.Return, error)
	UpdateReturnStatusFunc func(ctx context.Context, id uuid.UUID, status domain.ReturnStatus, decidedAt time.Time) error
	CreateRefundFunc       func(ctx context.Context, refund *domain.Refund) error
	GetRefundByReturnFunc  func(ctx context.Context, returnID uuid.UUID) (*domain.Refund, error)

	CreateSaleEventFunc      func(ctx context.Context, params domain.CreateSaleEventParams) (*domain.SaleEvent, error)
	ListSaleEventsFunc       func(ctx context.Context) ([]domain.SaleEvent, error)
	ListActiveSaleEventsFunc func(ctx context.Context, at time.Time) ([]domain.SaleEvent, error)
	DeleteSaleEventFunc      func(ctx context.Context, id uuid.UUID) error

	CreateUserFunc     func(ctx context.Context, params domain.CreateUserParams) (*domain.User, error)
	GetUserByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	GetUserByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetRoleByNameFunc  func(ctx context.Context, name string) (*domain.Role, error)

	CreateAddressFunc            func(ctx context.Context, params domain.CreateAddressParams) (*domain.Address, error)
	GetAddressFunc               func(ctx context.Context, id uuid.UUID) (*domain.Address, error)
	CreatePaymentMethodFunc      func(ctx context.Context, pm *domain.PaymentMethod) error
	GetPaymentMethodFunc         func(ctx context.Context, id uuid.UUID) (*domain.PaymentMethod, error)
	ListPaymentMethodsByUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.PaymentMethod, error)
	DeletePaymentMethodFunc      func(ctx context.Context, id, userID uuid.UUID) error

	AppendActivityFunc func(ctx context.Context, userID uuid.UUID, action, entity string, entityID uuid.UUID) error
	ListActivityFunc   func(ctx context.Context, limit int32) ([]domain.ActivityEntry, error)
}

var _ Store = (*mockStore)(nil)

func (m *mockStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	if m.WithinTxFunc != nil {
		return m.WithinTxFunc(ctx, fn)
	}
	return fn(m)
}

func (m *mockStore) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(ctx, params)
	}
	return nil, errors.New("not implemented")
}

func (m *mockStore) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *mockStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) UpdateProduct(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) error {
	if m.UpdateProductFunc != nil {
		return m.UpdateProductFunc(ctx, id, params)
	}
	return nil
}

func (m *mockStore) ListLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	if m.ListLowStockProductsFunc != nil {
		return m.ListLowStockProductsFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int32) error {
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, productID, quantity)
	}
	return nil
}

func (m *mockStore) IncrementStock(ctx context.Context, productID uuid.UUID, quantity int32) error {
	if m.IncrementStockFunc != nil {
		return m.IncrementStockFunc(ctx, productID, quantity)
	}
	return nil
}

func (m *mockStore) CreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	if m.CreateCartFunc != nil {
		return m.CreateCartFunc(ctx, userID)
	}
	return &domain.Cart{ID: uuid.New(), UserID: userID, Status: domain.CartStatusOpen}, nil
}

func (m *mockStore) GetOpenCartByUser(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	if m.GetOpenCartByUserFunc != nil {
		return m.GetOpenCartByUserFunc(ctx, userID)
	}
	return nil, domain.ErrCartNotFound
}

func (m *mockStore) UpsertCartItem(ctx context.Context, cartID, productID uuid.UUID, quantity int32) error {
	if m.UpsertCartItemFunc != nil {
		return m.UpsertCartItemFunc(ctx, cartID, productID, quantity)
	}
	return nil
}

func (m *mockStore) RemoveCartItem(ctx context.Context, cartID, productID uuid.UUID) error {
	if m.RemoveCartItemFunc != nil {
		return m.RemoveCartItemFunc(ctx, cartID, productID)
	}
	return nil
}

func (m *mockStore) ListCartLines(ctx context.Context, cartID uuid.UUID) ([]domain.CartLine, error) {
	if m.ListCartLinesFunc != nil {
		return m.ListCartLinesFunc(ctx, cartID)
	}
	return nil, nil
}

func (m *mockStore) ClearCartItems(ctx context.Context, cartID uuid.UUID) error {
	if m.ClearCartItemsFunc != nil {
		return m.ClearCartItemsFunc(ctx, cartID)
	}
	return nil
}

func (m *mockStore) MarkCartCheckedOut(ctx context.Context, cartID uuid.UUID) error {
	if m.MarkCartCheckedOutFunc != nil {
		return m.MarkCartCheckedOutFunc(ctx, cartID)
	}
	return nil
}

func (m *mockStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, order)
	}
	order.ID = uuid.New()
	order.OrderDate = time.Now()
	return nil
}

func (m *mockStore) CreateOrderItem(ctx context.Context, item *domain.OrderItem) error {
	if m.CreateOrderItemFunc != nil {
		return m.CreateOrderItemFunc(ctx, item)
	}
	item.ID = uuid.New()
	return nil
}

func (m *mockStore) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, id)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *mockStore) GetOrderItem(ctx context.Context, id uuid.UUID) (*domain.OrderItem, error) {
	if m.GetOrderItemFunc != nil {
		return m.GetOrderItemFunc(ctx, id)
	}
	return nil, domain.NotFound("order.get_item", "order item", id.String())
}

func (m *mockStore) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	if m.ListOrderItemsFunc != nil {
		return m.ListOrderItemsFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *mockStore) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	if m.ListOrdersByUserFunc != nil {
		return m.ListOrdersByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error {
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(ctx, id, from, to)
	}
	return nil
}

func (m *mockStore) CreateReturn(ctx context.Context, ret *domain.Return) error {
	if m.CreateReturnFunc != nil {
		return m.CreateReturnFunc(ctx, ret)
	}
	ret.ID = uuid.New()
	ret.RequestedAt = time.Now()
	return nil
}

func (m *mockStore) CreateReturnItem(ctx context.Context, item *domain.ReturnItem) error {
	if m.CreateReturnItemFunc != nil {
		return m.CreateReturnItemFunc(ctx, item)
	}
	item.ID = uuid.New()
	return nil
}

func (m *mockStore) GetReturn(ctx context.Context, id uuid.UUID) (*domain.Return, error) {
	if m.GetReturnFunc != nil {
		return m.GetReturnFunc(ctx, id)
	}
	return nil, domain.ErrReturnNotFound
}

func (m *mockStore) ListReturnItems(ctx context.Context, returnID uuid.UUID) ([]domain.ReturnItem, error) {
	if m.ListReturnItemsFunc != nil {
		return m.ListReturnItemsFunc(ctx, returnID)
	}
	return nil, nil
}

func (m *mockStore) ListPendingReturns(ctx context.Context) ([]domain.Return, error) {
	if m.ListPendingReturnsFunc != nil {
		return m.ListPendingReturnsFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) UpdateReturnStatus(ctx context.Context, id uuid.UUID, status domain.ReturnStatus, decidedAt time.Time) error {
	if m.UpdateReturnStatusFunc != nil {
		return m.UpdateReturnStatusFunc(ctx, id, status, decidedAt)
	}
	return nil
}

func (m *mockStore) CreateRefund(ctx context.Context, refund *domain.Refund) error {
	if m.CreateRefundFunc != nil {
		return m.CreateRefundFunc(ctx, refund)
	}
	refund.ID = uuid.New()
	refund.RefundedAt = time.Now()
	return nil
}

func (m *mockStore) GetRefundByReturn(ctx context.Context, returnID uuid.UUID) (*domain.Refund, error) {
	if m.GetRefundByReturnFunc != nil {
		return m.GetRefundByReturnFunc(ctx, returnID)
	}
	return nil, domain.NotFound("refund.get_by_return", "refund", returnID.String())
}

func (m *mockStore) CreateSaleEvent(ctx context.Context, params domain.CreateSaleEventParams) (*domain.SaleEvent, error) {
	if m.CreateSaleEventFunc != nil {
		return m.CreateSaleEventFunc(ctx, params)
	}
	return &domain.SaleEvent{
		ID:         uuid.New(),
		Name:       params.Name,
		PercentOff: params.PercentOff,
		ProductID:  params.ProductID,
		CategoryID: params.CategoryID,
		StartsAt:   params.StartsAt,
		EndsAt:     params.EndsAt,
	}, nil
}

func (m *mockStore) ListSaleEvents(ctx context.Context) ([]domain.SaleEvent, error) {
	if m.ListSaleEventsFunc != nil {
		return m.ListSaleEventsFunc(ctx)
	}
	return nil, nil
}

func (m *mockStore) ListActiveSaleEvents(ctx context.Context, at time.Time) ([]domain.SaleEvent, error) {
	if m.ListActiveSaleEventsFunc != nil {
		return m.ListActiveSaleEventsFunc(ctx, at)
	}
	return nil, nil
}

func (m *mockStore) DeleteSaleEvent(ctx context.Context, id uuid.UUID) error {
	if m.DeleteSaleEventFunc != nil {
		return m.DeleteSaleEventFunc(ctx, id)
	}
	return nil
}

func (m *mockStore) CreateUser(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, params)
	}
	return nil, errors.New("not implemented")
}

func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockStore) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockStore) GetRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	if m.GetRoleByNameFunc != nil {
		return m.GetRoleByNameFunc(ctx, name)
	}
	return &domain.Role{ID: 1, Name: name}, nil
}

func (m *mockStore) CreateAddress(ctx context.Context, params domain.CreateAddressParams) (*domain.Address, error) {
	if m.CreateAddressFunc != nil {
		return m.CreateAddressFunc(ctx, params)
	}
	return nil, errors.New("not implemented")
}

func (m *mockStore) GetAddress(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	if m.GetAddressFunc != nil {
		return m.GetAddressFunc(ctx, id)
	}
	return nil, domain.ErrAddressNotFound
}

func (m *mockStore) CreatePaymentMethod(ctx context.Context, pm *domain.PaymentMethod) error {
	if m.CreatePaymentMethodFunc != nil {
		return m.CreatePaymentMethodFunc(ctx, pm)
	}
	pm.ID = uuid.New()
	return nil
}

func (m *mockStore) GetPaymentMethod(ctx context.Context, id uuid.UUID) (*domain.PaymentMethod, error) {
	if m.GetPaymentMethodFunc != nil {
		return m.GetPaymentMethodFunc(ctx, id)
	}
	return nil, domain.ErrPaymentMethodNotFound
}

func (m *mockStore) ListPaymentMethodsByUser(ctx context.Context, userID uuid.UUID) ([]domain.PaymentMethod, error) {
	if m.ListPaymentMethodsByUserFunc != nil {
		return m.ListPaymentMethodsByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) DeletePaymentMethod(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeletePaymentMethodFunc != nil {
		return m.DeletePaymentMethodFunc(ctx, id, userID)
	}
	return nil
}

func (m *mockStore) AppendActivity(ctx context.Context, userID uuid.UUID, action, entity string, entityID uuid.UUID) error {
	if m.AppendActivityFunc != nil {
		return m.AppendActivityFunc(ctx, userID, action, entity, entityID)
	}
	return nil
}

func (m *mockStore) ListActivity(ctx context.Context, limit int32) ([]domain.ActivityEntry, error) {
	if m.ListActivityFunc != nil {
		return m.ListActivityFunc(ctx, limit)
	}
	return nil, nil
}
