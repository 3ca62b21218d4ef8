package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jswan/mercantile/internal/domain"
)

func TestRestock(t *testing.T) {
	store := &mockStore{}
	actorID := uuid.New()
	productID := uuid.New()

	var added int32
	store.IncrementStockFunc = func(ctx context.Context, pID uuid.UUID, quantity int32) error {
		assert.Equal(t, productID, pID)
		added = quantity
		return nil
	}
	store.GetProductFunc = func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
		return &domain.Product{ID: id, StockQuantity: 25}, nil
	}

	var logged string
	store.AppendActivityFunc = func(ctx context.Context, userID uuid.UUID, action, entity string, entityID uuid.UUID) error {
		assert.Equal(t, actorID, userID)
		logged = action
		return nil
	}

	svc := NewProductService(store)
	p, err := svc.Restock(context.Background(), actorID, productID, 20)
	require.NoError(t, err)

	assert.Equal(t, int32(20), added)
	assert.Equal(t, int32(25), p.StockQuantity)
	assert.Equal(t, domain.ActivityStockRestocked, logged)
}

func TestRestockLogsInSameTransaction(t *testing.T) {
	store := &mockStore{}
	productID := uuid.New()

	var inTx, incremented, logged bool
	store.WithinTxFunc = func(ctx context.Context, fn func(Store) error) error {
		inTx = true
		err := fn(store)
		inTx = false
		return err
	}
	store.IncrementStockFunc = func(ctx context.Context, pID uuid.UUID, quantity int32) error {
		assert.True(t, inTx, "stock change must run inside the transaction")
		incremented = true
		return nil
	}
	store.AppendActivityFunc = func(ctx context.Context, userID uuid.UUID, action, entity string, entityID uuid.UUID) error {
		assert.True(t, inTx, "activity entry must share the stock change's transaction")
		logged = true
		return nil
	}
	store.GetProductFunc = func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
		return &domain.Product{ID: id, StockQuantity: 10}, nil
	}

	svc := NewProductService(store)
	_, err := svc.Restock(context.Background(), uuid.New(), productID, 3)
	require.NoError(t, err)
	assert.True(t, incremented)
	assert.True(t, logged)
}

func TestRestockRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewProductService(&mockStore{})

	_, err := svc.Restock(context.Background(), uuid.New(), uuid.New(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.Restock(context.Background(), uuid.New(), uuid.New(), -5)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(&mockStore{})

	_, err := svc.CreateProduct(context.Background(), domain.CreateProductParams{
		Name:          "",
		Price:         dec("-1.00"),
		StockQuantity: -3,
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err), "want validation error, got %v", err)

	fields := domain.GetValidationFields(err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "stock_quantity")
}

func TestCreateSaleEventValidation(t *testing.T) {
	now := time.Now()
	productID := uuid.New()
	categoryID := uuid.New()

	tests := []struct {
		name   string
		params domain.CreateSaleEventParams
	}{
		{
			name: "zero percent",
			params: domain.CreateSaleEventParams{
				Name: "Nothing Off", PercentOff: dec("0"),
				StartsAt: now, EndsAt: now.Add(time.Hour),
			},
		},
		{
			name: "over 100 percent",
			params: domain.CreateSaleEventParams{
				Name: "Paying Customers", PercentOff: dec("120"),
				StartsAt: now, EndsAt: now.Add(time.Hour),
			},
		},
		{
			name: "ends before it starts",
			params: domain.CreateSaleEventParams{
				Name: "Backwards", PercentOff: dec("10"),
				StartsAt: now, EndsAt: now.Add(-time.Hour),
			},
		},
		{
			name: "both product and category targets",
			params: domain.CreateSaleEventParams{
				Name: "Ambiguous", PercentOff: dec("10"),
				ProductID: &productID, CategoryID: &categoryID,
				StartsAt: now, EndsAt: now.Add(time.Hour),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProductService(&mockStore{})
			_, err := svc.CreateSaleEvent(context.Background(), tt.params)
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err), "want validation error, got %v", err)
		})
	}
}

func TestCreateSaleEventUnknownProduct(t *testing.T) {
	now := time.Now()
	productID := uuid.New()

	svc := NewProductService(&mockStore{})
	_, err := svc.CreateSaleEvent(context.Background(), domain.CreateSaleEventParams{
		Name: "Orphan Sale", PercentOff: dec("10"),
		ProductID: &productID,
		StartsAt:  now, EndsAt: now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateSaleEvent(t *testing.T) {
	now := time.Now()
	store := &mockStore{}
	svc := NewProductService(store)

	event, err := svc.CreateSaleEvent(context.Background(), domain.CreateSaleEventParams{
		Name: "Storewide Spring Sale", PercentOff: dec("15"),
		StartsAt: now, EndsAt: now.Add(72 * time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, event.PercentOff.Equal(dec("15")))
	assert.Nil(t, event.ProductID)
	assert.Nil(t, event.CategoryID)
}
