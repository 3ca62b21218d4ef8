package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jswan/mercantile/internal/domain"
)

func TestAddItem(t *testing.T) {
	store := &mockStore{}
	userID := uuid.New()
	productID := uuid.New()
	cartID := uuid.New()

	store.GetProductFunc = func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
		return &domain.Product{ID: id, Name: "Wool Socks", Price: dec("8.00")}, nil
	}
	store.GetOpenCartByUserFunc = func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
		return &domain.Cart{ID: cartID, UserID: uid, Status: domain.CartStatusOpen}, nil
	}

	var upserted int32
	store.UpsertCartItemFunc = func(ctx context.Context, cID, pID uuid.UUID, quantity int32) error {
		assert.Equal(t, cartID, cID)
		assert.Equal(t, productID, pID)
		upserted = quantity
		return nil
	}
	store.ListCartLinesFunc = func(ctx context.Context, cID uuid.UUID) ([]domain.CartLine, error) {
		return []domain.CartLine{
			{ProductID: productID, ProductName: "Wool Socks", Quantity: 3, UnitPrice: dec("8.00"), LineTotal: dec("24.00")},
		}, nil
	}

	svc := NewCartService(store)
	summary, err := svc.AddItem(context.Background(), userID, productID, 3)
	require.NoError(t, err)

	assert.Equal(t, int32(3), upserted)
	assert.True(t, summary.Subtotal.Equal(dec("24.00")), "subtotal %s", summary.Subtotal)
}

func TestAddItemWithoutCart(t *testing.T) {
	store := &mockStore{}
	store.GetProductFunc = func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
		return &domain.Product{ID: id, Name: "Wool Socks", Price: dec("8.00")}, nil
	}

	var created, upserted bool
	store.CreateCartFunc = func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
		created = true
		return &domain.Cart{ID: uuid.New(), UserID: uid, Status: domain.CartStatusOpen}, nil
	}
	store.UpsertCartItemFunc = func(ctx context.Context, cartID, productID uuid.UUID, quantity int32) error {
		upserted = true
		return nil
	}

	svc := NewCartService(store)
	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
	assert.False(t, created, "add must not open a cart on the side")
	assert.False(t, upserted, "nothing may be written without an open cart")
}

func TestAddItemRejectsBadInput(t *testing.T) {
	store := &mockStore{}
	svc := NewCartService(store)

	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.AddItem(context.Background(), uuid.New(), uuid.New(), -2)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// Unknown product, default mock getter.
	_, err = svc.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateCartConflict(t *testing.T) {
	store := &mockStore{}
	store.CreateCartFunc = func(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
		return nil, domain.ErrCartExists
	}

	svc := NewCartService(store)
	_, err := svc.CreateCart(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrCartExists)
}

func TestRemoveItemRequiresOpenCart(t *testing.T) {
	store := &mockStore{}
	svc := NewCartService(store)

	_, err := svc.RemoveItem(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestMergeGuestCart(t *testing.T) {
	store := &mockStore{}
	userID := uuid.New()
	cartID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	store.GetOpenCartByUserFunc = func(ctx context.Context, uid uuid.UUID) (*domain.Cart, error) {
		return &domain.Cart{ID: cartID, UserID: uid, Status: domain.CartStatusOpen}, nil
	}
	store.GetProductFunc = func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
		return &domain.Product{ID: id, Price: dec("10.00")}, nil
	}

	merged := map[uuid.UUID]int32{}
	store.UpsertCartItemFunc = func(ctx context.Context, cID, pID uuid.UUID, quantity int32) error {
		merged[pID] += quantity
		return nil
	}

	svc := NewCartService(store)
	_, err := svc.MergeGuestCart(context.Background(), userID, []domain.GuestCartItem{
		{ProductID: productA, Quantity: 2},
		{ProductID: productB, Quantity: 1},
		{ProductID: productA, Quantity: 3},
	})
	require.NoError(t, err)

	// Upserts accumulate, so repeated guest lines end up in one cart line.
	assert.Equal(t, int32(5), merged[productA])
	assert.Equal(t, int32(1), merged[productB])
}

func TestMergeGuestCartAbortsOnBadLine(t *testing.T) {
	store := &mockStore{}

	var wrote bool
	store.UpsertCartItemFunc = func(ctx context.Context, cartID, productID uuid.UUID, quantity int32) error {
		wrote = true
		return nil
	}

	svc := NewCartService(store)
	_, err := svc.MergeGuestCart(context.Background(), uuid.New(), []domain.GuestCartItem{
		{ProductID: uuid.New(), Quantity: 1},
		{ProductID: uuid.New(), Quantity: 0},
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.False(t, wrote, "no lines may be written when any line is invalid")
}
