package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jswan/mercantile/internal/domain"
	"github.com/jswan/mercantile/internal/middleware"
	"github.com/jswan/mercantile/internal/service"
)

// cartStubStore embeds the Store interface so only the methods the cart
// path touches need real bodies. Anything else is a test bug and panics.
type cartStubStore struct {
	service.Store

	product *domain.Product
	cart    *domain.Cart
	lines   []domain.CartLine
}

func (s *cartStubStore) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, domain.ErrProductNotFound
	}
	return s.product, nil
}

func (s *cartStubStore) GetOpenCartByUser(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	if s.cart == nil {
		return nil, domain.ErrCartNotFound
	}
	return s.cart, nil
}

func (s *cartStubStore) CreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	s.cart = &domain.Cart{ID: uuid.New(), UserID: userID, Status: domain.CartStatusOpen}
	return s.cart, nil
}

func (s *cartStubStore) UpsertCartItem(ctx context.Context, cartID, productID uuid.UUID, quantity int32) error {
	price := s.product.Price
	s.lines = append(s.lines, domain.CartLine{
		ProductID:   productID,
		ProductName: s.product.Name,
		Quantity:    quantity,
		UnitPrice:   price,
		LineTotal:   price.Mul(decimal.NewFromInt(int64(quantity))),
	})
	return nil
}

func (s *cartStubStore) ListCartLines(ctx context.Context, cartID uuid.UUID) ([]domain.CartLine, error) {
	return s.lines, nil
}

func newCartRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	user := &domain.User{ID: uuid.New(), RoleName: domain.RoleCustomer, Active: true}
	return req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, user))
}

func TestCartAddItem(t *testing.T) {
	store := &cartStubStore{
		product: &domain.Product{
			ID:    uuid.New(),
			Name:  "Canvas Tote",
			Price: decimal.RequireFromString("12.50"),
		},
		cart: &domain.Cart{ID: uuid.New(), Status: domain.CartStatusOpen},
	}
	h := NewCartHandler(service.NewCartService(store))

	body := `{"product_id": "` + store.product.ID.String() + `", "quantity": 2}`
	req := newCartRequest(t, http.MethodPost, "/cart-items/add", body)
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Lines []struct {
			ProductName string `json:"product_name"`
			Quantity    int32  `json:"quantity"`
		} `json:"lines"`
		Subtotal string `json:"subtotal"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Lines) != 1 || resp.Lines[0].Quantity != 2 {
		t.Fatalf("lines = %+v, want one line with quantity 2", resp.Lines)
	}
	if resp.Subtotal != "25" {
		t.Errorf("subtotal = %s, want 25", resp.Subtotal)
	}
}

func TestCartAddItemWithoutCart(t *testing.T) {
	store := &cartStubStore{
		product: &domain.Product{
			ID:    uuid.New(),
			Name:  "Canvas Tote",
			Price: decimal.RequireFromString("12.50"),
		},
	}
	h := NewCartHandler(service.NewCartService(store))

	body := `{"product_id": "` + store.product.ID.String() + `", "quantity": 1}`
	req := newCartRequest(t, http.MethodPost, "/cart-items/add", body)
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusNotFound, rec.Body.String())
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	h := NewCartHandler(service.NewCartService(&cartStubStore{}))

	body := `{"product_id": "` + uuid.NewString() + `", "quantity": 1}`
	req := newCartRequest(t, http.MethodPost, "/cart-items/add", body)
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error.Code != domain.ENOTFOUND {
		t.Errorf("error code = %q, want %q", resp.Error.Code, domain.ENOTFOUND)
	}
}

func TestCartAddItemRejectsZeroQuantity(t *testing.T) {
	h := NewCartHandler(service.NewCartService(&cartStubStore{}))

	body := `{"product_id": "` + uuid.NewString() + `", "quantity": 0}`
	req := newCartRequest(t, http.MethodPost, "/cart-items/add", body)
	rec := httptest.NewRecorder()
	h.AddItem(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestCartGetWithoutCart(t *testing.T) {
	h := NewCartHandler(service.NewCartService(&cartStubStore{}))

	req := newCartRequest(t, http.MethodGet, "/cart", "")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
