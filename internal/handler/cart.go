package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jswan/mercantile/internal/domain"
	"github.com/jswan/mercantile/internal/middleware"
	"github.com/jswan/mercantile/internal/service"
)

// CartHandler handles all cart routes.
type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type cartResponse struct {
	ID       string             `json:"id"`
	Status   string             `json:"status"`
	Lines    []cartLineResponse `json:"lines"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

func toCartResponse(s *domain.CartSummary) cartResponse {
	lines := make([]cartLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = cartLineResponse{
			ProductID:   l.ProductID.String(),
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		}
	}
	return cartResponse{
		ID:       s.Cart.ID.String(),
		Status:   string(s.Cart.Status),
		Lines:    lines,
		Subtotal: s.Subtotal,
	}
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int32     `json:"quantity" validate:"required,gt=0"`
}

type removeCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type mergeCartRequest struct {
	Items []domain.GuestCartItem `json:"items" validate:"required,dive"`
}

// Create handles POST /shopping_cart/create
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	cart, err := h.carts.CreateCart(r.Context(), user.ID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, cartResponse{
		ID:       cart.ID.String(),
		Status:   string(cart.Status),
		Lines:    []cartLineResponse{},
		Subtotal: decimal.Zero,
	})
}

// AddItem handles POST /cart-items/add
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req addCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	summary, err := h.carts.AddItem(r.Context(), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(summary))
}

// RemoveItem handles DELETE /cart-items
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req removeCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	summary, err := h.carts.RemoveItem(r.Context(), user.ID, req.ProductID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(summary))
}

// Get handles GET /cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	summary, err := h.carts.GetCart(r.Context(), user.ID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(summary))
}

// Merge handles POST /cart/merge
func (h *CartHandler) Merge(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req mergeCartRequest
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	summary, err := h.carts.MergeGuestCart(r.Context(), user.ID, req.Items)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(summary))
}
