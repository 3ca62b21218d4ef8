package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jswan/mercantile/internal/domain"
	"github.com/jswan/mercantile/internal/middleware"
	"github.com/jswan/mercantile/internal/service"
)

// OrderHandler handles order placement and fulfillment routes.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderRequest struct {
	ShippingAddressID uuid.UUID  `json:"shipping_address_id" validate:"required"`
	PaymentMethodID   *uuid.UUID `json:"payment_method_id"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type orderItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Quantity       int32           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalItemPrice decimal.Decimal `json:"total_item_price"`
}

type orderResponse struct {
	ID            string              `json:"id"`
	Status        string              `json:"status"`
	OrderDate     time.Time           `json:"order_date"`
	ShippingCost  decimal.Decimal     `json:"shipping_cost"`
	DiscountTotal decimal.Decimal     `json:"discount_total"`
	TaxTotal      decimal.Decimal     `json:"tax_total"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Items         []orderItemResponse `json:"items,omitempty"`
}

func toOrderResponse(o *domain.Order, items []domain.OrderItem) orderResponse {
	resp := orderResponse{
		ID:            o.ID.String(),
		Status:        string(o.Status),
		OrderDate:     o.OrderDate,
		ShippingCost:  o.ShippingCost,
		DiscountTotal: o.DiscountTotal,
		TaxTotal:      o.TaxTotal,
		TotalAmount:   o.TotalAmount,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, orderItemResponse{
			ID:             item.ID.String(),
			ProductID:      item.ProductID.String(),
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			TotalItemPrice: item.TotalItemPrice,
		})
	}
	return resp
}

// Place handles POST /orders
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	detail, err := h.orders.PlaceOrder(r.Context(), user.ID, req.ShippingAddressID, req.PaymentMethodID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(&detail.Order, detail.Items))
}

// UpdateStatus handles PUT /orders/{id}
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("order.update_status", "Invalid order ID"))
		return
	}

	var req updateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), user.ID, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order, nil))
}

// Get handles GET /orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("order.get", "Invalid order ID"))
		return
	}

	detail, err := h.orders.GetOrder(r.Context(), user, orderID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(&detail.Order, detail.Items))
}

// List handles GET /orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	orders, err := h.orders.ListOrders(r.Context(), user.ID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i := range orders {
		resp[i] = toOrderResponse(&orders[i], nil)
	}
	writeJSON(w, http.StatusOK, resp)
}
