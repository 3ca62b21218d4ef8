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

// ProductHandler handles catalog, inventory, and sale event routes.
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type createProductRequest struct {
	CategoryID       uuid.UUID       `json:"category_id" validate:"required"`
	Name             string          `json:"name" validate:"required"`
	Description      string          `json:"description"`
	Size             string          `json:"size"`
	Color            string          `json:"color"`
	Brand            string          `json:"brand"`
	ImageURL         string          `json:"image_url"`
	Price            decimal.Decimal `json:"price" validate:"required"`
	StockQuantity    int32           `json:"stock_quantity"`
	ReorderThreshold int32           `json:"reorder_threshold"`
}

type updateProductRequest struct {
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	Size             *string          `json:"size"`
	Color            *string          `json:"color"`
	Brand            *string          `json:"brand"`
	ImageURL         *string          `json:"image_url"`
	Price            *decimal.Decimal `json:"price"`
	ReorderThreshold *int32           `json:"reorder_threshold"`
}

type restockRequest struct {
	Quantity int32 `json:"quantity" validate:"required,gt=0"`
}

type createSaleEventRequest struct {
	Name       string          `json:"name" validate:"required"`
	PercentOff decimal.Decimal `json:"percent_off" validate:"required"`
	ProductID  *uuid.UUID      `json:"product_id"`
	CategoryID *uuid.UUID      `json:"category_id"`
	StartsAt   time.Time       `json:"starts_at" validate:"required"`
	EndsAt     time.Time       `json:"ends_at" validate:"required"`
}

type productResponse struct {
	ID               string          `json:"id"`
	CategoryID       string          `json:"category_id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Size             string          `json:"size,omitempty"`
	Color            string          `json:"color,omitempty"`
	Brand            string          `json:"brand,omitempty"`
	ImageURL         string          `json:"image_url,omitempty"`
	Price            decimal.Decimal `json:"price"`
	StockQuantity    int32           `json:"stock_quantity"`
	ReorderThreshold int32           `json:"reorder_threshold"`
	LowStock         bool            `json:"low_stock"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:               p.ID.String(),
		CategoryID:       p.CategoryID.String(),
		Name:             p.Name,
		Description:      p.Description,
		Size:             p.Size,
		Color:            p.Color,
		Brand:            p.Brand,
		ImageURL:         p.ImageURL,
		Price:            p.Price,
		StockQuantity:    p.StockQuantity,
		ReorderThreshold: p.ReorderThreshold,
		LowStock:         p.LowStock(),
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i := range products {
		resp[i] = toProductResponse(&products[i])
	}
	return resp
}

type saleEventResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	PercentOff decimal.Decimal `json:"percent_off"`
	ProductID  *uuid.UUID      `json:"product_id,omitempty"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	StartsAt   time.Time       `json:"starts_at"`
	EndsAt     time.Time       `json:"ends_at"`
}

func toSaleEventResponse(e *domain.SaleEvent) saleEventResponse {
	return saleEventResponse{
		ID:         e.ID.String(),
		Name:       e.Name,
		PercentOff: e.PercentOff,
		ProductID:  e.ProductID,
		CategoryID: e.CategoryID,
		StartsAt:   e.StartsAt,
		EndsAt:     e.EndsAt,
	}
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

// Get handles GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("product.get", "Invalid product ID"))
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Create handles POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	product, err := h.products.CreateProduct(r.Context(), domain.CreateProductParams{
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Description:      req.Description,
		Size:             req.Size,
		Color:            req.Color,
		Brand:            req.Brand,
		ImageURL:         req.ImageURL,
		Price:            req.Price,
		StockQuantity:    req.StockQuantity,
		ReorderThreshold: req.ReorderThreshold,
	})
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

// Update handles PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("product.update", "Invalid product ID"))
		return
	}

	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), id, domain.UpdateProductParams{
		Name:             req.Name,
		Description:      req.Description,
		Size:             req.Size,
		Color:            req.Color,
		Brand:            req.Brand,
		ImageURL:         req.ImageURL,
		Price:            req.Price,
		ReorderThreshold: req.ReorderThreshold,
	})
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// Restock handles POST /products/{id}/restock
func (h *ProductHandler) Restock(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("product.restock", "Invalid product ID"))
		return
	}

	var req restockRequest
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	product, err := h.products.Restock(r.Context(), user.ID, id, req.Quantity)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// ListLowStock handles GET /staff/low-stock
func (h *ProductHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListLowStock(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

// ListCategories handles GET /categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.ListCategories(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	type categoryResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Sex  string `json:"sex"`
	}
	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = categoryResponse{ID: c.ID.String(), Name: c.Name, Sex: c.Sex}
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateSaleEvent handles POST /sale-events
func (h *ProductHandler) CreateSaleEvent(w http.ResponseWriter, r *http.Request) {
	var req createSaleEventRequest
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	event, err := h.products.CreateSaleEvent(r.Context(), domain.CreateSaleEventParams{
		Name:       req.Name,
		PercentOff: req.PercentOff,
		ProductID:  req.ProductID,
		CategoryID: req.CategoryID,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
	})
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSaleEventResponse(event))
}

// ListSaleEvents handles GET /sale-events
func (h *ProductHandler) ListSaleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.products.ListSaleEvents(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	resp := make([]saleEventResponse, len(events))
	for i := range events {
		resp[i] = toSaleEventResponse(&events[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteSaleEvent handles DELETE /sale-events/{id}
func (h *ProductHandler) DeleteSaleEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("sale_event.delete", "Invalid sale event ID"))
		return
	}

	if err := h.products.DeleteSaleEvent(r.Context(), id); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
