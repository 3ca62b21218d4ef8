package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jswan/mercantile/internal/domain"
	"github.com/jswan/mercantile/internal/middleware"
	"github.com/jswan/mercantile/internal/service"
)

// ReturnHandler handles customer return requests and staff decisions.
type ReturnHandler struct {
	returns *service.ReturnService
}

// NewReturnHandler creates a new return handler.
func NewReturnHandler(returns *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returns: returns}
}

type requestReturnRequest struct {
	OrderID uuid.UUID                  `json:"order_id" validate:"required"`
	Reason  string                     `json:"reason"`
	Items   []domain.RequestReturnItem `json:"items" validate:"required,min=1,dive"`
}

type decideReturnRequest struct {
	Approve bool `json:"approve"`
}

type returnItemResponse struct {
	ID          string `json:"id"`
	OrderItemID string `json:"order_item_id"`
	Quantity    int32  `json:"quantity"`
	Reason      string `json:"reason,omitempty"`
}

type returnResponse struct {
	ID          string               `json:"id"`
	OrderID     string               `json:"order_id"`
	Status      string               `json:"status"`
	Reason      string               `json:"reason,omitempty"`
	RequestedAt time.Time            `json:"requested_at"`
	DecidedAt   *time.Time           `json:"decided_at,omitempty"`
	Items       []returnItemResponse `json:"items,omitempty"`
}

func toReturnResponse(ret *domain.Return, items []domain.ReturnItem) returnResponse {
	resp := returnResponse{
		ID:          ret.ID.String(),
		OrderID:     ret.OrderID.String(),
		Status:      string(ret.Status),
		Reason:      ret.Reason,
		RequestedAt: ret.RequestedAt,
		DecidedAt:   ret.DecidedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, returnItemResponse{
			ID:          item.ID.String(),
			OrderItemID: item.OrderItemID.String(),
			Quantity:    item.Quantity,
			Reason:      item.Reason,
		})
	}
	return resp
}

// Request handles POST /customer/returns
func (h *ReturnHandler) Request(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req requestReturnRequest
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	detail, err := h.returns.RequestReturn(r.Context(), user.ID, req.OrderID, req.Reason, req.Items)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReturnResponse(&detail.Return, detail.Items))
}

// Decide handles PUT /staff/returns/{id}
func (h *ReturnHandler) Decide(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	returnID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("return.decide", "Invalid return ID"))
		return
	}

	var req decideReturnRequest
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	ret, err := h.returns.DecideReturn(r.Context(), user.ID, returnID, req.Approve)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toReturnResponse(ret, nil))
}

// Get handles GET /customer/returns/{id}
func (h *ReturnHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	returnID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("return.get", "Invalid return ID"))
		return
	}

	detail, err := h.returns.GetReturn(r.Context(), user, returnID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toReturnResponse(&detail.Return, detail.Items))
}

// ListPending handles GET /staff/returns
func (h *ReturnHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	returns, err := h.returns.ListPendingReturns(r.Context())
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	resp := make([]returnResponse, len(returns))
	for i := range returns {
		resp[i] = toReturnResponse(&returns[i], nil)
	}
	writeJSON(w, http.StatusOK, resp)
}
