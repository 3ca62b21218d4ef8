package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jswan/mercantile/internal/domain"
	"github.com/jswan/mercantile/internal/middleware"
	"github.com/jswan/mercantile/internal/service"
)

// AccountHandler handles address and payment method routes.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type addressResponse struct {
	ID         string `json:"id"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

func toAddressResponse(a *domain.Address) addressResponse {
	return addressResponse{
		ID:         a.ID.String(),
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
	}
}

type paymentMethodResponse struct {
	ID               string `json:"id"`
	CardNumberLast4  string `json:"card_number_last4"`
	ExpirationDate   string `json:"expiration_date"`
	BillingAddressID string `json:"billing_address_id"`
}

func toPaymentMethodResponse(pm *domain.PaymentMethod) paymentMethodResponse {
	last4 := pm.CardNumber
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	return paymentMethodResponse{
		ID:               pm.ID.String(),
		CardNumberLast4:  last4,
		ExpirationDate:   pm.ExpirationDate,
		BillingAddressID: pm.BillingAddressID.String(),
	}
}

// CreateAddress handles POST /addresses
func (h *AccountHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAddressParams
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	address, err := h.accounts.CreateAddress(r.Context(), req)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAddressResponse(address))
}

// AddPaymentMethod handles POST /payment-methods
func (h *AccountHandler) AddPaymentMethod(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req service.AddPaymentMethodParams
	if err := decodeJSON(r, &req); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	pm, err := h.accounts.AddPaymentMethod(r.Context(), user.ID, req)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentMethodResponse(pm))
}

// ListPaymentMethods handles GET /payment-methods
func (h *AccountHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	methods, err := h.accounts.ListPaymentMethods(r.Context(), user.ID)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	resp := make([]paymentMethodResponse, len(methods))
	for i := range methods {
		resp[i] = toPaymentMethodResponse(&methods[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// RemovePaymentMethod handles DELETE /payment-methods/{id}
func (h *AccountHandler) RemovePaymentMethod(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, domain.Invalid("payment_method.remove", "Invalid payment method ID"))
		return
	}

	if err := h.accounts.RemovePaymentMethod(r.Context(), user.ID, id); err != nil {
		ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
