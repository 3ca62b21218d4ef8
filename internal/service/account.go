package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/jswan/mercantile/internal/domain"
)

// AddPaymentMethodParams contains the fields a user supplies when storing
// a card.
type AddPaymentMethodParams struct {
	CardNumber       string    `json:"card_number" validate:"required"`
	ExpirationDate   string    `json:"expiration_date" validate:"required"`
	CVV              string    `json:"cvv" validate:"required"`
	BillingAddressID uuid.UUID `json:"billing_address_id" validate:"required"`
}

// AccountService manages a user's addresses and stored payment methods.
type AccountService struct {
	store Store
}

// NewAccountService creates a new account service.
func NewAccountService(store Store) *AccountService {
	return &AccountService{store: store}
}

// CreateAddress stores a new address.
func (s *AccountService) CreateAddress(ctx context.Context, params domain.CreateAddressParams) (*domain.Address, error) {
	var verr error
	if params.Line1 == "" {
		verr = domain.AddFieldError(verr, "line1", "line1 is required")
	}
	if params.City == "" {
		verr = domain.AddFieldError(verr, "city", "city is required")
	}
	if params.PostalCode == "" {
		verr = domain.AddFieldError(verr, "postal_code", "postal code is required")
	}
	if verr != nil {
		return nil, verr
	}

	return s.store.CreateAddress(ctx, params)
}

// GetAddress retrieves an address by ID.
func (s *AccountService) GetAddress(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	return s.store.GetAddress(ctx, id)
}

// AddPaymentMethod stores a card for the user. The billing address must
// already exist; a card number already on file returns
// domain.ErrDuplicateCard.
func (s *AccountService) AddPaymentMethod(ctx context.Context, userID uuid.UUID, params AddPaymentMethodParams) (*domain.PaymentMethod, error) {
	if _, err := s.store.GetAddress(ctx, params.BillingAddressID); err != nil {
		return nil, err
	}

	pm := &domain.PaymentMethod{
		UserID:           userID,
		CardNumber:       params.CardNumber,
		ExpirationDate:   params.ExpirationDate,
		CVV:              params.CVV,
		BillingAddressID: params.BillingAddressID,
	}
	if err := s.store.CreatePaymentMethod(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

// ListPaymentMethods returns the user's stored cards.
func (s *AccountService) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]domain.PaymentMethod, error) {
	return s.store.ListPaymentMethodsByUser(ctx, userID)
}

// RemovePaymentMethod deletes one of the user's stored cards. Cards
// belonging to other users are reported as not found.
func (s *AccountService) RemovePaymentMethod(ctx context.Context, userID, id uuid.UUID) error {
	return s.store.DeletePaymentMethod(ctx, id, userID)
}
