package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jswan/mercantile/internal/domain"
)

// CreateAddress inserts an immutable address row.
func (s *Store) CreateAddress(ctx context.Context, params domain.CreateAddressParams) (*domain.Address, error) {
	var a domain.Address
	err := s.db.QueryRow(ctx,
		`INSERT INTO addresses (line1, line2, city, state, postal_code)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, line1, line2, city, state, postal_code, created_at`,
		params.Line1, params.Line2, params.City, params.State, params.PostalCode,
	).Scan(&a.ID, &a.Line1, &a.Line2, &a.City, &a.State, &a.PostalCode, &a.CreatedAt)
	if err != nil {
		return nil, domain.Internal(err, "address.create", "failed to create address")
	}
	return &a, nil
}

// GetAddress retrieves an address by ID.
func (s *Store) GetAddress(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	var a domain.Address
	err := s.db.QueryRow(ctx,
		`SELECT id, line1, line2, city, state, postal_code, created_at
		 FROM addresses WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Line1, &a.Line2, &a.City, &a.State, &a.PostalCode, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, domain.Internal(err, "address.get", "failed to get address")
	}
	return &a, nil
}

// CreatePaymentMethod stores a card for a user. Card numbers are globally
// unique; a duplicate insert is a conflict.
func (s *Store) CreatePaymentMethod(ctx context.Context, pm *domain.PaymentMethod) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO payment_methods (user_id, card_number, expiration_date, cvv, billing_address_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		pm.UserID, pm.CardNumber, pm.ExpirationDate, pm.CVV, pm.BillingAddressID,
	).Scan(&pm.ID, &pm.CreatedAt)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return domain.ErrDuplicateCard
		}
		return domain.Internal(err, "payment_method.create", "failed to create payment method")
	}
	return nil
}

// GetPaymentMethod retrieves a stored card by ID.
func (s *Store) GetPaymentMethod(ctx context.Context, id uuid.UUID) (*domain.PaymentMethod, error) {
	var pm domain.PaymentMethod
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, card_number, expiration_date, cvv, billing_address_id, created_at
		 FROM payment_methods WHERE id = $1`,
		id,
	).Scan(&pm.ID, &pm.UserID, &pm.CardNumber, &pm.ExpirationDate, &pm.CVV,
		&pm.BillingAddressID, &pm.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentMethodNotFound
		}
		return nil, domain.Internal(err, "payment_method.get", "failed to get payment method")
	}
	return &pm, nil
}

// ListPaymentMethodsByUser returns the user's stored cards.
func (s *Store) ListPaymentMethodsByUser(ctx context.Context, userID uuid.UUID) ([]domain.PaymentMethod, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, card_number, expiration_date, cvv, billing_address_id, created_at
		 FROM payment_methods WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, domain.Internal(err, "payment_method.list", "failed to list payment methods")
	}
	defer rows.Close()

	var methods []domain.PaymentMethod
	for rows.Next() {
		var pm domain.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.UserID, &pm.CardNumber, &pm.ExpirationDate,
			&pm.CVV, &pm.BillingAddressID, &pm.CreatedAt); err != nil {
			return nil, domain.Internal(err, "payment_method.list", "failed to scan payment method")
		}
		methods = append(methods, pm)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "payment_method.list", "failed to read payment methods")
	}
	return methods, nil
}

// DeletePaymentMethod removes a stored card. The user filter keeps one user
// from deleting another user's card.
func (s *Store) DeletePaymentMethod(ctx context.Context, id, userID uuid.UUID) error {
	ct, err := s.db.Exec(ctx,
		`DELETE FROM payment_methods WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return domain.Internal(err, "payment_method.delete", "failed to delete payment method")
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrPaymentMethodNotFound
	}
	return nil
}
