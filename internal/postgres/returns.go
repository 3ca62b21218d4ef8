package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jswan/mercantile/internal/domain"
)

// CreateReturn inserts a pending return request and fills in its generated
// ID and timestamp.
func (s *Store) CreateReturn(ctx context.Context, ret *domain.Return) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO returns (order_id, status, reason)
		 VALUES ($1, $2, $3)
		 RETURNING id, requested_at`,
		ret.OrderID, ret.Status, ret.Reason,
	).Scan(&ret.ID, &ret.RequestedAt)
	if err != nil {
		return domain.Internal(err, "return.create", "failed to create return")
	}
	return nil
}

// CreateReturnItem inserts one line of a return request.
func (s *Store) CreateReturnItem(ctx context.Context, item *domain.ReturnItem) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO return_items (return_id, order_item_id, quantity, reason)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		item.ReturnID, item.OrderItemID, item.Quantity, item.Reason,
	).Scan(&item.ID)
	if err != nil {
		return domain.Internal(err, "return.create_item", "failed to create return item")
	}
	return nil
}

// GetReturn retrieves a return by ID.
func (s *Store) GetReturn(ctx context.Context, id uuid.UUID) (*domain.Return, error) {
	var ret domain.Return
	err := s.db.QueryRow(ctx,
		`SELECT id, order_id, status, reason, requested_at, decided_at
		 FROM returns WHERE id = $1`,
		id,
	).Scan(&ret.ID, &ret.OrderID, &ret.Status, &ret.Reason, &ret.RequestedAt, &ret.DecidedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReturnNotFound
		}
		return nil, domain.Internal(err, "return.get", "failed to get return")
	}
	return &ret, nil
}

// ListReturnItems returns the lines of a return request.
func (s *Store) ListReturnItems(ctx context.Context, returnID uuid.UUID) ([]domain.ReturnItem, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, return_id, order_item_id, quantity, reason
		 FROM return_items WHERE return_id = $1`,
		returnID,
	)
	if err != nil {
		return nil, domain.Internal(err, "return.list_items", "failed to list return items")
	}
	defer rows.Close()

	var items []domain.ReturnItem
	for rows.Next() {
		var item domain.ReturnItem
		if err := rows.Scan(&item.ID, &item.ReturnID, &item.OrderItemID,
			&item.Quantity, &item.Reason); err != nil {
			return nil, domain.Internal(err, "return.list_items", "failed to scan return item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "return.list_items", "failed to read return items")
	}
	return items, nil
}

// ListPendingReturns returns the staff review queue, oldest first.
func (s *Store) ListPendingReturns(ctx context.Context) ([]domain.Return, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, order_id, status, reason, requested_at, decided_at
		 FROM returns WHERE status = 'pending' ORDER BY requested_at`)
	if err != nil {
		return nil, domain.Internal(err, "return.list_pending", "failed to list pending returns")
	}
	defer rows.Close()

	var returns []domain.Return
	for rows.Next() {
		var ret domain.Return
		if err := rows.Scan(&ret.ID, &ret.OrderID, &ret.Status, &ret.Reason,
			&ret.RequestedAt, &ret.DecidedAt); err != nil {
			return nil, domain.Internal(err, "return.list_pending", "failed to scan return")
		}
		returns = append(returns, ret)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "return.list_pending", "failed to read returns")
	}
	return returns, nil
}

// UpdateReturnStatus records the staff decision. The status guard keeps a
// decided return from being decided twice.
func (s *Store) UpdateReturnStatus(ctx context.Context, id uuid.UUID, status domain.ReturnStatus, decidedAt time.Time) error {
	ct, err := s.db.Exec(ctx,
		`UPDATE returns SET status = $2, decided_at = $3
		 WHERE id = $1 AND status = 'pending'`,
		id, status, decidedAt,
	)
	if err != nil {
		return domain.Internal(err, "return.update_status", "failed to update return status")
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrReturnAlreadyDecided
	}
	return nil
}

// CreateRefund inserts the refund for an approved return. The unique
// constraint on return_id guarantees at most one refund per return.
func (s *Store) CreateRefund(ctx context.Context, refund *domain.Refund) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO refunds (return_id, amount)
		 VALUES ($1, $2)
		 RETURNING id, refunded_at`,
		refund.ReturnID, refund.Amount,
	).Scan(&refund.ID, &refund.RefundedAt)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return domain.ErrReturnAlreadyDecided
		}
		return domain.Internal(err, "refund.create", "failed to create refund")
	}
	return nil
}

// GetRefundByReturn retrieves the refund issued for a return, if any.
func (s *Store) GetRefundByReturn(ctx context.Context, returnID uuid.UUID) (*domain.Refund, error) {
	var r domain.Refund
	err := s.db.QueryRow(ctx,
		`SELECT id, return_id, amount, refunded_at FROM refunds WHERE return_id = $1`,
		returnID,
	).Scan(&r.ID, &r.ReturnID, &r.Amount, &r.RefundedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("refund.get_by_return", "refund", returnID.String())
		}
		return nil, domain.Internal(err, "refund.get_by_return", "failed to get refund")
	}
	return &r, nil
}
