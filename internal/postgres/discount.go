package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jswan/mercantile/internal/domain"
)

const saleEventColumns = `id, name, percent_off, product_id, category_id, starts_at, ends_at`

func scanSaleEvent(row pgx.Row) (*domain.SaleEvent, error) {
	var e domain.SaleEvent
	err := row.Scan(&e.ID, &e.Name, &e.PercentOff, &e.ProductID, &e.CategoryID,
		&e.StartsAt, &e.EndsAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateSaleEvent inserts a time-bounded discount.
func (s *Store) CreateSaleEvent(ctx context.Context, params domain.CreateSaleEventParams) (*domain.SaleEvent, error) {
	e, err := scanSaleEvent(s.db.QueryRow(ctx,
		`INSERT INTO sale_events (name, percent_off, product_id, category_id, starts_at, ends_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+saleEventColumns,
		params.Name, params.PercentOff, params.ProductID, params.CategoryID,
		params.StartsAt, params.EndsAt,
	))
	if err != nil {
		return nil, domain.Internal(err, "sale_event.create", "failed to create sale event")
	}
	return e, nil
}

// ListSaleEvents returns all sale events, newest first.
func (s *Store) ListSaleEvents(ctx context.Context) ([]domain.SaleEvent, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+saleEventColumns+` FROM sale_events ORDER BY starts_at DESC`)
	if err != nil {
		return nil, domain.Internal(err, "sale_event.list", "failed to list sale events")
	}
	defer rows.Close()

	return collectSaleEvents(rows, "sale_event.list")
}

// ListActiveSaleEvents returns events running at the given instant.
func (s *Store) ListActiveSaleEvents(ctx context.Context, at time.Time) ([]domain.SaleEvent, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+saleEventColumns+` FROM sale_events
		 WHERE starts_at <= $1 AND ends_at >= $1`,
		at,
	)
	if err != nil {
		return nil, domain.Internal(err, "sale_event.list_active", "failed to list active sale events")
	}
	defer rows.Close()

	return collectSaleEvents(rows, "sale_event.list_active")
}

func collectSaleEvents(rows pgx.Rows, op string) ([]domain.SaleEvent, error) {
	var events []domain.SaleEvent
	for rows.Next() {
		e, err := scanSaleEvent(rows)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to scan sale event")
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, op, "failed to read sale events")
	}
	return events, nil
}

// DeleteSaleEvent removes a sale event.
func (s *Store) DeleteSaleEvent(ctx context.Context, id uuid.UUID) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM sale_events WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "sale_event.delete", "failed to delete sale event")
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrSaleEventNotFound
	}
	return nil
}
