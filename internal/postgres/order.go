package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jswan/mercantile/internal/domain"
)

const orderColumns = `id, user_id, shipping_address_id, payment_method_id,
	status, order_date, shipping_cost, discount_total, tax_total, total_amount`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.ShippingAddressID, &o.PaymentMethodID,
		&o.Status, &o.OrderDate, &o.ShippingCost, &o.DiscountTotal,
		&o.TaxTotal, &o.TotalAmount,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder inserts an order and fills in its generated ID and date.
func (s *Store) CreateOrder(ctx context.Context, order *domain.Order) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO orders (user_id, shipping_address_id, payment_method_id,
			status, shipping_cost, discount_total, tax_total, total_amount)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, order_date`,
		order.UserID, order.ShippingAddressID, order.PaymentMethodID,
		order.Status, order.ShippingCost, order.DiscountTotal,
		order.TaxTotal, order.TotalAmount,
	).Scan(&order.ID, &order.OrderDate)
	if err != nil {
		return domain.Internal(err, "order.create", "failed to create order")
	}
	return nil
}

// CreateOrderItem inserts an immutable order line snapshot.
func (s *Store) CreateOrderItem(ctx context.Context, item *domain.OrderItem) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_item_price)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalItemPrice,
	).Scan(&item.ID)
	if err != nil {
		return domain.Internal(err, "order.create_item", "failed to create order item")
	}
	return nil
}

// GetOrder retrieves an order by ID.
func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := scanOrder(s.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.get", "failed to get order")
	}
	return o, nil
}

// GetOrderItem retrieves a single order line by ID.
func (s *Store) GetOrderItem(ctx context.Context, id uuid.UUID) (*domain.OrderItem, error) {
	var item domain.OrderItem
	err := s.db.QueryRow(ctx,
		`SELECT id, order_id, product_id, quantity, unit_price, total_item_price
		 FROM order_items WHERE id = $1`,
		id,
	).Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
		&item.UnitPrice, &item.TotalItemPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("order.get_item", "order item", id.String())
		}
		return nil, domain.Internal(err, "order.get_item", "failed to get order item")
	}
	return &item, nil
}

// ListOrderItems returns the order's line snapshots.
func (s *Store) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, order_id, product_id, quantity, unit_price, total_item_price
		 FROM order_items WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, domain.Internal(err, "order.list_items", "failed to list order items")
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.TotalItemPrice); err != nil {
			return nil, domain.Internal(err, "order.list_items", "failed to scan order item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "order.list_items", "failed to read order items")
	}
	return items, nil
}

// ListOrdersByUser returns the user's orders, newest first.
func (s *Store) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE user_id = $1 ORDER BY order_date DESC`,
		userID,
	)
	if err != nil {
		return nil, domain.Internal(err, "order.list_by_user", "failed to list orders")
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domain.Internal(err, "order.list_by_user", "failed to scan order")
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "order.list_by_user", "failed to read orders")
	}
	return orders, nil
}

// UpdateOrderStatus moves the order from one status to the next. The guard
// on the current status means concurrent updates that read the same
// snapshot cannot both apply; the loser sees zero rows and gets
// domain.ErrInvalidTransition.
func (s *Store) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error {
	ct, err := s.db.Exec(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1 AND status = $3`,
		id, to, from,
	)
	if err != nil {
		return domain.Internal(err, "order.update_status", "failed to update order status")
	}
	if ct.RowsAffected() == 0 {
		if _, err := s.GetOrder(ctx, id); err != nil {
			return err
		}
		return domain.ErrInvalidTransition
	}
	return nil
}
